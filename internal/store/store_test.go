package store

import (
	"context"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, KeyEntries); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, KeyEntries, `[{"id":"1"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	raw, ok, err := s.Get(ctx, KeyEntries)
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if raw != `[{"id":"1"}]` {
		t.Fatalf("unexpected value: %q", raw)
	}

	if err := s.Remove(ctx, KeyEntries); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := s.Get(ctx, KeyEntries); ok {
		t.Fatalf("key should be gone after remove")
	}

	// Removing an absent key is not an error.
	if err := s.Remove(ctx, KeyEntries); err != nil {
		t.Fatalf("remove absent key: %v", err)
	}
}

func TestParseOrDefault(t *testing.T) {
	type record struct {
		Name string `json:"name"`
	}

	got := ParseOrDefault(`{"name":"celadon"}`, record{Name: "fallback"})
	if got.Name != "celadon" {
		t.Fatalf("valid JSON should parse, got %+v", got)
	}

	got = ParseOrDefault("", record{Name: "fallback"})
	if got.Name != "fallback" {
		t.Fatalf("empty raw should return default, got %+v", got)
	}

	got = ParseOrDefault("{not json", record{Name: "fallback"})
	if got.Name != "fallback" {
		t.Fatalf("malformed raw should return default, got %+v", got)
	}

	list := ParseOrDefault("[1,2,3]", []int{})
	if len(list) != 3 {
		t.Fatalf("expected 3 elements, got %v", list)
	}
}
