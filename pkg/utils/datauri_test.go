package utils

import (
	"strings"
	"testing"
)

func TestEncodeDataURI(t *testing.T) {
	uri, err := EncodeDataURI(strings.NewReader("hello"), "image/png")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if uri != "data:image/png;base64,aGVsbG8=" {
		t.Fatalf("unexpected uri: %q", uri)
	}

	// Missing mime type falls back to the generic binary type.
	uri, err = EncodeDataURI(strings.NewReader("x"), "")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(uri, "data:application/octet-stream;base64,") {
		t.Fatalf("expected octet-stream fallback, got %q", uri)
	}
}

func TestIsDataURI(t *testing.T) {
	if !IsDataURI("data:image/png;base64,AAAA") {
		t.Fatalf("data URI not recognized")
	}
	if IsDataURI("https://example.com/photo.png") {
		t.Fatalf("plain URL misread as data URI")
	}
	if IsDataURI("") {
		t.Fatalf("empty string misread as data URI")
	}
}
