package services

import (
	"context"
	"strings"
	"testing"

	"github.com/celadonapp/celadon-backend/internal/models"
)

func TestStickerStudio(t *testing.T) {
	s, _ := newTestState(t, nil)
	ctx := context.Background()

	first := s.AddStickerFromEmoji(ctx, "🌿", models.StickerStyleLift)
	if !strings.HasPrefix(first.Data, "data:image/svg+xml;base64,") {
		t.Fatalf("emoji sticker should render to an SVG data URI, got %q", first.Data)
	}

	second := s.AddStickerFromImage(ctx, "data:image/png;base64,BBBB", models.StickerStylePolaroid)
	studio := s.StudioStickers()
	if len(studio) != 2 {
		t.Fatalf("expected 2 stickers, got %d", len(studio))
	}
	if studio[0].ID != second.ID {
		t.Fatalf("newest sticker must come first")
	}

	s.RemoveStudioSticker(ctx, first.ID)
	studio = s.StudioStickers()
	if len(studio) != 1 || studio[0].ID != second.ID {
		t.Fatalf("expected only the second sticker to remain, got %+v", studio)
	}

	// Unknown id is a silent no-op.
	s.RemoveStudioSticker(ctx, "missing")
	if len(s.StudioStickers()) != 1 {
		t.Fatalf("unknown id must not remove anything")
	}
}

func TestPlaceStickerCopiesFromStudio(t *testing.T) {
	s, _ := newTestState(t, nil)
	ctx := context.Background()
	u, _ := s.SignUp(ctx, "a@example.com", "pw")

	sticker := s.AddStickerFromEmoji(ctx, "⭐", models.StickerStyleGraphic)
	s.PlaceSticker(u.ID, sticker.ID)

	d := s.Draft(u.ID)
	if len(d.Stickers) != 1 || d.Stickers[0].ID != sticker.ID {
		t.Fatalf("placed sticker should appear on the draft, got %+v", d.Stickers)
	}
	// The studio keeps its copy.
	if len(s.StudioStickers()) != 1 {
		t.Fatalf("placing must not consume the studio sticker")
	}

	// Deleting from the studio does not retract the placed copy.
	s.RemoveStudioSticker(ctx, sticker.ID)
	if d := s.Draft(u.ID); len(d.Stickers) != 1 {
		t.Fatalf("draft keeps its copy after studio deletion")
	}

	// Unknown id is a silent no-op.
	s.PlaceSticker(u.ID, "missing")
	if d := s.Draft(u.ID); len(d.Stickers) != 1 {
		t.Fatalf("unknown sticker id must not be placed")
	}
}
