package models

// StickerStyle is one of the three presentation variants a sticker can carry.
type StickerStyle string

const (
	StickerStyleLift     StickerStyle = "lift"
	StickerStylePolaroid StickerStyle = "polaroid"
	StickerStyleGraphic  StickerStyle = "graphic"
)

// Valid reports whether s is one of the enumerated styles.
func (s StickerStyle) Valid() bool {
	switch s {
	case StickerStyleLift, StickerStylePolaroid, StickerStyleGraphic:
		return true
	}
	return false
}

// Sticker is a small image asset, either emoji-derived or uploaded.
// The same sticker identity may appear in the studio library and on an
// in-progress entry at the same time; placing never removes from the studio.
type Sticker struct {
	ID    string       `json:"id"`
	Data  string       `json:"data"` // data URI
	Style StickerStyle `json:"style"`
}
