package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/celadonapp/celadon-backend/internal/models"
	"github.com/celadonapp/celadon-backend/internal/store"
	"github.com/celadonapp/celadon-backend/pkg/utils"
)

// StudioStickers returns a copy of the sticker library, newest first.
func (s *State) StudioStickers() []models.Sticker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Sticker(nil), s.studio...)
}

// AddStickerFromEmoji renders an emoji into an image asset and prepends it
// to the studio collection.
func (s *State) AddStickerFromEmoji(ctx context.Context, emoji string, style models.StickerStyle) models.Sticker {
	return s.addSticker(ctx, utils.EmojiStickerDataURI(emoji), style)
}

// AddStickerFromImage prepends an uploaded image sticker to the studio
// collection.
func (s *State) AddStickerFromImage(ctx context.Context, imageData string, style models.StickerStyle) models.Sticker {
	return s.addSticker(ctx, imageData, style)
}

func (s *State) addSticker(ctx context.Context, data string, style models.StickerStyle) models.Sticker {
	s.mu.Lock()
	defer s.mu.Unlock()

	sticker := models.Sticker{ID: uuid.NewString(), Data: data, Style: style}
	s.studio = append([]models.Sticker{sticker}, s.studio...)
	s.persist(ctx, store.KeyStudio, s.studio)
	return sticker
}

// RemoveStudioSticker deletes a sticker from the studio collection only.
// Copies already placed on a draft or saved into entries are not retracted.
func (s *State) RemoveStudioSticker(ctx context.Context, stickerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.studio {
		if s.studio[i].ID == stickerID {
			s.studio = append(s.studio[:i], s.studio[i+1:]...)
			s.persist(ctx, store.KeyStudio, s.studio)
			return
		}
	}
}

// CheckLiftSubject asks the analysis backend whether the image has a clear
// subject for the lift style. Degrades to true when the backend is down.
func (s *State) CheckLiftSubject(ctx context.Context, imageData string) bool {
	return s.ai.ExtractSubject(ctx, imageData)
}
