package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/celadonapp/celadon-backend/internal/models"
	"github.com/celadonapp/celadon-backend/pkg/utils"
)

type GetStickersResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Stickers []models.Sticker `json:"stickers"`
}

type StickerResponse struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Sticker    *models.Sticker `json:"sticker,omitempty"`
	HasSubject bool            `json:"has_subject,omitempty"`
}

// GetStickers lists the sticker studio library, newest first.
func GetStickers(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAuth(r); !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(GetStickersResponse{
			Success:  false,
			Message:  "Authentication required",
			Stickers: []models.Sticker{},
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GetStickersResponse{
		Success:  true,
		Stickers: state.StudioStickers(),
	})
}

type CreateEmojiStickerRequest struct {
	Emoji string `json:"emoji"`
	Style string `json:"style"`
}

// CreateEmojiSticker renders an emoji into a studio sticker.
func CreateEmojiSticker(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAuth(r); !ok {
		unauthorized(w)
		return
	}

	var req CreateEmojiStickerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Emoji == "" {
		http.Error(w, "Emoji is required", http.StatusBadRequest)
		return
	}
	style := models.StickerStyle(req.Style)
	if !style.Valid() {
		style = models.StickerStyleLift
	}

	sticker := state.AddStickerFromEmoji(r.Context(), req.Emoji, style)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(StickerResponse{
		Success: true,
		Message: "Sticker created successfully",
		Sticker: &sticker,
	})
}

type CreateImageStickerRequest struct {
	Image string `json:"image"` // data URI
	Style string `json:"style"`
}

// CreateImageSticker adds an uploaded image to the studio. For the lift
// style the analysis backend is asked whether a clear subject exists; the
// answer is advisory and the sticker is created regardless.
func CreateImageSticker(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAuth(r); !ok {
		unauthorized(w)
		return
	}

	var req CreateImageStickerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Image == "" {
		http.Error(w, "Image is required", http.StatusBadRequest)
		return
	}
	if !utils.IsDataURI(req.Image) {
		http.Error(w, "Image must be a data URI", http.StatusBadRequest)
		return
	}
	style := models.StickerStyle(req.Style)
	if !style.Valid() {
		style = models.StickerStyleLift
	}

	hasSubject := true
	if style == models.StickerStyleLift {
		hasSubject = state.CheckLiftSubject(r.Context(), req.Image)
	}

	sticker := state.AddStickerFromImage(r.Context(), req.Image, style)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(StickerResponse{
		Success:    true,
		Message:    "Sticker created successfully",
		Sticker:    &sticker,
		HasSubject: hasSubject,
	})
}

// DeleteSticker removes a sticker from the studio only. Placed copies
// stay where they are.
func DeleteSticker(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAuth(r); !ok {
		unauthorized(w)
		return
	}

	stickerID := r.URL.Query().Get("id")
	if stickerID == "" {
		http.Error(w, "Sticker id is required", http.StatusBadRequest)
		return
	}

	state.RemoveStudioSticker(r.Context(), stickerID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
}
