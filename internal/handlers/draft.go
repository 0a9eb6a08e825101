package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/celadonapp/celadon-backend/internal/services"
)

type DraftResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Draft   services.Draft `json:"draft"`
}

// GetDraft returns the user's in-progress entry state.
func GetDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		unauthorized(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DraftResponse{
		Success: true,
		Draft:   state.Draft(userID),
	})
}

type AttachPhotoRequest struct {
	Photo string `json:"photo"` // data URI or hosted URL
}

// AttachDraftPhoto stages a photo on the draft.
func AttachDraftPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req AttachPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Photo == "" {
		http.Error(w, "Photo is required", http.StatusBadRequest)
		return
	}

	state.AttachPhoto(userID, req.Photo)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DraftResponse{
		Success: true,
		Draft:   state.Draft(userID),
	})
}

type PlaceStickerRequest struct {
	StickerID string `json:"sticker_id"`
}

// PlaceDraftSticker copies a studio sticker onto the draft. An unknown id
// leaves the draft untouched.
func PlaceDraftSticker(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req PlaceStickerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.StickerID == "" {
		http.Error(w, "Sticker id is required", http.StatusBadRequest)
		return
	}

	state.PlaceSticker(userID, req.StickerID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DraftResponse{
		Success: true,
		Draft:   state.Draft(userID),
	})
}

type SelectLocationRequest struct {
	Location string `json:"location"`
}

type SelectLocationResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Location string `json:"location,omitempty"`
	Weather  string `json:"weather,omitempty"`
}

// SelectDraftLocation pins a location on the draft and resolves its
// weather emoji, caching the answer per location.
func SelectDraftLocation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req SelectLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	location := strings.TrimSpace(req.Location)
	if location == "" {
		http.Error(w, "Location is required", http.StatusBadRequest)
		return
	}

	cacheKey := services.CacheKey("weather", strings.ToLower(location))
	var weather string
	if hit, _ := services.Cache.Get(cacheKey, &weather); hit && weather != "" {
		state.SetLocation(userID, location)
		state.SetWeather(userID, weather)
	} else {
		weather = state.SelectLocation(r.Context(), userID, location)
		// The sparkle is also the lookup-failure answer; caching it would
		// pin an outage's result for hours.
		if weather != services.DefaultWeather {
			_ = services.Cache.Set(cacheKey, weather)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SelectLocationResponse{
		Success:  true,
		Location: location,
		Weather:  weather,
	})
}
