package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/celadonapp/celadon-backend/internal/models"
)

type SaveEntryRequest struct {
	Content string `json:"content"`
}

type SaveEntryResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Entry   *models.JournalEntry `json:"entry,omitempty"`
	Vibe    string               `json:"vibe,omitempty"`
	Quote   string               `json:"quote,omitempty"`
}

type GetEntriesResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	Entries []models.JournalEntry `json:"entries"`
	Total   int                   `json:"total"`
}

// SaveEntry preserves the user's draft as a new journal entry. Blank
// content with no staged photos is accepted but saves nothing.
func SaveEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SaveEntryResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	entry, mood := state.SaveEntry(r.Context(), userID, req.Content)
	if entry == nil {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SaveEntryResponse{
			Success: true,
			Message: "Nothing to preserve",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SaveEntryResponse{
		Success: true,
		Message: "Entry preserved",
		Entry:   entry,
		Vibe:    mood.Vibe,
		Quote:   mood.Quote,
	})
}

// GetEntries returns the entries shared with the authenticated user,
// newest first.
func GetEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(GetEntriesResponse{
			Success: false,
			Message: "Authentication required",
			Entries: []models.JournalEntry{},
		})
		return
	}

	entries := state.Entries(userID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GetEntriesResponse{
		Success: true,
		Entries: entries,
		Total:   len(entries),
	})
}

type PostcardResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	URL     string `json:"url,omitempty"`
}

// GetPostcardLink composes the share deep link for an entry. The link is
// fire-and-forget: opening it is the client's concern, no response from
// the messaging service is handled.
func GetPostcardLink(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAuth(r); !ok {
		unauthorized(w)
		return
	}

	entryID := r.URL.Query().Get("id")
	link, found := state.PostcardLink(entryID)
	if !found {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(PostcardResponse{
			Success: false,
			Message: "Entry not found",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PostcardResponse{
		Success: true,
		URL:     link,
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": "Authentication required",
	})
}
