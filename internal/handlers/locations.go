package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/celadonapp/celadon-backend/internal/services"
)

type SuggestLocationsResponse struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message,omitempty"`
	Input       string   `json:"input"`
	Suggestions []string `json:"suggestions"`
}

// SuggestLocations returns up to five place names for a partial input.
// Inputs shorter than 2 characters answer immediately with nothing; the
// adapter never issues a backend call for them. Answers are cached per
// input so retyping a place doesn't re-query the backend.
func SuggestLocations(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAuth(r); !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(SuggestLocationsResponse{
			Success:     false,
			Message:     "Authentication required",
			Suggestions: []string{},
		})
		return
	}

	input := r.URL.Query().Get("q")
	w.Header().Set("Content-Type", "application/json")

	if utf8.RuneCountInString(input) < 2 {
		json.NewEncoder(w).Encode(SuggestLocationsResponse{
			Success:     true,
			Input:       input,
			Suggestions: []string{},
		})
		return
	}

	cacheKey := services.CacheKey("suggest", strings.ToLower(input))
	var suggestions []string
	if hit, _ := services.Cache.Get(cacheKey, &suggestions); !hit {
		suggestions = analyzer.SuggestLocations(r.Context(), input)
		if len(suggestions) > 0 {
			_ = services.Cache.Set(cacheKey, suggestions)
		}
	}
	if suggestions == nil {
		suggestions = []string{}
	}

	json.NewEncoder(w).Encode(SuggestLocationsResponse{
		Success:     true,
		Input:       input,
		Suggestions: suggestions,
	})
}
