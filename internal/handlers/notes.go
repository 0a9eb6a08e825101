package handlers

import (
	"encoding/json"
	"net/http"
)

type NoteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Note    string `json:"note"`
}

// GetNote returns the creativity note.
func GetNote(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAuth(r); !ok {
		unauthorized(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NoteResponse{
		Success: true,
		Note:    state.Note(),
	})
}

type PutNoteRequest struct {
	Note string `json:"note"`
}

// PutNote overwrites the creativity note.
func PutNote(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAuth(r); !ok {
		unauthorized(w)
		return
	}

	var req PutNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	state.SetNote(r.Context(), req.Note)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NoteResponse{
		Success: true,
		Note:    req.Note,
	})
}
