package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/celadonapp/celadon-backend/pkg/utils"
)

type UploadPhotoResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Photo   string `json:"photo,omitempty"`
}

// UploadDraftPhoto attaches an uploaded image to the caller's draft.
// Photos normally travel inline as base64 data URIs; when Cloudinary is
// configured the file is hosted there and the draft keeps the URL instead.
func UploadDraftPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		unauthorized(w)
		return
	}

	// Parse multipart form (max 10MB)
	err := r.ParseMultipartForm(10 << 20) // 10MB
	if err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "No photo provided: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	var photo string
	if cloudinaryService != nil {
		photo, err = cloudinaryService.UploadFile(r.Context(), file, "celadon")
		if err != nil {
			http.Error(w, "Failed to upload photo: "+err.Error(), http.StatusInternalServerError)
			return
		}
	} else {
		photo, err = utils.EncodeDataURI(file, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			http.Error(w, "Failed to read photo: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	state.AttachPhoto(userID, photo)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UploadPhotoResponse{
		Success: true,
		Message: "Photo added to draft",
		Photo:   photo,
	})
}
