package handlers

import (
	"net/http"
	"strings"

	"github.com/celadonapp/celadon-backend/internal/config"
	"github.com/celadonapp/celadon-backend/internal/services"
)

var (
	state             *services.State
	analyzer          services.Analyzer
	cloudinaryService *services.CloudinaryService
)

// InitState wires the domain state model into the handler package.
func InitState(s *services.State) {
	state = s
}

// InitAnalyzer wires the analysis-service adapter into the handler package.
func InitAnalyzer(a services.Analyzer) {
	analyzer = a
}

func InitCloudinaryService(cfg *config.Config) error {
	service, err := services.NewCloudinaryService(
		cfg.CloudinaryName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return err
	}
	cloudinaryService = service
	return nil
}

// extractBearerToken pulls the token out of an "Authorization: Bearer x" header.
func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireAuth validates the session and returns the authenticated user's ID.
// Returns ("", false) if not authenticated.
func requireAuth(r *http.Request) (string, bool) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return "", false
	}
	userID, ok := services.ValidateSession(token)
	if !ok {
		return "", false
	}
	if _, exists := state.UserByID(userID); !exists {
		return "", false
	}
	return userID, true
}
