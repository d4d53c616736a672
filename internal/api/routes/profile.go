package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"SocialRelay/internal/core/profiles"

	"github.com/go-chi/chi/v5"
)

// ProfileHandler handles profile provisioning endpoints
type ProfileHandler struct {
	profileService profiles.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService profiles.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// ProfileRoutes returns profile provisioning routes
func ProfileRoutes(service profiles.ProfileService) chi.Router {
	h := NewProfileHandler(service)
	r := chi.NewRouter()

	r.Post("/", h.Create)

	return r
}

// Create handles POST /profiles
// Provisions a profile with the upstream provider and stores the
// user -> profileKey mapping. Relays the provider payload on success.
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req profiles.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "userId is required")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "title is required")
		return
	}

	created, err := h.profileService.CreateProfile(ctx, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
