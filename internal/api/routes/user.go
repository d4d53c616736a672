package routes

import (
	"encoding/json"
	"net/http"

	"SocialRelay/internal/core/platforms"
	"SocialRelay/internal/core/profiles"

	"github.com/go-chi/chi/v5"
)

// UserHandler handles per-user platform and SSO endpoints
type UserHandler struct {
	platformService platforms.Service
	profileService  profiles.ProfileService
}

// NewUserHandler creates a new user handler
func NewUserHandler(platformService platforms.Service, profileService profiles.ProfileService) *UserHandler {
	return &UserHandler{
		platformService: platformService,
		profileService:  profileService,
	}
}

// UserRoutes returns per-user routes
func UserRoutes(platformService platforms.Service, profileService profiles.ProfileService) chi.Router {
	h := NewUserHandler(platformService, profileService)
	r := chi.NewRouter()

	r.Get("/{userID}/platforms", h.SyncPlatforms)
	r.Put("/{userID}/platforms/{platform}", h.SetPlatformEnabled)
	r.Post("/{userID}/jwt", h.GenerateJWT)

	return r
}

// SyncPlatforms handles GET /users/{userID}/platforms
// Reconciles the provider's live platform list with stored preferences
// and returns the merged view in provider order.
func (h *UserHandler) SyncPlatforms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "userID is required")
		return
	}

	statuses, err := h.platformService.SyncActivePlatforms(ctx, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"platforms": statuses})
}

// SetPlatformEnabled handles PUT /users/{userID}/platforms/{platform}
// Upserts the enablement flag for one platform.
func (h *UserHandler) SetPlatformEnabled(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := chi.URLParam(r, "userID")
	platform := chi.URLParam(r, "platform")
	if userID == "" || platform == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "userID and platform are required")
		return
	}

	var req struct {
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if req.Enabled == nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "enabled is required")
		return
	}

	pref, err := h.platformService.SetPlatformEnabled(ctx, userID, platform, *req.Enabled)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, platforms.PlatformStatus{Platform: pref.Platform, Enabled: pref.Enabled})
}

// GenerateJWT handles POST /users/{userID}/jwt
// Resolves the user's profile key server-side and relays the provider's
// SSO token response verbatim.
func (h *UserHandler) GenerateJWT(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "userID is required")
		return
	}

	body, err := h.profileService.GenerateJWT(ctx, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeRaw(w, http.StatusOK, body)
}
