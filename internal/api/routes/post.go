package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"SocialRelay/internal/ayrshare"

	"github.com/go-chi/chi/v5"
)

// PostHandler handles pass-through endpoints that address the provider
// by raw profile key: posting and SSO token generation. These forward
// the payload and relay the provider response or error - no local state
// is touched.
type PostHandler struct {
	upstream ayrshare.Client
}

// NewPostHandler creates a new post handler
func NewPostHandler(upstream ayrshare.Client) *PostHandler {
	return &PostHandler{
		upstream: upstream,
	}
}

// RegisterPostRoutes registers the pass-through endpoints on the router
func RegisterPostRoutes(r chi.Router, upstream ayrshare.Client) {
	h := NewPostHandler(upstream)

	r.Post("/posts", h.Publish)
	r.Post("/jwt", h.GenerateJWT)
}

// PublishRequest represents the request body for publishing a post
type PublishRequest struct {
	ProfileKey string   `json:"profileKey"`
	Post       string   `json:"post"`
	Platforms  []string `json:"platforms"`
	MediaURLs  []string `json:"mediaUrls"`
}

// Publish handles POST /posts
func (h *PostHandler) Publish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if strings.TrimSpace(req.ProfileKey) == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "profileKey is required")
		return
	}
	if strings.TrimSpace(req.Post) == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "post is required")
		return
	}
	if len(req.Platforms) == 0 {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "platforms is required")
		return
	}

	body, err := h.upstream.CreatePost(ctx, req.ProfileKey, ayrshare.PostRequest{
		Post:      req.Post,
		Platforms: req.Platforms,
		MediaURLs: req.MediaURLs,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeRaw(w, http.StatusOK, body)
}

// GenerateJWT handles POST /jwt
// Raw profile-key variant kept for callers that manage their own keys.
func (h *PostHandler) GenerateJWT(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		ProfileKey string `json:"profileKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if strings.TrimSpace(req.ProfileKey) == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "profileKey is required")
		return
	}

	body, err := h.upstream.GenerateJWT(ctx, req.ProfileKey)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeRaw(w, http.StatusOK, body)
}
