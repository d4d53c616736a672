// Package ayrshare provides an abstraction layer for authenticated calls
// to the hosted social-posting provider. It normalizes failures into
// typed errors and validates response schemas at the boundary so
// malformed upstream payloads never propagate into the core.
package ayrshare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"SocialRelay/internal/config"
)

// Client provides authenticated access to the upstream posting provider.
// All calls attach the account-level bearer credential; profile-scoped
// calls additionally send the Profile-Key header. No retries are
// performed - a failed call surfaces immediately.
type Client interface {
	// CreateProfile creates a new upstream profile and returns the
	// issued profile key along with the raw provider payload.
	CreateProfile(ctx context.Context, title string) (*ProfileCreated, error)

	// GetActiveAccounts returns the live set of social platforms
	// connected to the given profile, plus the provider's optional
	// reference id for the profile.
	GetActiveAccounts(ctx context.Context, profileKey string) (*ActiveAccounts, error)

	// CreatePost publishes a post on behalf of the given profile.
	// The provider-defined response body is relayed verbatim.
	CreatePost(ctx context.Context, profileKey string, req PostRequest) (json.RawMessage, error)

	// GenerateJWT requests a single-sign-on JWT for the given profile.
	// The provider-defined response body is relayed verbatim.
	GenerateJWT(ctx context.Context, profileKey string) (json.RawMessage, error)
}

// ProfileCreated is the validated result of a CreateProfile call.
type ProfileCreated struct {
	ProfileKey string
	RefID      *string
	Raw        json.RawMessage
}

// ActiveAccounts is the validated result of a GetActiveAccounts call.
// ActivePlatforms preserves the order the provider reported.
type ActiveAccounts struct {
	ActivePlatforms []string
	RefID           *string
}

// PostRequest is the outbound posting payload.
type PostRequest struct {
	Post      string   `json:"post"`
	Platforms []string `json:"platforms"`
	MediaURLs []string `json:"mediaUrls"`
}

type client struct {
	baseURL    string
	apiKey     string
	privateKey string
	jwtDomain  string
	httpClient *http.Client
}

// Ensure client implements Client interface.
var _ Client = (*client)(nil)

// NewClient builds an HTTP client for the upstream provider from the
// resolved configuration.
func NewClient(cfg config.AyrshareConfig) Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		privateKey: cfg.PrivateKey,
		jwtDomain:  cfg.JWTDomain,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateProfile calls POST /profiles and validates that the provider
// returned a profile key.
func (c *client) CreateProfile(ctx context.Context, title string) (*ProfileCreated, error) {
	body, err := c.do(ctx, http.MethodPost, "/profiles", "", map[string]any{"title": title})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		ProfileKey string  `json:"profileKey"`
		RefID      *string `json:"refId"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("createProfile: failed to parse response: %w", err)
	}
	if parsed.ProfileKey == "" {
		return nil, wrapStatusError("createProfile", http.StatusBadGateway, "response missing profileKey")
	}

	return &ProfileCreated{
		ProfileKey: parsed.ProfileKey,
		RefID:      parsed.RefID,
		Raw:        body,
	}, nil
}

// GetActiveAccounts calls GET /user with the Profile-Key header.
// The activeSocialAccounts field is required; a response without it is
// treated as an upstream error rather than an empty platform list.
func (c *client) GetActiveAccounts(ctx context.Context, profileKey string) (*ActiveAccounts, error) {
	body, err := c.do(ctx, http.MethodGet, "/user", profileKey, nil)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		ActiveSocialAccounts *[]string `json:"activeSocialAccounts"`
		RefID                *string   `json:"refId"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("getActiveAccounts: failed to parse response: %w", err)
	}
	if parsed.ActiveSocialAccounts == nil {
		return nil, wrapStatusError("getActiveAccounts", http.StatusBadGateway, "response missing activeSocialAccounts")
	}

	return &ActiveAccounts{
		ActivePlatforms: *parsed.ActiveSocialAccounts,
		RefID:           parsed.RefID,
	}, nil
}

// CreatePost calls POST /post with the Profile-Key header and relays
// the provider response verbatim.
func (c *client) CreatePost(ctx context.Context, profileKey string, req PostRequest) (json.RawMessage, error) {
	if req.MediaURLs == nil {
		req.MediaURLs = []string{}
	}
	return c.do(ctx, http.MethodPost, "/post", profileKey, req)
}

// GenerateJWT calls POST /profiles/generateJWT with the configured
// domain and private key and relays the provider response verbatim.
func (c *client) GenerateJWT(ctx context.Context, profileKey string) (json.RawMessage, error) {
	payload := map[string]any{
		"domain":     c.jwtDomain,
		"privateKey": c.privateKey,
		"profileKey": profileKey,
	}
	return c.do(ctx, http.MethodPost, "/profiles/generateJWT", "", payload)
}

// do executes a single authenticated request and returns the response
// body on 2xx. Non-success statuses are mapped to typed errors with the
// upstream message attached.
func (c *client) do(ctx context.Context, method, path, profileKey string, payload any) (json.RawMessage, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s request: %w", path, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", path, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if profileKey != "" {
		req.Header.Set("Profile-Key", profileKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("failed to close upstream response body", slog.String("error", closeErr.Error()))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, wrapStatusError(method+" "+path, resp.StatusCode, upstreamMessage(body))
	}

	return body, nil
}

// upstreamMessage extracts a human-readable message from an error body,
// falling back to a truncated raw preview when the body isn't the
// provider's usual {message} shape.
func upstreamMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}

	preview := string(body)
	if len(preview) > 200 {
		preview = preview[:200] + "... (truncated)"
	}
	return preview
}
