package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"SocialRelay/internal/ayrshare"
)

type profileService struct {
	repo     ProfileRepository
	upstream ayrshare.Client
}

// NewProfileService creates a new profile service
func NewProfileService(repo ProfileRepository, upstream ayrshare.Client) ProfileService {
	return &profileService{
		repo:     repo,
		upstream: upstream,
	}
}

// CreateProfile provisions a profile with the upstream provider and
// persists the userID -> profileKey mapping. The upstream call happens
// first: a provider failure leaves no local state behind. A storage
// failure after upstream success is surfaced with the issued profile
// key in the error chain so the mapping can be repaired manually.
func (s *profileService) CreateProfile(ctx context.Context, req CreateProfileRequest) (*CreatedProfile, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.Title = strings.TrimSpace(req.Title)

	if req.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if req.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	// Reject duplicates before spending an upstream call. The unique
	// constraint on user_id still backstops a concurrent create.
	if _, err := s.repo.GetByUserID(ctx, req.UserID); err == nil {
		return nil, ErrProfileExists
	} else if !errors.Is(err, ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}

	created, err := s.upstream.CreateProfile(ctx, req.Title)
	if err != nil {
		return nil, fmt.Errorf("upstream profile creation failed: %w", err)
	}

	profile := &UserProfile{
		UserID:     req.UserID,
		ProfileKey: created.ProfileKey,
		RefID:      created.RefID,
	}

	stored, err := s.repo.Create(ctx, profile)
	if err != nil {
		slog.Error("profile created upstream but mapping not stored",
			slog.String("user_id", req.UserID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to store mapping for profile key %s: %w", created.ProfileKey, err)
	}

	return &CreatedProfile{Profile: stored, Upstream: created.Raw}, nil
}

// GetProfile returns the stored mapping for a user.
func (s *profileService) GetProfile(ctx context.Context, userID string) (*UserProfile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	return s.repo.GetByUserID(ctx, userID)
}

// GenerateJWT resolves the user's profile key and relays the provider's
// SSO token response. The profile key never leaves the server side.
func (s *profileService) GenerateJWT(ctx context.Context, userID string) (json.RawMessage, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := s.upstream.GenerateJWT(ctx, profile.ProfileKey)
	if err != nil {
		return nil, fmt.Errorf("upstream JWT generation failed: %w", err)
	}

	return body, nil
}
