package profiles

import (
	"context"
	"encoding/json"
)

// ProfileRepository defines the interface for profile mapping persistence
type ProfileRepository interface {
	// GetByUserID returns the profile mapping for a user.
	// Returns ErrProfileNotFound when the user has no profile.
	GetByUserID(ctx context.Context, userID string) (*UserProfile, error)

	// Create inserts a new profile mapping.
	// Returns ErrProfileExists when the user already has one.
	Create(ctx context.Context, profile *UserProfile) (*UserProfile, error)

	// UpdateRefID stores a new upstream reference id for the user's
	// profile and refreshes updated_at.
	// Returns ErrProfileNotFound when the user has no profile.
	UpdateRefID(ctx context.Context, userID, refID string) error
}

// ProfileService defines the interface for profile business logic
type ProfileService interface {
	// CreateProfile provisions an upstream profile and stores the
	// userID -> profileKey mapping. At most one profile per user.
	CreateProfile(ctx context.Context, req CreateProfileRequest) (*CreatedProfile, error)

	// GetProfile returns the stored mapping for a user.
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)

	// GenerateJWT resolves the user's profile key and relays the
	// provider's SSO token response verbatim.
	GenerateJWT(ctx context.Context, userID string) (json.RawMessage, error)
}
