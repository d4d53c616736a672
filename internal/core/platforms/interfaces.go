package platforms

import (
	"context"

	"SocialRelay/internal/ayrshare"
	"SocialRelay/internal/core/profiles"
)

// PreferenceRepository defines the interface for preference persistence
type PreferenceRepository interface {
	// ListByUserID returns all preference rows for a user, in no
	// particular order.
	ListByUserID(ctx context.Context, userID string) ([]PlatformPreference, error)

	// CreateBatch inserts newly discovered preference rows in a single
	// transaction so a reconciliation pass commits atomically. Rows
	// that already exist (a concurrent sync won the race) are skipped,
	// not treated as errors.
	CreateBatch(ctx context.Context, prefs []PlatformPreference) error

	// Upsert atomically inserts or updates the (userID, platform) row
	// with the given enabled value and returns the stored row.
	Upsert(ctx context.Context, userID, platform string, enabled bool) (*PlatformPreference, error)
}

// ProfileSource is the slice of the profile store the sync engine needs.
// Satisfied by profiles.ProfileRepository.
type ProfileSource interface {
	GetByUserID(ctx context.Context, userID string) (*profiles.UserProfile, error)
	UpdateRefID(ctx context.Context, userID, refID string) error
}

// AccountSource is the slice of the upstream client the sync engine
// needs. Satisfied by ayrshare.Client.
type AccountSource interface {
	GetActiveAccounts(ctx context.Context, profileKey string) (*ayrshare.ActiveAccounts, error)
}

// Service defines the interface for platform preference business logic
type Service interface {
	// SyncActivePlatforms reconciles the provider's live list of
	// connected platforms with stored preferences and returns the
	// merged view in provider order.
	SyncActivePlatforms(ctx context.Context, userID string) ([]PlatformStatus, error)

	// SetPlatformEnabled upserts the enablement flag for one platform.
	SetPlatformEnabled(ctx context.Context, userID, platform string, enabled bool) (*PlatformPreference, error)
}
