package platforms

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type platformService struct {
	prefRepo PreferenceRepository
	profiles ProfileSource
	accounts AccountSource
}

// NewService creates the reconciliation service
func NewService(prefRepo PreferenceRepository, profileSource ProfileSource, accountSource AccountSource) Service {
	return &platformService{
		prefRepo: prefRepo,
		profiles: profileSource,
		accounts: accountSource,
	}
}

// SyncActivePlatforms merges the provider's live platform list with
// stored enablement preferences.
//
// The provider is the source of truth for which platforms are connected;
// local storage is the source of truth for whether a connected platform
// is enabled. Newly seen platforms get a default enabled=true row;
// already-known platforms keep their stored flag untouched. Platforms
// the provider no longer reports are left alone - a transient upstream
// omission must not erase user intent.
//
// Holds no state between calls: every invocation re-reads storage and
// the provider, so a failed call is safe to retry.
func (s *platformService) SyncActivePlatforms(ctx context.Context, userID string) ([]PlatformStatus, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	// NotFound precondition: no profile means no upstream call.
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	upstream, err := s.accounts.GetActiveAccounts(ctx, profile.ProfileKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active accounts: %w", err)
	}

	// Keep the local cross-reference current before touching
	// preferences, so the refId survives even if a later step fails.
	// A nil upstream refId leaves the stored value untouched.
	if upstream.RefID != nil && (profile.RefID == nil || *profile.RefID != *upstream.RefID) {
		if err := s.profiles.UpdateRefID(ctx, userID, *upstream.RefID); err != nil {
			return nil, fmt.Errorf("failed to update ref id: %w", err)
		}
	}

	existing, err := s.prefRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	existingByPlatform := make(map[string]*PlatformPreference, len(existing))
	for i := range existing {
		existingByPlatform[NormalizePlatform(existing[i].Platform)] = &existing[i]
	}

	statuses := make([]PlatformStatus, 0, len(upstream.ActivePlatforms))
	var discovered []PlatformPreference
	seen := make(map[string]bool, len(upstream.ActivePlatforms))

	for _, reported := range upstream.ActivePlatforms {
		platform := NormalizePlatform(reported)
		if platform == "" || seen[platform] {
			continue
		}
		seen[platform] = true

		if pref, ok := existingByPlatform[platform]; ok {
			// Never flip a stored choice based on upstream activity alone.
			statuses = append(statuses, PlatformStatus{Platform: platform, Enabled: pref.Enabled})
			continue
		}

		// First sight of this platform: default to enabled.
		discovered = append(discovered, PlatformPreference{
			UserID:   userID,
			Platform: platform,
			Enabled:  true,
		})
		statuses = append(statuses, PlatformStatus{Platform: platform, Enabled: true})
	}

	// One commit covers all rows discovered this pass.
	if len(discovered) > 0 {
		if err := s.prefRepo.CreateBatch(ctx, discovered); err != nil {
			return nil, fmt.Errorf("failed to store discovered platforms: %w", err)
		}
		slog.Info("discovered new platforms for user",
			slog.String("user_id", userID),
			slog.Int("count", len(discovered)),
		)
	}

	return statuses, nil
}

// SetPlatformEnabled upserts the enablement flag for one platform.
// Calling it twice with the same arguments yields the same stored state.
func (s *platformService) SetPlatformEnabled(ctx context.Context, userID, platform string, enabled bool) (*PlatformPreference, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	platform = NormalizePlatform(platform)
	if platform == "" {
		return nil, ErrEmptyPlatform
	}

	return s.prefRepo.Upsert(ctx, userID, platform, enabled)
}
