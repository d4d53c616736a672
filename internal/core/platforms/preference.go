package platforms

import (
	"strings"
	"time"
)

// PlatformPreference records whether a user has posting enabled for one
// connected social platform. At most one row exists per (user, platform)
// pair. Rows are created the first time a platform is seen as connected
// and are never deleted by the sync path - disabling is represented by
// enabled=false, not removal.
type PlatformPreference struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Platform  string    `json:"platform" db:"platform"`
	Enabled   bool      `json:"enabled" db:"enabled"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// PlatformStatus is one entry of the merged view returned by a sync:
// a currently connected platform and its stored enablement flag.
type PlatformStatus struct {
	Platform string `json:"platform"`
	Enabled  bool   `json:"enabled"`
}

// NormalizePlatform canonicalizes a provider-reported platform name.
// The provider's casing is not documented, so names are compared and
// stored case-folded to keep "Facebook" and "facebook" from becoming
// two preference rows.
func NormalizePlatform(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
