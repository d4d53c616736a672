package profiles

import (
	"encoding/json"
	"time"
)

// UserProfile maps an end user to their upstream provider profile.
// The provider owns the actual social-account connections; this row only
// remembers which profile key the user was issued and the provider's
// optional reference id for it.
type UserProfile struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"userId" db:"user_id"`
	ProfileKey string    `json:"profileKey" db:"profile_key"`
	RefID      *string   `json:"refId,omitempty" db:"ref_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateProfileRequest represents the input for creating a new profile.
type CreateProfileRequest struct {
	UserID string `json:"userId"`
	Title  string `json:"title"`
}

// CreatedProfile is the result of a successful profile creation: the
// stored mapping plus the provider payload relayed to the caller.
type CreatedProfile struct {
	Profile  *UserProfile    `json:"profile"`
	Upstream json.RawMessage `json:"upstream"`
}
