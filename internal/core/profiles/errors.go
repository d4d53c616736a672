package profiles

import "errors"

// Sentinel errors for profile operations
var (
	// ErrProfileNotFound is returned when a user has no stored profile mapping
	ErrProfileNotFound = errors.New("profile not found for user")

	// ErrProfileExists is returned when attempting to create a second profile for a user
	ErrProfileExists = errors.New("profile already exists for user")
)
