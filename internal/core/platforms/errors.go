package platforms

import "errors"

// Sentinel errors for preference operations
var (
	// ErrPreferenceNotFound is returned when a (user, platform) lookup finds no row
	ErrPreferenceNotFound = errors.New("platform preference not found")

	// ErrEmptyPlatform is returned when a platform name normalizes to the empty string
	ErrEmptyPlatform = errors.New("platform name is required")
)
