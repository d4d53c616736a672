package postgres

import (
	"SocialRelay/internal/core/profiles"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type postgresProfileRepo struct {
	db *sql.DB
}

// NewProfileRepository creates a new PostgreSQL profile repository
func NewProfileRepository(db *sql.DB) profiles.ProfileRepository {
	return &postgresProfileRepo{db: db}
}

// GetByUserID retrieves the profile mapping for a user
func (r *postgresProfileRepo) GetByUserID(ctx context.Context, userID string) (*profiles.UserProfile, error) {
	profile := &profiles.UserProfile{}
	query := `SELECT id, user_id, profile_key, ref_id, created_at, updated_at FROM user_profiles WHERE user_id = $1`

	var refID sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&profile.ID, &profile.UserID, &profile.ProfileKey, &refID, &profile.CreatedAt, &profile.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, profiles.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by user id: %w", err)
	}

	if refID.Valid {
		profile.RefID = &refID.String
	}

	return profile, nil
}

// Create inserts a new profile mapping
func (r *postgresProfileRepo) Create(ctx context.Context, profile *profiles.UserProfile) (*profiles.UserProfile, error) {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}

	query := `
		INSERT INTO user_profiles (id, user_id, profile_key, ref_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, profile_key, ref_id, created_at, updated_at`

	var refID sql.NullString
	err := r.db.QueryRowContext(ctx, query, profile.ID, profile.UserID, profile.ProfileKey, profile.RefID).
		Scan(&profile.ID, &profile.UserID, &profile.ProfileKey, &refID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		// Check for unique constraint violation on user_id
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "user_profiles_user_id_key") {
			return nil, profiles.ErrProfileExists
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if refID.Valid {
		profile.RefID = &refID.String
	} else {
		profile.RefID = nil
	}

	return profile, nil
}

// UpdateRefID stores a new upstream reference id for the user's profile
func (r *postgresProfileRepo) UpdateRefID(ctx context.Context, userID, refID string) error {
	query := `
		UPDATE user_profiles
		SET ref_id = $2, updated_at = NOW()
		WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID, refID)
	if err != nil {
		return fmt.Errorf("failed to update ref id: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for user=%s: %w", userID, err)
	}
	if rowsAffected == 0 {
		return profiles.ErrProfileNotFound
	}

	return nil
}
