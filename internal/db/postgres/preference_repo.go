package postgres

import (
	"SocialRelay/internal/core/platforms"
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

type postgresPreferenceRepo struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new PostgreSQL preference repository
func NewPreferenceRepository(db *sql.DB) platforms.PreferenceRepository {
	return &postgresPreferenceRepo{db: db}
}

// ListByUserID retrieves all preference rows for a user
func (r *postgresPreferenceRepo) ListByUserID(ctx context.Context, userID string) ([]platforms.PlatformPreference, error) {
	query := `SELECT id, user_id, platform, enabled, created_at, updated_at FROM platform_preferences WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var prefs []platforms.PlatformPreference
	for rows.Next() {
		var pref platforms.PlatformPreference
		if err := rows.Scan(&pref.ID, &pref.UserID, &pref.Platform, &pref.Enabled, &pref.CreatedAt, &pref.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan preference row: %w", err)
		}
		prefs = append(prefs, pref)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating preference rows: %w", err)
	}

	return prefs, nil
}

// CreateBatch inserts newly discovered preference rows in one
// transaction. ON CONFLICT DO NOTHING makes a concurrent first-sight
// race loser a no-op instead of a constraint error.
func (r *postgresPreferenceRepo) CreateBatch(ctx context.Context, prefs []platforms.PlatformPreference) error {
	if len(prefs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("failed to rollback transaction", slog.String("error", err.Error()))
		}
	}()

	query := `
		INSERT INTO platform_preferences (id, user_id, platform, enabled)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, platform) DO NOTHING`

	for _, pref := range prefs {
		id := pref.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx, query, id, pref.UserID, pref.Platform, pref.Enabled); err != nil {
			return fmt.Errorf("failed to insert preference %s/%s: %w", pref.UserID, pref.Platform, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit preference batch: %w", err)
	}

	return nil
}

// Upsert atomically inserts or updates the (userID, platform) row.
// A bare insert-then-check would leave a race window; the conflict
// clause removes it entirely.
func (r *postgresPreferenceRepo) Upsert(ctx context.Context, userID, platform string, enabled bool) (*platforms.PlatformPreference, error) {
	query := `
		INSERT INTO platform_preferences (id, user_id, platform, enabled)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, platform)
		DO UPDATE SET enabled = EXCLUDED.enabled, updated_at = NOW()
		RETURNING id, user_id, platform, enabled, created_at, updated_at`

	pref := &platforms.PlatformPreference{}
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), userID, platform, enabled).
		Scan(&pref.ID, &pref.UserID, &pref.Platform, &pref.Enabled, &pref.CreatedAt, &pref.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert preference: %w", err)
	}

	return pref, nil
}
