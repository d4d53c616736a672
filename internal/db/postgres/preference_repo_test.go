package postgres

import (
	"SocialRelay/internal/core/platforms"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceRepo_CreateBatchAndList(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewPreferenceRepository(db)
	userID := "test-user-" + uuid.NewString()
	defer cleanupUserData(t, db, userID)

	err := repo.CreateBatch(context.Background(), []platforms.PlatformPreference{
		{UserID: userID, Platform: "facebook", Enabled: true},
		{UserID: userID, Platform: "linkedin", Enabled: true},
	})
	require.NoError(t, err)

	prefs, err := repo.ListByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, prefs, 2)

	byPlatform := map[string]bool{}
	for _, pref := range prefs {
		byPlatform[pref.Platform] = pref.Enabled
		assert.NotEmpty(t, pref.ID)
	}
	assert.Equal(t, map[string]bool{"facebook": true, "linkedin": true}, byPlatform)
}

func TestPreferenceRepo_CreateBatchIgnoresExistingRows(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewPreferenceRepository(db)
	userID := "test-user-" + uuid.NewString()
	defer cleanupUserData(t, db, userID)

	// User disabled facebook earlier; a racing sync pass must not
	// overwrite the row or fail.
	_, err := repo.Upsert(context.Background(), userID, "facebook", false)
	require.NoError(t, err)

	err = repo.CreateBatch(context.Background(), []platforms.PlatformPreference{
		{UserID: userID, Platform: "facebook", Enabled: true},
		{UserID: userID, Platform: "twitter", Enabled: true},
	})
	require.NoError(t, err)

	prefs, err := repo.ListByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, prefs, 2)

	for _, pref := range prefs {
		if pref.Platform == "facebook" {
			assert.False(t, pref.Enabled, "existing row must keep its stored value")
		}
	}
}

func TestPreferenceRepo_UpsertCreatesThenUpdatesInPlace(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewPreferenceRepository(db)
	userID := "test-user-" + uuid.NewString()
	defer cleanupUserData(t, db, userID)

	first, err := repo.Upsert(context.Background(), userID, "twitter", true)
	require.NoError(t, err)
	assert.True(t, first.Enabled)

	second, err := repo.Upsert(context.Background(), userID, "twitter", false)
	require.NoError(t, err)
	assert.False(t, second.Enabled)
	assert.Equal(t, first.ID, second.ID, "update must not create a second row")

	prefs, err := repo.ListByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, prefs, 1)
}

func TestPreferenceRepo_ListEmpty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewPreferenceRepository(db)

	prefs, err := repo.ListByUserID(context.Background(), "no-such-user-"+uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, prefs)
}
