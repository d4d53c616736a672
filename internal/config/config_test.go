package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestKey(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "private.key")
	require.NoError(t, os.WriteFile(path, []byte("test-private-key"), 0o600))
	return path
}

func setRequiredEnv(t *testing.T) {
	t.Setenv("AYRSHARE_API_KEY", "key-123")
	t.Setenv("AYRSHARE_URL", "https://api.ayrshare.com/api/")
	t.Setenv("DATABASE_URL", "postgres://localhost/relay_test")
	t.Setenv("PRIVATE_KEY_PATH", writeTestKey(t))
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("JWT_DOMAIN", "")
	t.Setenv("AYRSHARE_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "ACME", cfg.Ayrshare.JWTDomain)
	assert.Equal(t, 30*time.Second, cfg.Ayrshare.Timeout)
	assert.Equal(t, "test-private-key", cfg.Ayrshare.PrivateKey)
	// Trailing slash is stripped so path joins stay predictable.
	assert.Equal(t, "https://api.ayrshare.com/api", cfg.Ayrshare.BaseURL)
}

func TestLoad_MissingRequiredValues(t *testing.T) {
	required := []string{"AYRSHARE_API_KEY", "AYRSHARE_URL", "DATABASE_URL", "PRIVATE_KEY_PATH"}

	for _, missing := range required {
		t.Run(missing, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(missing, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), missing)
		})
	}
}

func TestLoad_UnreadablePrivateKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PRIVATE_KEY_PATH", filepath.Join(t.TempDir(), "missing.key"))

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_CustomTimeout(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AYRSHARE_TIMEOUT", "10s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Ayrshare.Timeout)

	t.Setenv("AYRSHARE_TIMEOUT", "banana")
	_, err = Load()
	require.Error(t, err)
}
