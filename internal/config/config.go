package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every value the server needs, resolved once at startup.
// Constructed in main and passed by reference into constructors - the
// rest of the codebase never reads the environment directly.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Ayrshare AyrshareConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL string
}

// AyrshareConfig configures the upstream posting provider.
// PrivateKey holds the contents of the key file, not its path.
type AyrshareConfig struct {
	APIKey     string
	BaseURL    string
	PrivateKey string
	JWTDomain  string
	Timeout    time.Duration
}

// Load reads .env (if present) and the process environment and returns
// a fully resolved Config. Missing required values fail fast here so a
// misconfigured server never starts half-working.
func Load() (*Config, error) {
	_ = godotenv.Load()

	apiKey := os.Getenv("AYRSHARE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing env AYRSHARE_API_KEY")
	}

	baseURL := strings.TrimRight(os.Getenv("AYRSHARE_URL"), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("missing env AYRSHARE_URL")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("missing env DATABASE_URL")
	}

	keyPath := os.Getenv("PRIVATE_KEY_PATH")
	if keyPath == "" {
		return nil, fmt.Errorf("missing env PRIVATE_KEY_PATH")
	}
	keyBytes, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key %s: %w", keyPath, err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	domain := os.Getenv("JWT_DOMAIN")
	if domain == "" {
		domain = "ACME"
	}

	timeout := 30 * time.Second
	if raw := os.Getenv("AYRSHARE_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid AYRSHARE_TIMEOUT %q: %w", raw, err)
		}
		timeout = parsed
	}

	return &Config{
		Server:   ServerConfig{Port: port},
		Database: DatabaseConfig{URL: dbURL},
		Ayrshare: AyrshareConfig{
			APIKey:     apiKey,
			BaseURL:    baseURL,
			PrivateKey: string(keyBytes),
			JWTDomain:  domain,
			Timeout:    timeout,
		},
	}, nil
}
