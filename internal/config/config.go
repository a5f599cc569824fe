// Package config loads runtime configuration from the environment.
//
// A .env file in the working directory is loaded first (if present), then
// every value is read from environment variables. Unlike database
// credentials, most settings have development defaults so `go run
// ./cmd/server` works out of the box with the sqlite backing.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backings selectable via STORE_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

// Config holds all runtime configuration values.
type Config struct {
	Port    int
	Backend string // sqlite | mysql | memory

	// sqlite
	DBPath string

	// mysql (remote table backing)
	DBUser        string
	DBPass        string
	DBHost        string
	DBPort        string
	DBName        string
	RemoteTimeout time.Duration // deadline per remote store call

	// sessions
	JWTSecret     string
	SessionTTL    time.Duration // normal login
	PersistentTTL time.Duration // "stay logged in"

	// review ledger: "replace" keeps one review per restaurant,
	// "append" allows duplicates
	ReviewPolicy string

	// map widget fallback center when geolocation is unavailable
	DefaultLat float64
	DefaultLng float64
}

// Load reads the .env file (ignored if absent) and the environment.
// It returns an error instead of exiting so main owns process lifecycle.
func Load() (Config, error) {
	// .env is a development convenience; a missing file is not an error.
	_ = godotenv.Load()

	cfg := Config{
		Port:          8080,
		Backend:       getenv("STORE_BACKEND", BackendSQLite),
		DBPath:        getenv("DB_PATH", "data/kebapp.db"),
		DBUser:        getenv("DB_USER", "kebapp"),
		DBPass:        os.Getenv("DB_PASS"),
		DBHost:        getenv("DB_HOST", "127.0.0.1"),
		DBPort:        getenv("DB_PORT", "3306"),
		DBName:        getenv("DB_NAME", "kebapp"),
		JWTSecret:     getenv("JWT_SECRET", ""),
		ReviewPolicy:  getenv("REVIEW_POLICY", "replace"),
		RemoteTimeout: 5 * time.Second,
		SessionTTL:    24 * time.Hour,
		PersistentTTL: 30 * 24 * time.Hour,
		// Paris, like the original app's hardcoded fallback.
		DefaultLat: 48.8566,
		DefaultLng: 2.3522,
	}

	var err error
	if cfg.Port, err = getint("PORT", cfg.Port); err != nil {
		return Config{}, err
	}
	if cfg.RemoteTimeout, err = getdur("REMOTE_TIMEOUT", cfg.RemoteTimeout); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = getdur("SESSION_TTL", cfg.SessionTTL); err != nil {
		return Config{}, err
	}
	if cfg.PersistentTTL, err = getdur("PERSISTENT_SESSION_TTL", cfg.PersistentTTL); err != nil {
		return Config{}, err
	}
	if cfg.DefaultLat, err = getfloat("DEFAULT_LAT", cfg.DefaultLat); err != nil {
		return Config{}, err
	}
	if cfg.DefaultLng, err = getfloat("DEFAULT_LNG", cfg.DefaultLng); err != nil {
		return Config{}, err
	}

	switch cfg.Backend {
	case BackendSQLite, BackendMySQL, BackendMemory:
	default:
		return Config{}, fmt.Errorf("config: unknown STORE_BACKEND %q", cfg.Backend)
	}

	switch cfg.ReviewPolicy {
	case "replace", "append":
	default:
		return Config{}, fmt.Errorf("config: REVIEW_POLICY must be replace or append, got %q", cfg.ReviewPolicy)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid int for %s: %q", key, v)
	}
	return n, nil
}

func getfloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: invalid float for %s: %q", key, v)
	}
	return f, nil
}

func getdur(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid duration for %s: %q", key, v)
	}
	return d, nil
}
