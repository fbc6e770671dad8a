package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds process-level settings resolved from the environment.
type Config struct {
	DBPath   string // NOGGIN_DB, empty means the XDG default
	LogPath  string // NOGGIN_LOG, empty means the XDG state default
	LogLevel string // NOGGIN_LOG_LEVEL
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing.
func Load() Config {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		DBPath:   os.Getenv("NOGGIN_DB"),
		LogPath:  os.Getenv("NOGGIN_LOG"),
		LogLevel: envOr("NOGGIN_LOG_LEVEL", "info"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
