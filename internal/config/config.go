package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	LogDir        string
	DBPath        string
	BridgePath    string
	LogLevel      string
	CountExcluded bool
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid. CLI
// flags override these values later.
func Load() Config {
	// Ignore error so the tool still runs when .env is absent.
	_ = godotenv.Load()

	return Config{
		LogDir:        envOr("MTGO_LOG_DIR", ""),
		DBPath:        envOr("MTGOMETRICS_DB", defaultDBPath()),
		BridgePath:    envOr("MTGO_BRIDGE_PATH", ""),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		CountExcluded: envBoolOr("COUNT_EXCLUDED", false),
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".mtgometrics", "matches.db")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
