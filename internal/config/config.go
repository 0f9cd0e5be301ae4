package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath       string
	Addr         string
	EvalInterval time.Duration
}

// Load reads configuration from the environment, with a .env file as an
// optional overlay for development.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		DBPath:       getEnv("FOCUSFIT_DB", "data/focusfit.db"),
		Addr:         getEnv("FOCUSFIT_ADDR", ":8080"),
		EvalInterval: 15 * time.Minute,
	}

	if v := os.Getenv("FOCUSFIT_EVAL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.EvalInterval = d
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
