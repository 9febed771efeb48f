package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		Port      string
		UploadDir string
	}
	Store struct {
		Path string
	}
	Orders struct {
		RetentionWindow time.Duration
		PollInterval    time.Duration
	}
}

// Load reads configuration from the environment, optionally preloading
// a .env file when path is non-empty. Every setting has a default; the
// service starts with no environment at all.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}
	cfg.App.Port = getenv("APP_PORT", "8080")
	cfg.App.UploadDir = getenv("UPLOAD_DIR", "uploads")
	cfg.Store.Path = getenv("STORE_PATH", "quickserve.db")

	var err error
	cfg.Orders.RetentionWindow, err = duration("ORDER_RETENTION_WINDOW", 60*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.Orders.PollInterval, err = duration("ORDER_POLL_INTERVAL", time.Second)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
