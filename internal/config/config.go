package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Dataset DatasetConfig
	Storage StorageConfig
	Refresh RefreshConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// DatasetConfig locates the source dataset.
type DatasetConfig struct {
	// Path is the local dataset file; the extension selects the reader.
	Path string
	// URL, when set, is fetched into Path if the file is missing.
	URL string
}

// StorageConfig holds sqlite snapshot store options.
type StorageConfig struct {
	// SQLitePath is the database file holding the persisted snapshot.
	SQLitePath string
	// Override forces a rebuild of the snapshot table at startup.
	Override bool
}

// RefreshConfig controls the optional scheduled snapshot refresh.
type RefreshConfig struct {
	// CronSchedule is a standard 5-field cron expression; empty disables the
	// scheduler.
	CronSchedule string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Dataset: DatasetConfig{
			Path: getenvWithDefault("DATASET_PATH", "grocery_inventory.csv"),
			URL:  os.Getenv("DATASET_URL"),
		},
		Storage: StorageConfig{
			SQLitePath: getenvWithDefault("SQLITE_PATH", "data.db"),
			Override:   os.Getenv("DB_OVERRIDE") == "true",
		},
		Refresh: RefreshConfig{
			CronSchedule: os.Getenv("REFRESH_CRON_SCHEDULE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Dataset.Path == "" {
		return errors.New("DATASET_PATH must be provided")
	}

	if c.Storage.SQLitePath == "" {
		return errors.New("SQLITE_PATH must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
