package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DB DBConfig `toml:"database"`
}

type DBConfig struct {
	ConnectionString string `toml:"connection_string"` // The entire DB connection string.
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".config", "technique")
	return filepath.Join(dir, "config.toml"), nil
}

// Reads the configuration from the config file. The file is optional:
// TECHNIQUE_DATABASE_URL takes priority when set.
func LoadConfig() (*Config, error) {
	var cfg Config

	if path, err := GetConfigPath(); err == nil {
		// A missing config file is fine, env vars can cover it.
		toml.DecodeFile(path, &cfg)
	}

	if url := os.Getenv("TECHNIQUE_DATABASE_URL"); url != "" {
		cfg.DB.ConnectionString = url
	}

	// Check for a DEV_MODE environment variable.
	if os.Getenv("DEV_MODE") == "true" {
		cfg.DB.ConnectionString = "file:./local.db?cache=shared&mode=rwc"
	}

	return &cfg, nil
}
