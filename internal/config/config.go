// Package config loads runtime settings from an optional .env file and the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/pable/go-team-stats/internal/logger"
)

// DefaultModel is the Anthropic model used by the analyze command.
const DefaultModel = "claude-haiku-4-5-20251001"

// Config holds settings shared by every command. Command-line flags override it.
type Config struct {
	DBPath     string
	Addr       string
	Tournament string
	APIKey     string
	Model      string
	// FetchToken is sent as a bearer token when importing a workbook from a URL.
	FetchToken string
}

// Load reads .env from the working directory, if present, then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warnf("could not read .env: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	return &Config{
		DBPath:     getEnv("TEAMSTATS_DB", filepath.Join(userHome(), ".teamstats", "stats.db")),
		Addr:       getEnv("TEAMSTATS_ADDR", ":8080"),
		Tournament: getEnv("TEAMSTATS_TOURNAMENT", "all"),
		APIKey:     getEnv("ANTHROPIC_API_KEY", ""),
		Model:      getEnv("TEAMSTATS_MODEL", DefaultModel),
		FetchToken: getEnv("TEAMSTATS_FETCH_TOKEN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
