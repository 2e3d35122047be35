// Package config loads the console configuration from the environment,
// optionally seeded by a .env file and a TOML config file. Environment
// variables always win over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"cmsadmin/constants"
	"cmsadmin/logger"
)

// Config holds everything the console needs to start.
type Config struct {
	// BackendURL is the base URL of the content-management API.
	BackendURL string `toml:"backend_url"`

	// Port the console listens on.
	Port string `toml:"port"`

	// LogLevel for zerolog.
	LogLevel string `toml:"log_level"`

	// CredentialsFile is where the operator token and user record are
	// persisted between runs.
	CredentialsFile string `toml:"credentials_file"`

	// APITimeout applied to every backend call.
	APITimeout time.Duration `toml:"-"`
}

// fileConfig mirrors Config for TOML decoding; the timeout is expressed as a
// duration string in the file.
type fileConfig struct {
	BackendURL      string `toml:"backend_url"`
	Port            string `toml:"port"`
	LogLevel        string `toml:"log_level"`
	CredentialsFile string `toml:"credentials_file"`
	APITimeout      string `toml:"api_timeout"`
}

// Load reads .env (when present), then the optional TOML file named by
// CMSADMIN_CONFIG (default config.toml), then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:            constants.DefaultPort,
		LogLevel:        constants.DefaultLogLevel,
		CredentialsFile: defaultCredentialsFile(),
		APITimeout:      constants.APITimeout,
	}

	path := os.Getenv("CMSADMIN_CONFIG")
	if path == "" {
		path = "config.toml"
	}
	if _, err := os.Stat(path); err == nil {
		if err := applyFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		logger.Get().Info().Str("path", path).Msg("Config file loaded")
	}

	applyEnv(cfg)

	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("missing BACKEND_URL (or backend_url in %s)", path)
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return err
	}
	if fc.BackendURL != "" {
		cfg.BackendURL = fc.BackendURL
	}
	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.CredentialsFile != "" {
		cfg.CredentialsFile = fc.CredentialsFile
	}
	if fc.APITimeout != "" {
		if d, err := time.ParseDuration(fc.APITimeout); err == nil && d > 0 {
			cfg.APITimeout = d
		}
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CREDENTIALS_FILE"); v != "" {
		cfg.CredentialsFile = v
	}
	if v := os.Getenv("API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.APITimeout = d
		}
	}
}

func defaultCredentialsFile() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "cmsadmin", "credentials.json")
	}
	return "credentials.json"
}
