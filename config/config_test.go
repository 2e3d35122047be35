package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BACKEND_URL", "http://backend.test")
	t.Setenv("CMSADMIN_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CREDENTIALS_FILE", "")
	t.Setenv("API_TIMEOUT", "")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "http://backend.test", cfg.BackendURL)
	assert.Equal(t, "50010", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.NotEmpty(t, cfg.CredentialsFile)
}

func TestLoadRequiresBackendURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BACKEND_URL", "")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "BACKEND_URL")
}

func TestLoadNeedsNoSessionSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	assert.NoError(t, err, "Browser sessions live in memory, no cookie secret is consumed")
}

func TestLoadReadsConfigFile(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BACKEND_URL", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	assert.NoError(t, os.WriteFile(path, []byte(`
backend_url = "http://file.test"
port = "6060"
api_timeout = "20s"
`), 0o600))
	t.Setenv("CMSADMIN_CONFIG", path)

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "http://file.test", cfg.BackendURL)
	assert.Equal(t, "6060", cfg.Port)
	assert.Equal(t, 20*time.Second, cfg.APITimeout)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	setBaseEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	assert.NoError(t, os.WriteFile(path, []byte(`
backend_url = "http://file.test"
port = "6060"
`), 0o600))
	t.Setenv("CMSADMIN_CONFIG", path)
	t.Setenv("PORT", "7070")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "http://backend.test", cfg.BackendURL, "Environment wins over file values")
	assert.Equal(t, "7070", cfg.Port)
}

func TestInvalidTimeoutFallsBack(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("API_TIMEOUT", "soon")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.APITimeout, "Unparseable timeout keeps the default")
}
