package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOUSETAB_JWT_SECRET", "test-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "./data/housetab.db", cfg.Database.Path)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TokenDuration())
	assert.False(t, cfg.Email.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadSecretFromEnvOnly(t *testing.T) {
	// No config file at all: the secret must come through from the
	// environment, as the startup error message prescribes.
	t.Setenv("HOUSETAB_JWT_SECRET", "env-only-secret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-only-secret", cfg.JWT.Secret)
}

func TestLoadEmailFromEnvOnly(t *testing.T) {
	t.Setenv("HOUSETAB_JWT_SECRET", "test-secret")
	t.Setenv("HOUSETAB_EMAIL_ENABLED", "true")
	t.Setenv("HOUSETAB_EMAIL_HOST", "smtp.example.com")
	t.Setenv("HOUSETAB_EMAIL_PORT", "587")
	t.Setenv("HOUSETAB_EMAIL_FROM", "tab@example.com")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Email.Enabled)
	assert.Equal(t, "smtp.example.com", cfg.Email.Host)
	assert.Equal(t, 587, cfg.Email.Port)
	assert.Equal(t, "tab@example.com", cfg.Email.From)
}

func TestLoadRequiresSecret(t *testing.T) {
	os.Unsetenv("HOUSETAB_JWT_SECRET")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
  mode: debug
jwt:
  secret: file-secret
  expire_hours: 72
log:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 72*time.Hour, cfg.JWT.TokenDuration())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
jwt:
  secret: file-secret
`), 0o644))

	t.Setenv("HOUSETAB_SERVER_PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
