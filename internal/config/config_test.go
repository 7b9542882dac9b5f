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
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "studyprep-api", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
	assert.False(t, cfg.Auth.Bypass)
	assert.Equal(t, "http", cfg.Auth.Provider)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 10*time.Second, cfg.SearchTimeout())
	assert.Equal(t, "root:@tcp(127.0.0.1:3306)/studyprep?parseTime=true&loc=Local&charset=utf8mb4", cfg.MySQLDSN())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[app]
port = 9090

[auth]
provider = "jwt"
jwt_secret = "from-file"

[search]
rate_limit_per_minute = 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("AUTH_JWT_SECRET", "from-env")
	t.Setenv("SEARCH_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "jwt", cfg.Auth.Provider)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 5, cfg.Search.RateLimitPerMinute)
	assert.Equal(t, 3*time.Second, cfg.SearchTimeout())
}

func TestLoadBypass(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	t.Run("enabled in dev", func(t *testing.T) {
		t.Setenv("AUTH_BYPASS", "true")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Auth.Bypass)
		assert.Equal(t, "dev@studyprep.local", cfg.Auth.BypassIdentity)
	})

	t.Run("rejected in production", func(t *testing.T) {
		t.Setenv("AUTH_BYPASS", "1")
		t.Setenv("APP_ENV", "production")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("empty identity rejected", func(t *testing.T) {
		t.Setenv("AUTH_BYPASS", "true")
		t.Setenv("AUTH_BYPASS_IDENTITY", "  ")

		_, err := Load()
		assert.ErrorContains(t, err, "bypass_identity")
	})

	t.Run("garbage value keeps default", func(t *testing.T) {
		t.Setenv("AUTH_BYPASS", "maybe")

		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.Auth.Bypass)
	})
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("AUTH_PROVIDER", "ldap")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadJWTProviderNeedsSecret(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("AUTH_PROVIDER", "jwt")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}
