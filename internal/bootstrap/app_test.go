package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"studyprep-api/internal/config"
	"studyprep-api/internal/identity"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			BypassIdentity: "dev@studyprep.local",
			Provider:       "http",
			ProviderURL:    "http://127.0.0.1:1",
		},
		Search: config.SearchConfig{TimeoutSec: 10},
	}
}

func TestNewVerifierBypass(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Bypass = true

	v := NewVerifier(cfg)
	require.IsType(t, &identity.BypassVerifier{}, v)

	id, err := v.Verify(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, identity.Identity("dev@studyprep.local"), id)
}

func TestNewVerifierProvider(t *testing.T) {
	cfg := testConfig()
	assert.IsType(t, &identity.ProviderVerifier{}, NewVerifier(cfg))

	_, err := NewVerifier(cfg).Verify(context.Background(), "")
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)
}

func TestNewVerifierJWT(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Provider = "jwt"
	cfg.Auth.JWTSecret = "bootstrap-test-secret"

	token, err := identity.GenerateToken(cfg.Auth.JWTSecret, "u1", "dana@example.com", time.Minute)
	require.NoError(t, err)

	id, err := NewVerifier(cfg).Verify(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, identity.Identity("dana@example.com"), id)
}

func TestAuthMode(t *testing.T) {
	cfg := testConfig()
	a := &App{Config: cfg}
	assert.Equal(t, "http", a.AuthMode())

	cfg.Auth.Bypass = true
	assert.Equal(t, "bypass", a.AuthMode())
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, gormLogLevel("debug"))
	assert.Equal(t, gormlogger.Error, gormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, gormLogLevel("info"))
}

func TestCloseEmptyApp(t *testing.T) {
	assert.NoError(t, (&App{}).Close())
}
