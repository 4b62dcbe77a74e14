package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Loads the shipped config.yml and asserts snake_case keys reach their
// fields, in particular the multi-word ones that have no matching default.
func TestLoadDecodesSnakeCaseKeys(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 24, cfg.JWT.ExpiryHours)
	assert.Equal(t, 50.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 100, cfg.RateLimit.Burst)
	assert.Equal(t, 5*time.Minute, cfg.Cache.DirectoryTTL)
	assert.Equal(t, "healthbridge", cfg.Database.Name)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "no-reply@healthbridge.example", cfg.SMTP.From)
}
