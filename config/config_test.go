package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "igram", cfg.MongoDB)
	assert.Equal(t, 30*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 100, cfg.MaxUploadMB)
	assert.Equal(t, "creator@igram.com", cfg.CreatorEmail)
	assert.False(t, cfg.S3UsePathStyle)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("PORT", "3000")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("MAX_UPLOAD_MB", "5")
	t.Setenv("S3_ENDPOINT", "http://minio:9000")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 5, cfg.MaxUploadMB)
	assert.True(t, cfg.S3UsePathStyle, "custom endpoints default to path-style addressing")
}

func TestFromEnv_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := fromEnv()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestFromEnv_BadValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("STORE_TIMEOUT", "soon")

	_, err := fromEnv()
	assert.ErrorContains(t, err, "STORE_TIMEOUT")
}
