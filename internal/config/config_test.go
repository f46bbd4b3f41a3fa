package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "drive")
	t.Setenv("DB_PASSWORD", "pg-pass")
	t.Setenv("DB_NAME", "drive")
	t.Setenv("DB_SCHEME", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("AUTH_TOKEN_TTL", "")
	t.Setenv("MAX_UPLOAD_MB", "")
	t.Setenv("S3_USE_SSL", "true")
	t.Setenv("S3_PRESIGN_TTL", "15m")
	t.Setenv("REDIS_DB", "2")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, 6543, cfg.DBPort)
	assert.True(t, cfg.S3UseSSL)
	assert.Equal(t, 15*time.Minute, cfg.S3PresignTTL)
	assert.Equal(t, 2, cfg.RedisDB)

	// значения по умолчанию
	assert.Equal(t, 24*time.Hour, cfg.AuthTokenTTL)
	assert.Equal(t, "public", cfg.DBScheme)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, int64(64<<20), cfg.MaxUploadBytes())
	assert.Equal(t, "postgres://drive:pg-pass@db:6543/drive?sslmode=disable", cfg.GetDSN())
}

func TestLoadFromEnvRequiresSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestStringMasksSecrets(t *testing.T) {
	cfg := Config{DBPassword: "pg-pass", S3SecretKey: "s3-secret", AuthJWTSecret: "jwt-secret"}
	s := cfg.String()
	for _, secret := range []string{"pg-pass", "s3-secret", "jwt-secret"} {
		assert.NotContains(t, s, secret)
	}
	assert.Contains(t, s, "DBPassword: ********")
}
