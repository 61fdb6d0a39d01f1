package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateJWTSecretRejectsShortSecret(t *testing.T) {
	err := ValidateJWTSecret("short")
	assert.Error(t, err)
}

func TestValidateJWTSecretRejectsLowDiversitySecret(t *testing.T) {
	err := ValidateJWTSecret("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	assert.Error(t, err)
}

func TestValidateJWTSecretAcceptsStrongSecret(t *testing.T) {
	err := ValidateJWTSecret("a-reasonably-long-and-varied-secret-1234567890")
	assert.NoError(t, err)
}

func TestLoadUsesDefaultsWhenUnset(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-reasonably-long-and-varied-secret-1234567890")
	t.Setenv("SERVER_ID", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("GOTHAM_ENV", "")
	t.Setenv("NODE_ENV", "development")
	t.Setenv("MINIO_SECRET_KEY", "")
	t.Setenv("FAIL_KEYGEN_IF_ACTIVE_SHARE_EXISTS", "")

	cfg := Load()
	assert.Equal(t, "ecdsa-server-1", cfg.ServerID)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "local", cfg.StorageBackend)
	assert.Equal(t, "dev", cfg.Env)
	assert.False(t, cfg.FailKeygenIfActiveShareExists)
}

func TestLoadReadsOverriddenValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-reasonably-long-and-varied-secret-1234567890")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("STORAGE_BACKEND", "cloud")
	t.Setenv("NODE_ENV", "development")
	t.Setenv("MINIO_SECRET_KEY", "a-custom-secret")
	t.Setenv("FAIL_KEYGEN_IF_ACTIVE_SHARE_EXISTS", "true")

	cfg := Load()
	assert.Equal(t, "9999", cfg.ServerPort)
	assert.Equal(t, "cloud", cfg.StorageBackend)
	assert.True(t, cfg.FailKeygenIfActiveShareExists)
}
