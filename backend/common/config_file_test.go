package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func restoreSecrets(t *testing.T) {
	t.Helper()
	originalJWT := JWTSecret
	originalRefresh := JWTRefreshSecret
	t.Cleanup(func() {
		JWTSecret = originalJWT
		JWTRefreshSecret = originalRefresh
	})
}

func TestApplyConfigMap_RefreshSecretStaysIndependent(t *testing.T) {
	restoreSecrets(t)
	JWTSecret = "initial-access-secret"
	JWTRefreshSecret = "initial-refresh-secret"

	err := applyConfigMap(map[string]string{"JWT_SECRET": "configured-secret"})
	assert.NoError(t, err)

	assert.Equal(t, "configured-secret", JWTSecret)
	// The refresh secret must not inherit the access secret.
	assert.Equal(t, "initial-refresh-secret", JWTRefreshSecret)
}

func TestApplyConfigMap_RefreshSecretConfigured(t *testing.T) {
	restoreSecrets(t)

	err := applyConfigMap(map[string]string{
		"JWT_SECRET":         "access-secret",
		"JWT_REFRESH_SECRET": "refresh-secret",
	})
	assert.NoError(t, err)

	assert.Equal(t, "access-secret", JWTSecret)
	assert.Equal(t, "refresh-secret", JWTRefreshSecret)
}

func TestApplyConfigMap_InvalidNumber(t *testing.T) {
	err := applyConfigMap(map[string]string{"MAX_FILE_SIZE": "not-a-number"})
	assert.Error(t, err)
}
