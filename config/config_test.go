package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV", "test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("REDIS_DB", "")
	t.Setenv("REDIS_URL", "")
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "leftovercook", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_NAME", "leftovercook_test")
	t.Setenv("REDIS_DB", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "leftovercook_test", cfg.DBName)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoadConfigInvalidRedisDB(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_DB")
}

func TestLoadConfigReadsSecretFiles(t *testing.T) {
	setBaseEnv(t)
	secretsDir := t.TempDir()
	t.Setenv("SECRETS_DIR", secretsDir)
	t.Setenv("DB_PASSWORD", "")
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "db_password"), []byte("s3cret\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.DBPassword)
}

func TestLoadConfigEnvBeatsSecretFile(t *testing.T) {
	setBaseEnv(t)
	secretsDir := t.TempDir()
	t.Setenv("SECRETS_DIR", secretsDir)
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "db_password"), []byte("from-file"), 0o600))
	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.DBPassword)
}

func TestValidateConfigMissingJWTSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")

	cases := map[string]Environment{
		"production":  Production,
		"test":        Test,
		"development": Development,
		"":            Development,
		"staging":     Development,
	}
	for env, want := range cases {
		t.Setenv("ENV", env)
		assert.Equal(t, want, GetEnvironment(), "ENV=%q", env)
	}

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}
