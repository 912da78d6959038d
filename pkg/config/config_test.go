package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("POSTS_PER_PAGE", "5")
	t.Setenv("LOGIN_URL", "/login/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "cache", cfg.RedisHost)
	assert.Equal(t, "6380", cfg.RedisPort)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 5, cfg.PostsPerPage)
	assert.Equal(t, "/login/", cfg.LoginURL)
	assert.True(t, cfg.ValidateJWTSecret())
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("POSTS_PER_PAGE", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 10, cfg.PostsPerPage)
	assert.False(t, cfg.ValidateJWTSecret())
}

func TestLoadConfig_InvalidPageSize(t *testing.T) {
	t.Setenv("POSTS_PER_PAGE", "zero")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.PostsPerPage)

	t.Setenv("POSTS_PER_PAGE", "-3")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.PostsPerPage)
}
