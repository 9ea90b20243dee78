package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "authenticated", cfg.JWT.Audience)
	assert.Empty(t, cfg.JWT.Secret, "no se inyectan secretos por defecto")
	assert.Equal(t, 10*time.Second, cfg.AI.Timeout)
	assert.False(t, cfg.Redis.Enabled())
	assert.True(t, cfg.DB.ForceIPv4)
	assert.Equal(t, int32(2), cfg.DB.MinConns)
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("AI_PROVIDER", "Gemini")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SUGGESTION_CACHE_TTL_SECONDS", "60")
	t.Setenv("DB_MAX_CONNS", "4")
	t.Setenv("DB_FORCE_IPV4", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, AIProviderGemini, cfg.AI.Provider)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, time.Minute, cfg.Redis.TTL)
	assert.Equal(t, int32(4), cfg.DB.MaxConns)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestLoad_ProveedorInvalido(t *testing.T) {
	t.Setenv("AI_PROVIDER", "openai")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "x", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/x?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://a:b@host:6543/postgres"
	assert.Equal(t, c.DatabaseURL, c.ConnectionString())
}
