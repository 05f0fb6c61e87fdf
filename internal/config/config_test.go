package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "lactario-api", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, "vinculo_de_vida", cfg.Database.Name)
	assert.Equal(t, 8*time.Hour, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, "Admin", cfg.Bootstrap.AdminName)
	assert.Equal(t, "555-0000", cfg.Bootstrap.AdminPhone)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("JWT_ACCESS_TTL", "30m")
	t.Setenv("TRACING_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.True(t, cfg.Tracing.Enabled)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestLoad_ProductionRules(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("DB_SSLMODE", "disable")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET must be at least 32 characters in production")
	assert.Contains(t, err.Error(), "DB_SSLMODE=disable is not allowed in production")
	assert.Contains(t, err.Error(), "BOOTSTRAP_ADMIN_PASSWORD is required in production")
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db.internal", Port: 5432, Name: "vinculo_de_vida",
		User: "lactario", Password: "s3cret", SSLMode: "require",
	}
	assert.Equal(t,
		"host=db.internal user=lactario password=s3cret dbname=vinculo_de_vida port=5432 sslmode=require Timezone=UTC",
		d.DSN())
}
