package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freelance-forge-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL())
	assert.False(t, cfg.Session.CookieSecure)
	assert.NotEmpty(t, cfg.Session.Secret, "en development se usa un secreto de desarrollo")
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	t.Setenv("DB_DRIVER", "MEMORY")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverMemory, cfg.DB.Driver)
	assert.Equal(t, "0.0.0.0:8081", cfg.HTTP.Addr())
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
}

func TestLoad_ProductionSinSecretoFalla(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_DriverDesconocido(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "forge", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/forge?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}
