package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, "acaipos-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 30*24*time.Hour, cfg.Session.MaxAge)
	assert.Equal(t, 120*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, 300*time.Second, cfg.Session.RefreshInterval)
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Equal(t, "lax", cfg.Cookie.SameSite)
	assert.Equal(t, 5, cfg.HTTP.AuthRateLimitRequests)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
}

func TestValidate_SessionWindows(t *testing.T) {
	cfg := defaultConfig()
	cfg.Session.IdleTimeout = cfg.Session.MaxAge + time.Hour
	assert.Error(t, cfg.validate())

	cfg = defaultConfig()
	cfg.Session.RefreshInterval = cfg.Session.IdleTimeout + time.Minute
	assert.Error(t, cfg.validate())

	assert.NoError(t, defaultConfig().validate())
}

func TestValidate_ConnectionPool(t *testing.T) {
	cfg := defaultConfig()
	cfg.Database.MaxIdleConns = cfg.Database.MaxOpenConns + 1
	assert.Error(t, cfg.validate())
}

func TestValidate_Production(t *testing.T) {
	prod := func() *Config {
		cfg := defaultConfig()
		cfg.App.Env = "production"
		cfg.Session.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.Cookie.Secure = true
		return cfg
	}

	require.NoError(t, prod().validate())

	cfg := prod()
	cfg.Session.Secret = "short"
	assert.Error(t, cfg.validate())

	cfg = prod()
	cfg.Database.SSLMode = "disable"
	assert.Error(t, cfg.validate())

	cfg = prod()
	cfg.Cookie.Secure = false
	assert.Error(t, cfg.validate())

	cfg = prod()
	cfg.HTTP.CORSAllowOrigins = []string{"*"}
	assert.Error(t, cfg.validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "acaipos",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%2Fword")
	assert.Contains(t, dsn, "sslmode=disable")
}
