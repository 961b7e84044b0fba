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

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.True(t, cfg.Server.SwaggerEnabled)
	assert.Equal(t, []string{"*"}, cfg.Server.TrustedOrigins)
	assert.Equal(t, 0, cfg.Server.TrustedProxies)
	assert.Equal(t, TokenFormatJWT, cfg.Auth.TokenFormat)
	assert.Equal(t, []byte("test-secret"), cfg.Auth.JWTSecret)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.TokenLifetime)
	assert.Equal(t, HashBcrypt, cfg.Auth.PasswordHash)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 100, cfg.RateLimit.Max)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
}

func TestLoad_MissingSecretIsFatal(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestLoad_Paseto(t *testing.T) {
	t.Setenv("TOKEN_FORMAT", "paseto")
	t.Setenv("PASETO_KEY", "short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PASETO_KEY must be exactly 32 bytes")

	t.Setenv("PASETO_KEY", "0123456789abcdef0123456789abcdef")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Len(t, cfg.Auth.PasetoKey, 32)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("PORT", "8081")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_LIFETIME", "7d")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("TRUSTED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/jobs.db")
	t.Setenv("TRUSTED_PROXIES", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.False(t, cfg.Server.SwaggerEnabled)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenLifetime)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.TrustedOrigins)
	assert.Equal(t, "/tmp/jobs.db", cfg.Database.ConnectionString())
	assert.Equal(t, 1, cfg.Server.TrustedProxies)
}

func TestValidate_CollectsErrors(t *testing.T) {
	cfg := &Config{
		Auth: AuthConfig{
			TokenFormat:   "opaque",
			TokenLifetime: 0,
			PasswordHash:  "md5",
		},
		Database: DatabaseConfig{Driver: "mongo"},
		Server:   ServerConfig{TrustedProxies: -1},
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"TOKEN_FORMAT", "JWT_LIFETIME", "PASSWORD_HASH", "DB_DRIVER", "TRUSTED_PROXIES"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"900", 900 * time.Second, true},
		{"15m", 15 * time.Minute, true},
		{"30d", 30 * 24 * time.Hour, true},
		{"xd", 0, false},
		{"soon", 0, false},
	}

	for _, tt := range tests {
		got, err := parseDuration(tt.in)
		if !tt.ok {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestConnectionString_Postgres(t *testing.T) {
	c := DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: "5432", User: "u", Password: "p", DBName: "jobs", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=jobs sslmode=disable", c.ConnectionString())

	c.URL = "postgres://u:p@db/jobs"
	assert.Equal(t, "postgres://u:p@db/jobs", c.ConnectionString())
}
