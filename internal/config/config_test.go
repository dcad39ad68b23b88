package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "5000", c.Server.Port)
	assert.Equal(t, ":5000", c.Addr())
	assert.Equal(t, 30*24*time.Hour, c.Auth.TokenTTL)
	assert.Equal(t, DriverMongo, c.Store.Driver)
	assert.Equal(t, []string{"http://localhost:3000", "https://products-frontend-neon.vercel.app"}, c.Server.AllowedOrigins)
	assert.Error(t, c.Validate(), "defaults carry no JWT secret")
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "8080")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("DB_DRIVER", "Memory")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example ,")
	t.Setenv("LOG_LEVEL", "debug")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvTest, c.Env)
	assert.Equal(t, "s3cret", c.Auth.JWTSecret)
	assert.Equal(t, "8080", c.Server.Port)
	assert.Equal(t, time.Hour, c.Auth.TokenTTL)
	assert.Equal(t, 4, c.Auth.BcryptCost)
	assert.Equal(t, DriverMemory, c.Store.Driver)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, c.Server.AllowedOrigins)
	assert.Equal(t, slog.LevelDebug, c.SlogLevel())
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "thirty days")

	_, err := Load()
	assert.ErrorContains(t, err, "TOKEN_TTL")
}

func TestLoadYAML_EnvFileOverridesCommon(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("common.yaml", "server:\n  port: \"7000\"\nstore:\n  driver: postgres\nlog_level: warn\n")
	write("prod.yaml", "server:\n  port: \"80\"\nauth:\n  token_ttl: 48h\n")

	c := Default()
	c.Env = EnvProduction
	require.NoError(t, loadYAML(c, []string{filepath.Join(dir, "missing"), dir}))

	assert.Equal(t, "80", c.Server.Port)
	assert.Equal(t, DriverPostgres, c.Store.Driver)
	assert.Equal(t, 48*time.Hour, c.Auth.TokenTTL)
	assert.Equal(t, slog.LevelWarn, c.SlogLevel())
	// untouched keys keep their defaults
	assert.Equal(t, "mongodb://localhost:27017", c.Store.MongoURI)
}

func TestLoadYAML_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "common.yaml"), []byte("server: [unclosed"), 0o644))

	err := loadYAML(Default(), []string{dir})
	assert.ErrorContains(t, err, "common.yaml")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid mongo", func(c *Config) {}, ""},
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }, "JWT_SECRET"},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, "TTL"},
		{"bcrypt too low", func(c *Config) { c.Auth.BcryptCost = 2 }, "bcrypt"},
		{"postgres without dsn", func(c *Config) { c.Store.Driver = DriverPostgres }, "DATABASE_URL"},
		{"postgres with dsn", func(c *Config) {
			c.Store.Driver = DriverPostgres
			c.Store.PostgresDSN = "postgres://localhost/db"
		}, ""},
		{"memory", func(c *Config) { c.Store.Driver = DriverMemory }, ""},
		{"unknown driver", func(c *Config) { c.Store.Driver = "mysql" }, "unknown store driver"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			c.Auth.JWTSecret = "secret"
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParseEnv(t *testing.T) {
	assert.Equal(t, EnvProduction, parseEnv("production"))
	assert.Equal(t, EnvProduction, parseEnv("PROD"))
	assert.Equal(t, EnvTest, parseEnv("test"))
	assert.Equal(t, EnvDevelopment, parseEnv("whatever"))
}
