// Package config loads the process configuration once at startup.
//
// Load order:
//  1. .env (secrets and APP_ENV) via godotenv
//  2. configs/common.yaml, then configs/{APP_ENV}.yaml
//  3. environment variables, which override the YAML values
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Environment string

const (
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test"
	EnvDevelopment Environment = "dev"
)

const (
	DriverMongo    = "mongodb"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Env    Environment `yaml:"-"`
	Server ServerConfig `yaml:"server"`
	Auth   AuthConfig   `yaml:"auth"`
	Store  StoreConfig  `yaml:"store"`

	// SeedCSV names a product CSV imported at startup. Empty disables the import.
	SeedCSV  string `yaml:"seed_csv"`
	LogLevel string `yaml:"log_level"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type AuthConfig struct {
	JWTSecret  string        `yaml:"-"` // only from JWT_SECRET
	TokenTTL   time.Duration `yaml:"token_ttl"`
	BcryptCost int           `yaml:"bcrypt_cost"`
}

type StoreConfig struct {
	Driver      string `yaml:"driver"`
	MongoURI    string `yaml:"mongo_uri"`
	MongoDB     string `yaml:"mongo_db"`
	PostgresDSN string `yaml:"-"` // only from DATABASE_URL
}

var configPaths = []string{
	"configs",
	"../configs",
	"../../configs",
}

var envPaths = []string{
	".env",
	"../.env",
	"../../.env",
}

// Default returns the development defaults.
func Default() *Config {
	return &Config{
		Env: EnvDevelopment,
		Server: ServerConfig{
			Port:           "5000",
			AllowedOrigins: []string{"http://localhost:3000", "https://products-frontend-neon.vercel.app"},
		},
		Auth: AuthConfig{
			TokenTTL:   30 * 24 * time.Hour,
			BcryptCost: 10,
		},
		Store: StoreConfig{
			Driver:   DriverMongo,
			MongoURI: "mongodb://localhost:27017",
			MongoDB:  "products",
		},
		LogLevel: "info",
	}
}

func Load() (*Config, error) {
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	cfg := Default()
	cfg.Env = parseEnv(getEnv("APP_ENV", string(EnvDevelopment)))

	if err := loadYAML(cfg, configPaths); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadYAML overlays common.yaml and then {env}.yaml from the first directory holding each.
func loadYAML(cfg *Config, dirs []string) error {
	for _, name := range []string{"common.yaml", string(cfg.Env) + ".yaml"} {
		for _, base := range dirs {
			path := filepath.Join(base, name)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return fmt.Errorf("config: parse %s: %w", path, err)
			}
			slog.Debug("config file loaded", "path", path)
			break
		}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: TOKEN_TTL: %w", err)
		}
		cfg.Auth.TokenTTL = d
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: BCRYPT_COST: %w", err)
		}
		cfg.Auth.BcryptCost = n
	}

	cfg.Store.Driver = strings.ToLower(getEnv("DB_DRIVER", cfg.Store.Driver))
	cfg.Store.MongoURI = getEnv("MONGO_URI", cfg.Store.MongoURI)
	cfg.Store.MongoDB = getEnv("MONGO_DB", cfg.Store.MongoDB)
	cfg.Store.PostgresDSN = getEnv("DATABASE_URL", cfg.Store.PostgresDSN)

	cfg.SeedCSV = getEnv("SEED_CSV", cfg.SeedCSV)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("token TTL must be positive"))
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("bcrypt cost %d out of range [4,31]", c.Auth.BcryptCost))
	}
	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required for the mongodb driver"))
		}
	case DriverPostgres:
		if c.Store.PostgresDSN == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseEnv(s string) Environment {
	switch strings.ToLower(s) {
	case "prod", "production":
		return EnvProduction
	case "test":
		return EnvTest
	default:
		return EnvDevelopment
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
