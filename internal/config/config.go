// Package config loads application configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int
}

// DatabaseConfig selects and configures the storage backend.
type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string
	// Path is the SQLite database file (sqlite driver only).
	Path string
	// DSN is the PostgreSQL connection string (postgres driver only).
	DSN string
	// PoolMaxConns bounds the postgres connection pool.
	PoolMaxConns int
}

// AuthConfig holds JWT session configuration.
type AuthConfig struct {
	// JWTSecret signs session tokens. Required.
	JWTSecret string
	// TokenTTLHours is how long issued tokens stay valid.
	TokenTTLHours int
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string
}

// TokenTTL returns the token lifetime as a duration.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// Load reads configuration from the given file (optional) and environment
// variables prefixed with SPLITKARO_ (e.g. SPLITKARO_AUTH_JWTSECRET).
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Every key needs a default so AutomaticEnv overrides survive Unmarshal.
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/splitkaro.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.poolmaxconns", 4)
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttlhours", 24)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("SPLITKARO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwtsecret is required")
	}
	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unknown database driver: %q", cfg.Database.Driver)
	}
	if cfg.Database.Driver == "postgres" && cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required for the postgres driver")
	}

	return &cfg, nil
}
