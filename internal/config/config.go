// Package config loads application configuration from a yaml file and
// HOUSETAB_* environment variables, env winning on conflict.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Email    EmailConfig    `mapstructure:"email"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// DatabaseConfig configures the SQLite store.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// JWTConfig configures session token issuing.
type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// TokenDuration returns the configured token lifetime.
func (c JWTConfig) TokenDuration() time.Duration {
	return time.Duration(c.ExpireHours) * time.Hour
}

// EmailConfig configures the SMTP notification sink. When disabled,
// notifications go to the log instead.
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// Load reads configuration from the given yaml file (optional) and the
// environment.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.path", "./data/housetab.db")
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("email.enabled", false)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("HOUSETAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without a default are invisible to Unmarshal unless bound,
	// even with AutomaticEnv; bind them so env-only setups work.
	for _, key := range []string{
		"jwt.secret",
		"email.host", "email.port", "email.username", "email.password", "email.from",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret is required (set HOUSETAB_JWT_SECRET)")
	}

	return cfg, nil
}
