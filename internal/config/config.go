// Package config resolves the pgq connection settings from the environment.
//
// Every setting accepts two environment variable names, checked in order,
// and falls back to a local development default when neither is set.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverPQ  = "pq"
	DriverPGX = "pgx"
)

// Config is built once at startup and passed down explicitly.
type Config struct {
	Database Database `mapstructure:"database"`
	Driver   string   `mapstructure:"driver"`
}

// Database holds the PostgreSQL connection parameters.
type Database struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Name           string        `mapstructure:"name"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	SSLMode        string        `mapstructure:"sslmode"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// Address returns user@host:port/name, without the password.
func (d Database) Address() string {
	return fmt.Sprintf("%s@%s:%d/%s", d.User, d.Host, d.Port, d.Name)
}

var defaults = map[string]any{
	"database.host":            "localhost",
	"database.port":            5432,
	"database.name":            "aiminderdb",
	"database.user":            "aiminder",
	"database.password":        "aiminder",
	"database.sslmode":         "disable",
	"database.connect_timeout": "10s",
	"driver":                   DriverPQ,
}

var envNames = map[string][]string{
	"database.host":            {"DATABASE_HOST", "POSTGRES_HOST"},
	"database.port":            {"DATABASE_PORT", "POSTGRES_PORT"},
	"database.name":            {"DATABASE_NAME", "POSTGRES_DB"},
	"database.user":            {"DATABASE_USERNAME", "POSTGRES_USER"},
	"database.password":        {"DATABASE_PASSWORD", "POSTGRES_PASSWORD"},
	"database.sslmode":         {"DATABASE_SSLMODE", "PGSSLMODE"},
	"database.connect_timeout": {"DATABASE_CONNECT_TIMEOUT"},
	"driver":                   {"PGQ_DRIVER"},
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, names := range envNames {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Driver = strings.ToLower(strings.TrimSpace(c.Driver))
	switch c.Driver {
	case DriverPQ, DriverPGX:
	default:
		return fmt.Errorf("unsupported driver %q (want %s or %s)", c.Driver, DriverPQ, DriverPGX)
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Database.Port)
	}
	return nil
}
