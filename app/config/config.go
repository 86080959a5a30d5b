// Package config resolves the service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	HTTP     HTTPConfig     `mapstructure:"http" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Log      LogConfig      `mapstructure:"log" validate:"required"`
}

type AppConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Version string `mapstructure:"version" validate:"required"`
}

type HTTPConfig struct {
	Port            int           `mapstructure:"port" validate:"gt=0,lt=65536"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	DSN             string        `mapstructure:"dsn"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"gt=0,lt=65536"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// ConnectionString returns DSN when set, otherwise a postgres keyword/value string
// assembled from the individual fields.
func (c DatabaseConfig) ConnectionString() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.Driver == "sqlite" {
		return "catalog.db"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quote(c.Host), c.Port, quote(c.User), quote(c.Password), quote(c.Name), quote(c.SSLMode),
	)
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quote renders v as a single-quoted keyword/value parameter so that empty
// values and values with spaces keep their meaning.
func quote(v string) string {
	return "'" + quoteEscaper.Replace(v) + "'"
}

var defaults = map[string]any{
	"app.name":    "catalog-api",
	"app.version": "dev",

	"http.port":             8080,
	"http.read_timeout":     5 * time.Second,
	"http.write_timeout":    10 * time.Second,
	"http.idle_timeout":     60 * time.Second,
	"http.shutdown_timeout": 10 * time.Second,

	"database.driver":            "postgres",
	"database.dsn":               "",
	"database.host":              "localhost",
	"database.port":              5432,
	"database.user":              "",
	"database.password":          "",
	"database.name":              "",
	"database.ssl_mode":          "disable",
	"database.max_open_conns":    10,
	"database.max_idle_conns":    5,
	"database.conn_max_lifetime": 30 * time.Minute,

	"log.level": "info",
}

// Load reads an optional .env file (or the given files) into the process
// environment and resolves the configuration from it. Environment variables
// are the upper-cased keys with dots replaced by underscores, e.g. HTTP_PORT.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct rules and the postgres requirements that depend on
// more than one field.
func (c *Config) Validate() error {
	c.Log.Level = strings.ToLower(c.Log.Level)

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	db := c.Database
	if db.Driver == "postgres" && db.DSN == "" {
		if db.User == "" {
			return errors.New("invalid config: DATABASE_USER is required")
		}
		if db.Name == "" {
			return errors.New("invalid config: DATABASE_NAME is required")
		}
	}

	return nil
}
