package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "TASKS"

// legacyEnv lists unprefixed variable names still honoured for deployments
// that predate the TASKS_ prefix.
var legacyEnv = map[string]string{
	"database.url":    "DATABASE_URL",
	"auth.jwt_secret": "SECRET_KEY",
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so every key
	// is bound explicitly to make env-only configuration work.
	for _, key := range v.AllKeys() {
		if err := bindEnv(v, key); err != nil {
			return nil, err
		}
	}
	for _, key := range []string{"database.url", "auth.jwt_secret"} {
		if err := bindEnv(v, key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.connect_retries", 30)
	v.SetDefault("database.connect_retry_interval", 2*time.Second)

	v.SetDefault("auth.token_lifetime_minutes", 24*60)
	v.SetDefault("auth.password_hasher", "bcrypt")
	v.SetDefault("auth.bcrypt_cost", bcrypt.DefaultCost)
}

func bindEnv(v *viper.Viper, key string) error {
	names := []string{key, EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}
	if legacy, ok := legacyEnv[key]; ok {
		names = append(names, legacy)
	}
	if err := v.BindEnv(names...); err != nil {
		return fmt.Errorf("failed to bind env for %s: %w", key, err)
	}
	return nil
}
