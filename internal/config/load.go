package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables use the
// RECIPE_ prefix with underscores for nesting (e.g. RECIPE_AUTH_JWT_SECRET)
// and take precedence over file values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("project.name", "recipe-api")
	v.SetDefault("project.version", "0.1.0")
	v.SetDefault("project.debug", false)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.algorithm", "HS256")
	v.SetDefault("auth.expiration_seconds", 3600)
	v.SetDefault("auth.refresh_expiration_seconds", 604800)
	v.SetDefault("backend.kind", "postgrest")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RECIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface env-only keys to Unmarshal,
	// so bind every key we expect explicitly.
	for _, key := range []string{
		"project.name", "project.version", "project.debug",
		"server.port", "server.log_level",
		"auth.jwt_secret", "auth.algorithm",
		"auth.expiration_seconds", "auth.refresh_expiration_seconds",
		"backend.kind", "backend.url", "backend.anon_key", "backend.service_key",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; everything can come from the environment.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
