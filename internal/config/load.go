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
// STUDYSTACK_ prefix with underscores for nesting (e.g.
// STUDYSTACK_SERVER_PORT) and take precedence over file values.
// Returns a validated Config or an error.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	// Registers the key so AutomaticEnv can populate it; validation
	// still rejects an empty URL.
	v.SetDefault("database.url", "")
	v.SetDefault("study.user_id", "default_user")
	v.SetDefault("study.baseline_latency_ms", 1500.0)
	v.SetDefault("study.baseline_fluency", 10.0)
	v.SetDefault("study.digest_enabled", true)

	// Optional config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; env vars and defaults apply.
	}

	// Environment variables
	v.SetEnvPrefix("STUDYSTACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
