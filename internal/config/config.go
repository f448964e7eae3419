package config

// Config holds all application configuration, organized into logical
// groups.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Study    StudyConfig    `mapstructure:"study" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// StudyConfig tunes the study engine.
type StudyConfig struct {
	// UserID keys knowledge state and interaction logs.
	UserID string `mapstructure:"user_id" validate:"required"`

	// BaselineLatencyMS and BaselineFluency calibrate the interaction
	// quality scorer.
	BaselineLatencyMS float64 `mapstructure:"baseline_latency_ms" validate:"gt=0"`
	BaselineFluency   float64 `mapstructure:"baseline_fluency" validate:"gt=0"`

	// DigestEnabled turns the hourly due-card digest job on or off.
	DigestEnabled bool `mapstructure:"digest_enabled"`
}
