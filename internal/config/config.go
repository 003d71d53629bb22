// Package config loads and validates application configuration from
// environment variables and an optional config file.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Vocab    VocabConfig    `mapstructure:"vocab"    validate:"required"`
	Practice PracticeConfig `mapstructure:"practice" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all persistence-related configuration settings.
// The driver selects the store implementation: "file" keeps the collection in
// a single JSON document, "postgres" keeps it in an items table.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=file postgres"`
	File   string `mapstructure:"file"   validate:"required_if=Driver file"`
	URL    string `mapstructure:"url"    validate:"required_if=Driver postgres,omitempty,url"`
}

// VocabConfig contains the configured category set. The engine treats
// categories as data, not as a fixed enum.
type VocabConfig struct {
	Categories []string `mapstructure:"categories" validate:"required,min=1,dive,required"`
}

// PracticeConfig contains the tunable parameters of the practice engine.
type PracticeConfig struct {
	MaxScore  int `mapstructure:"max_score"  validate:"required,gt=0"`
	RoundSize int `mapstructure:"round_size" validate:"required,gt=0"`
}
