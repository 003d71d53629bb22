package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for environment variable overrides, e.g.
// VOCABVAULT_SERVER_PORT=9090.
const envPrefix = "VOCABVAULT"

// Load reads configuration from environment variables and optionally a config
// file. Environment variables take precedence over values from config files,
// which take precedence over defaults. When configFile is empty, a
// vocabvault.yaml in the working directory is used if present.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("vocabvault")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine; an explicitly named one is not.
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers the default value for every setting, matching the
// original program's behavior: a JSON document next to the binary, the three
// classic categories, a score cap of ten, and matching rounds of ten.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.driver", "file")
	v.SetDefault("database.file", "vocabvault.json")
	v.SetDefault("database.url", "")

	v.SetDefault("vocab.categories", []string{"all words", "all phrases", "all sentences"})

	v.SetDefault("practice.max_score", 10)
	v.SetDefault("practice.round_size", 10)
}
