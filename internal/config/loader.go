// Package config provides configuration management for the blocked-mail check.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// DefaultLogFile is the conventional syslog mail log location.
const DefaultLogFile = "/var/log/maillog"

// Load reads configuration from the optional YAML file and environment
// variables. Environment variables take precedence over file values.
// Environment variable format: CHECKMAIL_<SECTION>_<KEY>
// (e.g., CHECKMAIL_THRESHOLDS_CRITICAL).
//
// An empty configPath is not an error: the check can run from flags alone,
// so defaults plus environment are used. A non-empty path that does not
// exist is an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults first
	setDefaults(v)

	// Configure environment variable binding
	v.SetEnvPrefix("CHECKMAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values for all configuration options.
func setDefaults(v *viper.Viper) {
	// Thresholds default to unset; the run command requires at least one
	// of warning/critical from config or flags.
	v.SetDefault("thresholds.warning", 0)
	v.SetDefault("thresholds.critical", 0)

	// Log defaults
	v.SetDefault("log.file", DefaultLogFile)

	// Signatures default to the built-in list
	v.SetDefault("signatures.file", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
