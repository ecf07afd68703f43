// Package config provides configuration management for the blocked-mail check.
package config

// Config is the root configuration structure for the check.
// Every value can also arrive via command-line flags, which take precedence.
type Config struct {
	Thresholds ThresholdsConfig `mapstructure:"thresholds"`
	Log        LogConfig        `mapstructure:"log"`
	Signatures SignaturesConfig `mapstructure:"signatures"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ThresholdsConfig contains the worrisome-count alert thresholds.
// A zero value means the threshold is not set; at least one of the two must
// be supplied (here or on the command line) for the check to run.
type ThresholdsConfig struct {
	Warning  int `mapstructure:"warning" validate:"gte=0"`
	Critical int `mapstructure:"critical" validate:"gte=0"`
}

// LogConfig locates the mail log to scan. File may be "-" for stdin.
type LogConfig struct {
	File string `mapstructure:"file" validate:"required"`
}

// SignaturesConfig optionally points at a rejection-signature definition
// file. When empty, the built-in signatures are used.
type SignaturesConfig struct {
	File string `mapstructure:"file"`
}

// LoggingConfig contains configurations for diagnostic logging.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}
