// Package config provides configuration management for the blocked-mail check.
package config

import (
	"os"
	"testing"
)

func TestLoad_Success(t *testing.T) {
	// Create a temporary config file
	content := `
thresholds:
  warning: 5
  critical: 20
log:
  file: /var/log/mail.log
logging:
  level: debug
  format: json
`
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	tmpFile.Close()

	// Load config
	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Thresholds.Warning != 5 {
		t.Errorf("Warning = %v, want 5", cfg.Thresholds.Warning)
	}
	if cfg.Thresholds.Critical != 20 {
		t.Errorf("Critical = %v, want 20", cfg.Thresholds.Critical)
	}
	if cfg.Log.File != "/var/log/mail.log" {
		t.Errorf("Log.File = %v, want /var/log/mail.log", cfg.Log.File)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %v, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %v, want json", cfg.Logging.Format)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}

	if cfg.Log.File != DefaultLogFile {
		t.Errorf("Log.File = %v, want %v", cfg.Log.File, DefaultLogFile)
	}
	if cfg.Thresholds.Warning != 0 || cfg.Thresholds.Critical != 0 {
		t.Errorf("thresholds = (%d, %d), want unset (0, 0)",
			cfg.Thresholds.Warning, cfg.Thresholds.Critical)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %v, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %v, want console", cfg.Logging.Format)
	}
	if cfg.Signatures.File != "" {
		t.Errorf("Signatures.File = %v, want empty", cfg.Signatures.File)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CHECKMAIL_THRESHOLDS_CRITICAL", "42")
	t.Setenv("CHECKMAIL_LOG_FILE", "/tmp/maillog")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}

	if cfg.Thresholds.Critical != 42 {
		t.Errorf("Critical = %v, want 42 from environment", cfg.Thresholds.Critical)
	}
	if cfg.Log.File != "/tmp/maillog" {
		t.Errorf("Log.File = %v, want /tmp/maillog from environment", cfg.Log.File)
	}
}

func TestLoad_InvalidLoggingLevel(t *testing.T) {
	content := `
logging:
  level: loud
`
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	tmpFile.Close()

	_, err = Load(tmpFile.Name())
	if err == nil {
		t.Fatal("expected validation error for invalid logging level")
	}
}

func TestLoad_NegativeThreshold(t *testing.T) {
	content := `
thresholds:
  warning: -1
`
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	tmpFile.Close()

	_, err = Load(tmpFile.Name())
	if err == nil {
		t.Fatal("expected validation error for negative threshold")
	}
}
