// Package cmd implements CLI commands for the blocked-mail check.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"check-postfix-blocked/internal/config"
	"check-postfix-blocked/internal/matcher"
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the config and signature files",
	Long: `Load and validate the configuration file, checking format, field
values, and, when a signatures file is referenced, that every rejection
signature has a unique name and a pattern that compiles.`,
	Run: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate executes the validate command logic.
func runValidate(cmd *cobra.Command, args []string) {
	configPath := GetConfigFile()
	if configPath == "" {
		fmt.Fprintln(os.Stderr, "validation failed: no config file given (use --config)")
		os.Exit(1)
	}

	// Load and validate configuration (Load internally calls Validate)
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config validation failed: %v\n", err)
		os.Exit(1)
	}

	if cfg.Signatures.File != "" {
		sigs, err := matcher.LoadSignatures(cfg.Signatures.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "signatures validation failed: %v\n", err)
			os.Exit(1)
		}
		if _, err := matcher.NewWithSignatures(sigs); err != nil {
			fmt.Fprintf(os.Stderr, "signatures validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("signatures file ok: %s (%d signatures)\n", cfg.Signatures.File, len(sigs))
	}

	if msg := config.ThresholdOrderWarning(cfg.Thresholds.Warning, cfg.Thresholds.Critical); msg != "" {
		fmt.Printf("note: %s\n", msg)
	}

	fmt.Printf("config file ok: %s\n", configPath)
}
