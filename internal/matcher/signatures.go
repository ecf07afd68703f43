// Package matcher implements per-line classification of Postfix log entries.
package matcher

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Signature is one named site-rejection pattern. Patterns are regular
// expressions evaluated case-insensitively; any single match marks a
// delivery failure as worrisome.
type Signature struct {
	Name    string `yaml:"name" json:"name"`
	Pattern string `yaml:"pattern" json:"pattern"`
	Note    string `yaml:"note,omitempty" json:"note,omitempty"`
}

// SignaturesConfig is the root structure of a signatures definition file.
type SignaturesConfig struct {
	Signatures []Signature `yaml:"signatures"`
}

// DefaultSignatures returns the built-in rejection signatures. These are
// heuristics derived from observed provider bounce text; new providers get
// a new entry here or in a signatures file, never a change to matching
// logic.
func DefaultSignatures() []Signature {
	return []Signature{
		{
			Name:    "spam_rejected",
			Pattern: ` said: 550 .*spam`,
			Note:    "550 reply naming the message as spam (e.g. mail.ru)",
		},
		{
			Name:    "ip_blocked",
			Pattern: ` said: 550 .*blocked`,
			Note:    "550 reply reporting the sending IP as blocked (e.g. EarthLink)",
		},
		{
			Name:    "server_busy",
			Pattern: ` said: 451 .*busy`,
			Note:    "451 greylist-style deferral (e.g. outlook.com \"Server busy\")",
		},
	}
}

// LoadSignatures reads rejection signature definitions from the specified
// YAML file. The loaded list replaces the built-in defaults.
func LoadSignatures(path string) ([]Signature, error) {
	if path == "" {
		return nil, fmt.Errorf("signatures file path is required")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("signatures file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read signatures file: %w", err)
	}

	var cfg SignaturesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse signatures file: %w", err)
	}

	if len(cfg.Signatures) == 0 {
		return nil, fmt.Errorf("no signatures defined in file: %s", path)
	}

	seen := make(map[string]bool, len(cfg.Signatures))
	for i, sig := range cfg.Signatures {
		if sig.Name == "" {
			return nil, fmt.Errorf("signature at index %d has no name", i)
		}
		if seen[sig.Name] {
			return nil, fmt.Errorf("duplicate signature name: %q", sig.Name)
		}
		seen[sig.Name] = true

		if sig.Pattern == "" {
			return nil, fmt.Errorf("signature %q has no pattern", sig.Name)
		}
		if _, err := regexp.Compile("(?i)" + sig.Pattern); err != nil {
			return nil, fmt.Errorf("signature %q: invalid pattern: %w", sig.Name, err)
		}
	}

	return cfg.Signatures, nil
}
