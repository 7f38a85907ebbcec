// Package telemetry reports anonymous flow outcomes (no task text) to PostHog.
// It is off unless telemetry.enabled is set and an API key is configured.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ConfigFileName is the name of the telemetry state file in the data directory.
const ConfigFileName = "telemetry.json"

// Config holds the telemetry state.
type Config struct {
	Enabled bool `json:"enabled"`

	// AnonymousID is a random UUID generated once and never tied to a person.
	AnonymousID string `json:"anonymous_id"`
}

// IsEnabled returns true if telemetry is currently enabled.
func (c *Config) IsEnabled() bool {
	return c != nil && c.Enabled
}

// Load reads the state file from dir, creating an anonymous ID when missing.
// A missing file yields a disabled config.
func Load(dir string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read telemetry state: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse telemetry state: %w", err)
		}
	}

	if cfg.AnonymousID == "" {
		cfg.AnonymousID = uuid.New().String()
	}
	return cfg, nil
}

// Save writes the state file to dir with owner-only permissions.
func (c *Config) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create telemetry directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal telemetry state: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0o600); err != nil {
		return fmt.Errorf("write telemetry state: %w", err)
	}
	return nil
}
