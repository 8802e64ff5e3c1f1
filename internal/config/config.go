package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level beanbridge.yaml configuration.
type Config struct {
	Ledger LedgerConfig `yaml:"ledger"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// LedgerConfig locates the serialized ledger data the CLI operates on.
type LedgerConfig struct {
	Path       string `yaml:"path"`
	Compressed bool   `yaml:"compressed,omitempty"`
}

// OutputConfig controls how results are written.
type OutputConfig struct {
	Pretty bool `yaml:"pretty"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a beanbridge.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(ledgerPath string) *Config {
	return &Config{
		Ledger: LedgerConfig{
			Path: ledgerPath,
		},
		Output: OutputConfig{
			Pretty: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
