package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
)

type Config struct {
	// DataFile is the flat record file expenses are loaded from and saved to
	DataFile string `yaml:"data_file,omitempty"`

	// Output is the default rendering for list/search/report (table or json)
	Output string `yaml:"output,omitempty"`

	// LogLevel is a zerolog level name (debug, info, warn, error)
	LogLevel string `yaml:"log_level,omitempty"`

	// DefaultFrequency is offered when a recurring expense is entered without one
	DefaultFrequency string `yaml:"default_frequency,omitempty"`
}

// DefaultConfigPath returns the default config file path (~/.expense-tracker/config.yaml)
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".expense-tracker", "config.yaml")
}

// NewDefaultConfig returns the built-in settings used when no config file exists
func NewDefaultConfig() *Config {
	return &Config{
		DataFile:         DefaultDataFile,
		Output:           OutputTable,
		LogLevel:         "warn",
		DefaultFrequency: DefaultFrequency,
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	switch cfg.Output {
	case OutputTable, OutputJSON:
	default:
		return nil, fmt.Errorf("invalid output %q (want %s or %s)", cfg.Output, OutputTable, OutputJSON)
	}

	return cfg, nil
}

// LoadConfigOrDefault loads path if it exists. A missing file gives the defaults
// unless required is set.
func LoadConfigOrDefault(path string, required bool) (*Config, error) {
	if path == "" {
		return NewDefaultConfig(), nil
	}
	cfg, err := LoadConfig(path)
	if err != nil && !required && errors.Is(err, fs.ErrNotExist) {
		return NewDefaultConfig(), nil
	}
	return cfg, err
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ResolveDataFile picks the data file: explicit flag, then config, then the default
func (c *Config) ResolveDataFile(flag string) string {
	if flag != "" {
		return flag
	}
	if c != nil && c.DataFile != "" {
		return c.DataFile
	}
	return DefaultDataFile
}

// Frequency returns the configured default frequency label
func (c *Config) Frequency() string {
	if c == nil || c.DefaultFrequency == "" {
		return DefaultFrequency
	}
	return c.DefaultFrequency
}
