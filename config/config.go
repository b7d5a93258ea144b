package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	DefaultFormat string `yaml:"default_format,omitempty"`

	// Top-level config sections
	Scoring *ScoringOverrides `yaml:"scoring,omitempty"`
}

// ScoringOverrides allows customizing the significance thresholds
type ScoringOverrides struct {
	OrgSubstring     *string `yaml:"org_substring,omitempty"`
	MinContributions *int    `yaml:"min_contributions,omitempty"`
	MinRepositories  *int    `yaml:"min_repositories,omitempty"`
	Workers          *int    `yaml:"workers,omitempty"`
}

// Thresholds is the resolved set of scoring parameters
type Thresholds struct {
	OrgSubstring     string
	MinContributions int
	MinRepositories  int
	Workers          int
}

// DefaultThresholds returns the default scoring parameters
func DefaultThresholds() Thresholds {
	return Thresholds{
		OrgSubstring:     "microsoft",
		MinContributions: 50,
		MinRepositories:  5,
		Workers:          10,
	}
}

// GetThresholds returns thresholds with user overrides merged with defaults
func (c *Config) GetThresholds() Thresholds {
	thresholds := DefaultThresholds()

	if c.Scoring != nil {
		s := c.Scoring
		if s.OrgSubstring != nil {
			thresholds.OrgSubstring = *s.OrgSubstring
		}
		if s.MinContributions != nil {
			thresholds.MinContributions = *s.MinContributions
		}
		if s.MinRepositories != nil {
			thresholds.MinRepositories = *s.MinRepositories
		}
		if s.Workers != nil && *s.Workers > 0 {
			thresholds.Workers = *s.Workers
		}
	}

	return thresholds
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".reposcore"
	}
	return filepath.Join(configDir, "reposcore")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return ".reposcore.yaml"
}

// ConfigFileExists returns true if the config file exists on disk
func ConfigFileExists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Load loads the configuration from disk.
// It first loads the global config from XDG config directory, then merges
// any local .reposcore.yaml config on top (local values take precedence).
func Load() (*Config, error) {
	// Start with defaults
	cfg := &Config{
		DefaultFormat: "table",
	}

	// Load global config if it exists
	globalPath := ConfigPath()
	if _, err := os.Stat(globalPath); err == nil {
		data, err := os.ReadFile(globalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read global config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse global config file: %w", err)
		}
	}

	// Load local config if it exists and merge on top
	localPath := LocalConfigPath()
	if _, err := os.Stat(localPath); err == nil {
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read local config file: %w", err)
		}

		var localCfg Config
		if err := yaml.Unmarshal(data, &localCfg); err != nil {
			return nil, fmt.Errorf("failed to parse local config file: %w", err)
		}

		cfg = mergeConfig(cfg, &localCfg)
	}

	// Set defaults if still empty
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "table"
	}

	return cfg, nil
}

// mergeConfig merges local config on top of global config.
// Local values take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := &Config{}

	// Merge simple fields (local wins if set)
	if local.DefaultFormat != "" {
		result.DefaultFormat = local.DefaultFormat
	} else {
		result.DefaultFormat = global.DefaultFormat
	}

	result.Scoring = mergeScoringOverrides(global.Scoring, local.Scoring)

	return result
}

func mergeScoringOverrides(global, local *ScoringOverrides) *ScoringOverrides {
	if global == nil && local == nil {
		return nil
	}
	result := &ScoringOverrides{}

	if global != nil {
		result.OrgSubstring = global.OrgSubstring
		result.MinContributions = global.MinContributions
		result.MinRepositories = global.MinRepositories
		result.Workers = global.Workers
	}

	if local != nil {
		if local.OrgSubstring != nil {
			result.OrgSubstring = local.OrgSubstring
		}
		if local.MinContributions != nil {
			result.MinContributions = local.MinContributions
		}
		if local.MinRepositories != nil {
			result.MinRepositories = local.MinRepositories
		}
		if local.Workers != nil {
			result.Workers = local.Workers
		}
	}

	// Return nil if all fields are nil
	if result.OrgSubstring == nil && result.MinContributions == nil &&
		result.MinRepositories == nil && result.Workers == nil {
		return nil
	}

	return result
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	configDir := DefaultConfigDir()

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := ConfigPath()
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetGitHubToken returns the GitHub token from the GITHUB_TOKEN environment variable.
// Following 12-factor app best practices, tokens are only read from the environment.
func (c *Config) GetGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

// SetDefaultFormat sets the default output format and saves
func (c *Config) SetDefaultFormat(format string) error {
	c.DefaultFormat = format
	return c.Save()
}

// DefaultConfig returns a fully populated config with all default values.
// This is useful for generating a complete config file template.
func DefaultConfig() *Config {
	thresholds := DefaultThresholds()

	return &Config{
		DefaultFormat: "table",
		Scoring: &ScoringOverrides{
			OrgSubstring:     &thresholds.OrgSubstring,
			MinContributions: &thresholds.MinContributions,
			MinRepositories:  &thresholds.MinRepositories,
			Workers:          &thresholds.Workers,
		},
	}
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	// Get absolute path for local config
	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# Reposcore configuration file
# See: reposcore config defaults  (for all available options)

# Output format: table, json, or markdown
default_format: table

# Override scoring thresholds (optional)
# scoring:
#   org_substring: microsoft
#   min_contributions: 50
#   min_repositories: 5
#   workers: 10
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
