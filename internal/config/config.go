package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the hooklog configuration
type Config struct {
	// Transform settings
	Transform TransformConfig `json:"transform" yaml:"transform"`

	// Source discovery settings
	Files FilesConfig `json:"files" yaml:"files"`

	// Output settings
	Output OutputConfig `json:"output" yaml:"output"`

	// Watch mode settings
	Watch WatchConfig `json:"watch" yaml:"watch"`

	// Number of files transformed concurrently
	Workers int `json:"workers" yaml:"workers"`
}

// TransformConfig controls when the transform is active
type TransformConfig struct {
	// Environment variable that selects the mode; the value "production" disables hooklog
	ProductionEnvVar string `json:"production_env_var" yaml:"production_env_var"`

	// Dotenv files loaded before reading ProductionEnvVar. Real environment wins.
	EnvFiles []string `json:"env_files" yaml:"env_files"`
}

// FilesConfig contains source discovery settings
type FilesConfig struct {
	// Directory names or glob patterns to skip
	Exclude []string `json:"exclude" yaml:"exclude"`

	// File extensions to transform
	Extensions []string `json:"extensions" yaml:"extensions"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	// Directory that mirrors the transformed sources
	Dir string `json:"dir" yaml:"dir"`

	// Keep a .backup copy when rewriting files in place
	Backup bool `json:"backup" yaml:"backup"`

	// Whether to colorize output
	Color bool `json:"color" yaml:"color"`
}

// WatchConfig contains watch mode settings
type WatchConfig struct {
	// Quiet period before a batch of changes is transformed
	DebounceMs int `json:"debounce_ms" yaml:"debounce_ms"`
}

// ConfigFileNames are searched, in order, in the working directory and then the home directory
var ConfigFileNames = []string{".hooklog.yaml", ".hooklog.yml", ".hooklog.json"}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Transform: TransformConfig{
			ProductionEnvVar: "NODE_ENV",
			EnvFiles:         []string{".env"},
		},
		Files: FilesConfig{
			Exclude: []string{
				"node_modules",
				".git",
				"dist",
				"build",
				"coverage",
				".next",
			},
			Extensions: []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts"},
		},
		Output: OutputConfig{
			Dir:    "dist",
			Backup: true,
			Color:  true,
		},
		Watch: WatchConfig{
			DebounceMs: 300,
		},
		Workers: 4,
	}
}

// LoadConfig loads configuration from a file. YAML is a superset of JSON, so
// both formats go through the YAML decoder.
func LoadConfig(configPath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	explicit := configPath != ""
	// If no config file specified, try to find one
	if configPath == "" {
		configPath = findConfigFile()
	}

	// If still no config file, return default
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}
	return config, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMs)
	}
	if strings.TrimSpace(c.Transform.ProductionEnvVar) == "" {
		return errors.New("transform.production_env_var must not be empty")
	}
	for _, ext := range c.Files.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return nil
}

// SaveConfig saves configuration to a file as YAML
func SaveConfig(config *Config, configPath string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolveProduction loads the configured dotenv files, without overriding
// variables already set, and reports whether the production env var is "production".
// Missing dotenv files are ignored.
func (c *Config) ResolveProduction() (bool, error) {
	var files []string
	for _, f := range c.Transform.EnvFiles {
		if _, err := os.Stat(f); err == nil {
			files = append(files, f)
		}
	}
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return false, fmt.Errorf("failed to load env files: %w", err)
		}
	}
	return IsProduction(os.Getenv(c.Transform.ProductionEnvVar)), nil
}

// IsProduction reports whether an environment value selects production mode
func IsProduction(value string) bool {
	return strings.TrimSpace(value) == "production"
}

// findConfigFile looks for config files in common locations
func findConfigFile() string {
	for _, candidate := range ConfigFileNames {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(homeDir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}

	return ""
}

// GetConfigPath returns the config file path to use
func GetConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	if found := findConfigFile(); found != "" {
		return found
	}

	return ConfigFileNames[0]
}
