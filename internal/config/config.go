package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Verbose bool   `mapstructure:"verbose"`

	// Scan settings
	Scan ScanConfig `mapstructure:"scan"`
}

// ScanConfig holds defaults for the scan command and the engine it drives
type ScanConfig struct {
	// Policy selects the concurrency policy: banded, sequential or parallel
	Policy string `mapstructure:"policy"`
	// Catalog is the knowledge-base JSON path; empty uses the embedded one
	Catalog string `mapstructure:"catalog"`
	// Timeout is the per-analyzer timeout override, e.g. "30s"; empty keeps
	// each analyzer's own deadline
	Timeout string `mapstructure:"timeout"`
	// LookupWorkers caps concurrent record-id lookup batches
	LookupWorkers int `mapstructure:"lookup_workers"`
	// Disabled lists analyzer names that must not run
	Disabled []string `mapstructure:"disabled"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "text",
		Verbose: false,
		Scan: ScanConfig{
			Policy:        "banded",
			LookupWorkers: 4,
		},
	}
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.crashlens.yaml or ./.crashlens.yml
// 2. ~/.crashlens.yaml or ~/.crashlens.yml
// 3. $XDG_CONFIG_HOME/crashlens/config.yaml (or ~/.config/crashlens/config.yaml)
// 4. /etc/crashlens/config.yaml
func Load() (*Config, error) {
	cfg := Default()

	configFile := findConfigFile()
	if configFile != "" {
		v := viper.New()
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}

		if err := v.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	// Override with environment variables
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".crashlens.yaml", ".crashlens.yml", "crashlens.yaml", "crashlens.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	// Search locations in order of precedence (highest first)
	var searchPaths []string

	// 1. Current directory
	cwd, err := os.Getwd()
	if err == nil {
		searchPaths = append(searchPaths, cwd)
	}

	// 2. Home directory
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}

	// 3. Config directory (e.g., ~/.config/crashlens/)
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "crashlens"))
	}

	// 4. System config
	searchPaths = append(searchPaths, "/etc/crashlens")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		// Also check for config.yaml in subdirs
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CRASHLENS_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("CRASHLENS_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("CRASHLENS_POLICY"); v != "" {
		cfg.Scan.Policy = v
	}
	if v := os.Getenv("CRASHLENS_CATALOG"); v != "" {
		cfg.Scan.Catalog = v
	}
}
