// Package config loads tool configuration and resolves the Congress.gov
// API credential from its various sources.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration settings
type Config struct {
	// API configuration
	API APIConfig `yaml:"api" mapstructure:"api"`

	// Output configuration
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

type APIConfig struct {
	BaseURL   string        `yaml:"base_url" mapstructure:"base_url"`
	Key       string        `yaml:"key" mapstructure:"key"`
	PageSize  int           `yaml:"page_size" mapstructure:"page_size"`   // Upstream maximum is 250
	RateLimit int           `yaml:"rate_limit" mapstructure:"rate_limit"` // Requests per second
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type OutputConfig struct {
	Directory string `yaml:"directory" mapstructure:"directory"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "https://api.congress.gov/v3",
			PageSize:  250,
			RateLimit: 2,
			Timeout:   30 * time.Second,
		},
		Output: OutputConfig{
			Directory: "results",
		},
	}
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	// Load .env files first (in order of precedence)
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	// Set defaults
	cfg := Default()
	v.SetDefault("api", cfg.API)
	v.SetDefault("output", cfg.Output)

	// Load from environment variables
	v.SetEnvPrefix("CONGRESS")
	v.AutomaticEnv()

	// Try to find config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		// Search for config in standard locations
		v.SetConfigName("config")
		v.AddConfigPath(".congress")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".congress"))
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	// Unmarshal into struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence
func loadEnvFiles() {
	envFiles := []string{
		".env.local", // Local overrides (highest precedence)
		".env",       // Main environment file
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	// Also try loading from home directory
	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".congress", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		godotenv.Load(homeEnvFile)
	}
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv(EnvAPIKey); key != "" {
		cfg.API.Key = key
	}
	if base := os.Getenv("CONGRESS_API_BASE_URL"); base != "" {
		cfg.API.BaseURL = base
	}
	if size := os.Getenv("CONGRESS_PAGE_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			cfg.API.PageSize = n
		}
	}
	if limit := os.Getenv("CONGRESS_RATE_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			cfg.API.RateLimit = n
		}
	}
	if secs := os.Getenv("CONGRESS_TIMEOUT_SECONDS"); secs != "" {
		if n, err := strconv.Atoi(secs); err == nil {
			cfg.API.Timeout = time.Duration(n) * time.Second
		}
	}
	if dir := os.Getenv("CONGRESS_OUTPUT_DIR"); dir != "" {
		cfg.Output.Directory = dir
	}
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("api", c.API)
	v.Set("output", c.Output)

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write config file
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
