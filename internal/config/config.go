// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults, CLI
// flags, or environment variables.
type Config struct {
	// Paths
	MDDir     string `json:"md_dir,omitempty"`     // Directory of markdown corpus files
	CacheFile string `json:"cache_file,omitempty"` // Path to the corpus cache blob

	// Corpus
	CacheTTLHours int `json:"cache_ttl_hours,omitempty"` // Cache freshness window in hours

	// API keys
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Gemini API key
	SerperAPIKey string `json:"serper_api_key,omitempty"` // Serper web search API key
	GoogleAPIKey string `json:"google_api_key,omitempty"` // Google Custom Search API key
	GoogleCX     string `json:"google_cx,omitempty"`      // Google programmable search engine id

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Behavior
	SearchDelayMS int  `json:"search_delay_ms,omitempty"` // Delay between batch LinkedIn lookups
	UseBrowser    bool `json:"use_browser,omitempty"`     // Use headless browser for SPA sites
	Verbose       bool `json:"verbose,omitempty"`         // Print detailed debug information
}

// Environment variable names consulted by FromEnv.
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvSerperAPIKey = "SERPER_API_KEY"
	EnvGoogleAPIKey = "GOOGLE_API_KEY"
	EnvGoogleCX     = "GOOGLE_CX"
	EnvMDDir        = "MD_DIR"
	EnvCacheFile    = "CACHE_FILE"
	EnvPort         = "PORT"
)

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills empty string fields from the process environment.
// File and flag values win over environment values.
func (c *Config) FromEnv() {
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv(EnvGeminiAPIKey)
	}
	if c.SerperAPIKey == "" {
		c.SerperAPIKey = os.Getenv(EnvSerperAPIKey)
	}
	if c.GoogleAPIKey == "" {
		c.GoogleAPIKey = os.Getenv(EnvGoogleAPIKey)
	}
	if c.GoogleCX == "" {
		c.GoogleCX = os.Getenv(EnvGoogleCX)
	}
	if c.MDDir == "" {
		c.MDDir = os.Getenv(EnvMDDir)
	}
	if c.CacheFile == "" {
		c.CacheFile = os.Getenv(EnvCacheFile)
	}
	if c.Port == 0 {
		if port := os.Getenv(EnvPort); port != "" {
			fmt.Sscanf(port, "%d", &c.Port)
		}
	}
}

// Validate checks that the configuration has valid values.
// Required fields are enforced later by the commands that need them.
func (c *Config) Validate() error {
	if c.CacheTTLHours < 0 {
		return fmt.Errorf("config error: 'cache_ttl_hours' must be non-negative")
	}
	if c.SearchDelayMS < 0 {
		return fmt.Errorf("config error: 'search_delay_ms' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}

	if c.MDDir != "" {
		if info, err := os.Stat(c.MDDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: 'md_dir' is not a directory: %s", c.MDDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.MDDir == "" {
		result.MDDir = defaults.MDDir
	}
	if result.CacheFile == "" {
		result.CacheFile = defaults.CacheFile
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.SerperAPIKey == "" {
		result.SerperAPIKey = defaults.SerperAPIKey
	}
	if result.GoogleAPIKey == "" {
		result.GoogleAPIKey = defaults.GoogleAPIKey
	}
	if result.GoogleCX == "" {
		result.GoogleCX = defaults.GoogleCX
	}

	if result.CacheTTLHours == 0 {
		result.CacheTTLHours = defaults.CacheTTLHours
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.SearchDelayMS == 0 {
		result.SearchDelayMS = defaults.SearchDelayMS
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		MDDir:         "md",
		CacheFile:     filepath.Join(".cache", "corpus.json"),
		CacheTTLHours: 24,
		Port:          3000,
		SearchDelayMS: 1000,
	}
}
