package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the stepline configuration.
type Config struct {
	DefaultEnvironment string   `json:"defaultEnvironment,omitempty"`
	ResultsFile        string   `json:"resultsFile,omitempty"`
	HistoryDB          string   `json:"historyDB,omitempty"`
	OutputDir          string   `json:"outputDir,omitempty"`
	Reporters          []string `json:"reporters,omitempty"`
	Timeout            int      `json:"timeout,omitempty"`      // milliseconds, per step
	StepInterval       int      `json:"stepInterval,omitempty"` // milliseconds between step launches
	Retries            int      `json:"retries,omitempty"`
	RetryDelay         int      `json:"retryDelay,omitempty"` // milliseconds
	Bail               *bool    `json:"bail,omitempty"`
	Verbose            *bool    `json:"verbose,omitempty"`
	NoColor            *bool    `json:"noColor,omitempty"`
}

// BoolPtr returns a pointer to a bool value.
func BoolPtr(b bool) *bool {
	return &b
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetBail returns the bail setting, defaulting to false.
func (c *Config) GetBail() bool {
	return getBool(c.Bail, false)
}

// GetVerbose returns the verbose setting, defaulting to false.
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false.
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// ConfigFilenames contains the possible config file names.
var ConfigFilenames = []string{
	".stepline.config.json",
	"stepline.config.json",
	".steplinerc",
	".steplinerc.json",
}

// LoadConfig loads configuration from the specified path, or searches the
// working directory for a config file, then applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	var cfg *Config
	var err error
	if path != "" {
		cfg, err = loadConfigFromFile(path)
	} else {
		cfg, err = FindAndLoadConfig(".")
	}
	if err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// FindAndLoadConfig searches for a config file in the given directory.
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides overlays STEPLINE_* variables onto the config. A .env
// file in the working directory is sourced first, without clobbering
// variables already present in the process environment.
func (c *Config) applyEnvOverrides() {
	_ = godotenv.Load()

	if v := os.Getenv("STEPLINE_ENV"); v != "" {
		c.DefaultEnvironment = v
	}
	if v := os.Getenv("STEPLINE_RESULTS_FILE"); v != "" {
		c.ResultsFile = v
	}
	if v := os.Getenv("STEPLINE_HISTORY_DB"); v != "" {
		c.HistoryDB = v
	}
	if v := os.Getenv("STEPLINE_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("STEPLINE_TIMEOUT"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			c.Timeout = ms
		}
	}
	if v := os.Getenv("STEPLINE_BAIL"); v != "" {
		c.Bail = BoolPtr(v == "true" || v == "1" || v == "yes")
	}
	if v := os.Getenv("STEPLINE_NO_COLOR"); v != "" {
		c.NoColor = BoolPtr(v == "true" || v == "1" || v == "yes")
	}
}

// Merge merges another config into this one, with other taking precedence.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.DefaultEnvironment != "" {
		result.DefaultEnvironment = other.DefaultEnvironment
	}
	if other.ResultsFile != "" {
		result.ResultsFile = other.ResultsFile
	}
	if other.HistoryDB != "" {
		result.HistoryDB = other.HistoryDB
	}
	if other.OutputDir != "" {
		result.OutputDir = other.OutputDir
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.StepInterval > 0 {
		result.StepInterval = other.StepInterval
	}
	if other.Retries > 0 {
		result.Retries = other.Retries
	}
	if other.RetryDelay > 0 {
		result.RetryDelay = other.RetryDelay
	}

	// Boolean flags - only override if explicitly set in other config
	if other.Bail != nil {
		result.Bail = other.Bail
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	if len(other.Reporters) > 0 {
		result.Reporters = other.Reporters
	}

	return &result
}

// SaveConfig saves the configuration to a file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
