package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Log struct {
		Verbosity int `yaml:"verbosity"` // 0=error 1=warn 2=info 3=debug 4=trace
	} `yaml:"log"`
	History struct {
		SQLitePath string `yaml:"sqlite_path"` // empty disables quote history
	} `yaml:"history"`
	Input struct {
		Expressions bool `yaml:"expressions"` // accept arithmetic like 30/365
	} `yaml:"input"`
	Pricing struct {
		StrictInputs bool `yaml:"strict_inputs"` // refuse non-positive S, K, T, sigma
	} `yaml:"pricing"`
}

// Path resolves the config file location from the flag value and BSM_CONFIG.
// It returns "" when neither is set; no file is read implicitly.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("BSM_CONFIG")
}

// Load reads config from a YAML file, then applies environment variable overrides.
// An empty path or a missing file is not an error; the zero config is a plain
// interactive session.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("BSM_VERBOSITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("BSM_VERBOSITY: %w", err)
		}
		cfg.Log.Verbosity = n
	}
	if v := os.Getenv("BSM_HISTORY_DB"); v != "" {
		cfg.History.SQLitePath = v
	}
	if v := os.Getenv("BSM_EXPRESSIONS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("BSM_EXPRESSIONS: %w", err)
		}
		cfg.Input.Expressions = b
	}
	if v := os.Getenv("BSM_STRICT_INPUTS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("BSM_STRICT_INPUTS: %w", err)
		}
		cfg.Pricing.StrictInputs = b
	}

	return cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Log.Verbosity < 0 || c.Log.Verbosity > 4 {
		return fmt.Errorf("log.verbosity must be between 0 and 4, got %d", c.Log.Verbosity)
	}
	return nil
}
