// Package config provides configuration loading and structs for the
// textract server.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Limits   LimitsConfig   `yaml:"limits"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Extract  ExtractConfig  `yaml:"extract"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	CORSAllowOrigin string `yaml:"cors_allow_origin"`
}

// LimitsConfig holds request limits enforced by the web layer; the
// extraction core itself enforces nothing.
type LimitsConfig struct {
	MaxFileSizeMB int `yaml:"max_file_size_mb"`
}

// AnalysisConfig holds the external document-analysis backend settings.
// An empty URL disables the analyze endpoint gracefully.
type AnalysisConfig struct {
	URL            string `yaml:"url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ExtractConfig tunes the bundle cascade cleanup. The phrase and noise
// lists are deployment data, not code: the defaults target Czech
// financial/legal documents and can be swapped wholesale.
type ExtractConfig struct {
	DomainPhrases   []string `yaml:"domain_phrases"`
	NoiseWords      []string `yaml:"noise_words"`
	MinRunWords     int      `yaml:"min_run_words"`
	MinWordLetters  int      `yaml:"min_word_letters"`
	MinTextLen      int      `yaml:"min_text_len"`
	FallbackWords   int      `yaml:"fallback_words"`
	MaxRawScanBytes int      `yaml:"max_raw_scan_bytes"`
}

// Load reads and parses the config file at path and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}
