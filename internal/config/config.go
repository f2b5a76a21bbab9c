// Package config loads and validates the optional .solvent YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ktsuchiya/solvent/internal/digest"
)

// Default values for solver invocation and analysis.
const (
	DefaultCommandPrefix = "uv run python -u"
	DefaultModel         = "gemini-2.5-flash"
	DefaultAPIKeyEnv     = "GEMINI_API_KEY"
)

// Config holds the parsed .solvent configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version          int           `yaml:"version"`
	RawCommandPrefix string        `yaml:"command_prefix"` // e.g. "python3 -u"
	RawBanners       []string      `yaml:"banners"`        // vendor banner substrings to hide
	Digest           DigestConfig  `yaml:"digest"`
	Analyze          AnalyzeConfig `yaml:"analyze"`
}

// DigestConfig tunes the log compression pipeline.
type DigestConfig struct {
	MaxArrayItems int    `yaml:"max_array_items"` // JSON arrays longer than this are truncated
	SampleWindow  int    `yaml:"sample_window"`   // leading numeric lines always kept
	SampleStride  int    `yaml:"sample_stride"`   // every Nth numeric line kept thereafter
	MaxChars      int    `yaml:"max_chars"`       // digest character budget
	BeginMarker   string `yaml:"begin_marker"`    // start of the embedded JSON block
	EndMarker     string `yaml:"end_marker"`      // end of the embedded JSON block
}

// AnalyzeConfig controls the report generation call.
type AnalyzeConfig struct {
	Model          string `yaml:"model"`            // Gemini model identifier
	APIKeyEnv      string `yaml:"api_key_env"`      // env var holding the API key
	MaxPromptChars int    `yaml:"max_prompt_chars"` // 0 = rely on the digest budget
}

// CommandPrefix returns the configured solver command prefix or the default.
func (c *Config) CommandPrefix() string {
	if c.RawCommandPrefix != "" {
		return c.RawCommandPrefix
	}
	return DefaultCommandPrefix
}

// Banners returns the configured banner substrings, falling back to the
// digest package defaults.
func (c *Config) Banners() []string {
	if len(c.RawBanners) > 0 {
		return c.RawBanners
	}
	return digest.DefaultBanners
}

// DigestSettings returns the compression configuration. Zero fields are
// filled with defaults inside the digest package.
func (c *Config) DigestSettings() digest.Config {
	return digest.Config{
		MaxArrayItems: c.Digest.MaxArrayItems,
		SampleWindow:  c.Digest.SampleWindow,
		SampleStride:  c.Digest.SampleStride,
		MaxChars:      c.Digest.MaxChars,
		BeginMarker:   c.Digest.BeginMarker,
		EndMarker:     c.Digest.EndMarker,
	}
}

// Model returns the configured model identifier or the default.
func (c *Config) Model() string {
	if c.Analyze.Model != "" {
		return c.Analyze.Model
	}
	return DefaultModel
}

// APIKeyEnv returns the name of the env var holding the API key.
func (c *Config) APIKeyEnv() string {
	if c.Analyze.APIKeyEnv != "" {
		return c.Analyze.APIKeyEnv
	}
	return DefaultAPIKeyEnv
}

// MaxPromptChars returns the submission prompt bound; 0 means the
// digest budget alone is trusted.
func (c *Config) MaxPromptChars() int {
	if c.Analyze.MaxPromptChars > 0 {
		return c.Analyze.MaxPromptChars
	}
	return 0
}

// Load reads the .solvent file from workspace. If no file exists, a
// default Config is returned.
func Load(workspace string) (*Config, error) {
	path := filepath.Join(workspace, ".solvent")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading .solvent: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing .solvent: %w", err)
	}
	return cfg, nil
}
