// Package config loads application settings from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FilterRules controls which files a watched folder yields.
type FilterRules struct {
	Include    []string `yaml:"include"`
	Exclude    []string `yaml:"exclude"`
	SkipFiles  []string `yaml:"skip_files"`
	SkipDirs   []string `yaml:"skip_dirs"`
	SkipHidden bool     `yaml:"skip_hidden"`
}

// DedupSettings selects which duplicate checks run during a move batch.
type DedupSettings struct {
	SameName bool `yaml:"same_name"`
	Global   bool `yaml:"global"`
}

// AISettings configures the optional AI classification client. The API
// key falls back to the OPENAI_API_KEY environment variable when empty.
type AISettings struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// Config is the application configuration.
type Config struct {
	WatchedFolders []string      `yaml:"watched_folders"`
	Destination    string        `yaml:"destination"`
	Rules          FilterRules   `yaml:"rules"`
	Dedup          DedupSettings `yaml:"dedup"`
	AI             AISettings    `yaml:"ai"`
	LogLevel       string        `yaml:"log_level"`
	Workers        int           `yaml:"workers"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Rules: FilterRules{
			SkipHidden: true,
		},
		Dedup: DedupSettings{
			SameName: true,
		},
		AI: AISettings{
			Model: "gpt-4o-mini",
		},
		LogLevel: "info",
	}
}

// Load reads and validates a YAML configuration file, applying defaults
// for unset fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()

	return cfg, nil
}

// applyEnv fills settings that may come from the environment.
func (c *Config) applyEnv() {
	if c.AI.APIKey == "" {
		c.AI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}
