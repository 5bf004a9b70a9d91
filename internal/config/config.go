package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file at the repo root.
const FileName = "spendcat.yaml"

// Environment overrides, also read from a .env file.
const (
	EnvLogLevel  = "SPENDCAT_LOG_LEVEL"
	EnvLogFormat = "SPENDCAT_LOG_FORMAT"
)

// Config represents the top-level spendcat.yaml configuration.
type Config struct {
	Project ProjectConfig `yaml:"project"`
	Import  ImportConfig  `yaml:"import"`
	Log     LogConfig     `yaml:"log"`
	Git     GitConfig     `yaml:"git"`
}

// ProjectConfig identifies whose expenses these are.
type ProjectConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// ImportConfig controls statement imports.
type ImportConfig struct {
	Format           string `yaml:"format"`
	Concurrency      int    `yaml:"concurrency"`
	DefaultProjectID string `yaml:"default_project_id,omitempty"`
	MoveProcessed    bool   `yaml:"move_processed"`
}

// LogConfig controls logger output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// GitConfig controls committing imports when the repo is a git checkout.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a spendcat.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(projectName string) *Config {
	return &Config{
		Project: ProjectConfig{
			Name:     projectName,
			Currency: "EUR",
		},
		Import: ImportConfig{
			Format:        "revolut",
			Concurrency:   4,
			MoveProcessed: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "spendcat",
			AuthorEmail: "spendcat@localhost",
		},
	}
}

func (c *Config) fillDefaults() {
	d := Default(c.Project.Name)
	if c.Project.Currency == "" {
		c.Project.Currency = d.Project.Currency
	}
	if c.Import.Format == "" {
		c.Import.Format = d.Import.Format
	}
	if c.Import.Concurrency <= 0 {
		c.Import.Concurrency = d.Import.Concurrency
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Git.AuthorName == "" {
		c.Git.AuthorName = d.Git.AuthorName
	}
	if c.Git.AuthorEmail == "" {
		c.Git.AuthorEmail = d.Git.AuthorEmail
	}
}

// LoadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides log settings from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
}
