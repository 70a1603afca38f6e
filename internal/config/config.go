package config

import (
	"fmt"
	"os"

	"github.com/rpggio/workspace-nexus/internal/validate"
	"gopkg.in/yaml.v3"
)

// Seed sources.
const (
	SourceBuiltin = "builtin"
	SourceYAML    = "yaml"
	SourceSQLite  = "sqlite"
)

// ID schemes.
const (
	SchemeSequence = "sequence"
	SchemeUUID     = "uuid"
)

// Config defines application configuration.
type Config struct {
	Seed    SeedConfig    `yaml:"seed"`
	IDs     IDConfig      `yaml:"ids"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
}

type SeedConfig struct {
	Source string `yaml:"source" validate:"oneof=builtin yaml sqlite"`
	Path   string `yaml:"path" validate:"required_unless=Source builtin"`
}

type IDConfig struct {
	Scheme string `yaml:"scheme" validate:"oneof=sequence uuid"`
}

type SessionConfig struct {
	// DefaultUser is a user id or email to sign in at startup. Empty keeps
	// the seed's current user.
	DefaultUser string `yaml:"default_user"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn warning error"`
	// Path sends logs to a size-capped file instead of stderr.
	Path string `yaml:"path"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Seed: SeedConfig{
			Source: SourceBuiltin,
		},
		IDs: IDConfig{
			Scheme: SchemeSequence,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional YAML file and environment
// variables. An empty path falls back to NEXUS_CONFIG_PATH.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("NEXUS_CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if source := os.Getenv("NEXUS_SEED_SOURCE"); source != "" {
		cfg.Seed.Source = source
	}
	if seedPath := os.Getenv("NEXUS_SEED_PATH"); seedPath != "" {
		cfg.Seed.Path = seedPath
	}
	if scheme := os.Getenv("NEXUS_ID_SCHEME"); scheme != "" {
		cfg.IDs.Scheme = scheme
	}
	if user := os.Getenv("NEXUS_DEFAULT_USER"); user != "" {
		cfg.Session.DefaultUser = user
	}
	if level := os.Getenv("NEXUS_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("NEXUS_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}

	return cfg, nil
}

// Validate checks every field against its allowed values.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
