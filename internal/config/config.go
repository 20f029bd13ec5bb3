// Package config loads credvault settings.
//
// Sources, later ones winning:
//   - built-in defaults
//   - a YAML file (explicit path, or credvault.yaml in the vault directory)
//   - CREDVAULT_DIR, CREDVAULT_VAULT_FILE and CREDVAULT_LOG_LEVEL
//
// Command-line flags are applied on top by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is looked up in the vault directory when no path is given
const FileName = "credvault.yaml"

// Environment variables
const (
	EnvDir       = "CREDVAULT_DIR"
	EnvVaultFile = "CREDVAULT_VAULT_FILE"
	EnvLogLevel  = "CREDVAULT_LOG_LEVEL"
	EnvPassword  = "CREDVAULT_PASSWORD"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds runtime settings
type Config struct {
	Dir       string `yaml:"dir"`
	VaultFile string `yaml:"vault_file"`
	LogLevel  string `yaml:"log_level"`
	Keyring   bool   `yaml:"keyring"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Dir:       ".",
		VaultFile: "password.csv",
		LogLevel:  "warn",
		Keyring:   true,
	}
}

// Load builds a Config from defaults, the YAML file and the environment.
// An explicit path must exist; the implicit one may be absent.
func Load(path string) (*Config, error) {
	cfg := Default()
	if dir, ok := os.LookupEnv(EnvDir); ok && dir != "" {
		cfg.Dir = dir
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.Dir, FileName)
	}

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.decode(content); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(content []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvDir); ok && v != "" {
		c.Dir = v
	}
	if v, ok := os.LookupEnv(EnvVaultFile); ok && v != "" {
		c.VaultFile = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
}

// Validate checks that required settings are present
func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("%w: dir is empty", ErrInvalidConfig)
	}
	if c.VaultFile == "" {
		return fmt.Errorf("%w: vault_file is empty", ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}
