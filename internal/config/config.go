// Package config loads the optional slack-cli YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds defaults that command line flags may override.
type Config struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	// Timeout is a Go duration string, for example "15s".
	Timeout string      `yaml:"timeout,omitempty"`
	Color   string      `yaml:"color,omitempty"`
	Token   TokenConfig `yaml:"token"`
}

type TokenConfig struct {
	Env   string   `yaml:"env,omitempty"`
	Files []string `yaml:"files,omitempty"`
	// Credentials is a gocloud.dev/runtimevar URI.
	Credentials string `yaml:"credentials,omitempty"`
}

// DefaultConfigPath returns ~/.slack/config.yaml.
func DefaultConfigPath() string {

	home, err := os.UserHomeDir()

	if err != nil {
		return filepath.Join(".slack", "config.yaml")
	}

	return filepath.Join(home, ".slack", "config.yaml")
}

// Defaults returns an empty configuration: every value falls back to the library defaults.
func Defaults() *Config {
	return &Config{}
}

// Load reads the YAML file at path. When optional is true a missing file yields Defaults().
func Load(path string, optional bool) (*Config, error) {

	path = ExpandPath(path)

	body, err := os.ReadFile(path)

	if err != nil {

		if optional && errors.Is(err, fs.ErrNotExist) {
			return Defaults(), nil
		}

		return nil, fmt.Errorf("Failed to read config file %s, %w", path, err)
	}

	cfg := Defaults()

	err = yaml.Unmarshal(body, cfg)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse config file %s, %w", path, err)
	}

	for idx, f := range cfg.Token.Files {
		cfg.Token.Files[idx] = ExpandPath(f)
	}

	_, err = cfg.TimeoutDuration()

	if err != nil {
		return nil, fmt.Errorf("Failed to validate config file %s, %w", path, err)
	}

	return cfg, nil
}

// TimeoutDuration parses Timeout. An empty value returns zero.
func (c *Config) TimeoutDuration() (time.Duration, error) {

	str_timeout := strings.TrimSpace(c.Timeout)

	if str_timeout == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(str_timeout)

	if err != nil {
		return 0, fmt.Errorf("Invalid timeout '%s', %w", c.Timeout, err)
	}

	if d < 0 {
		return 0, fmt.Errorf("Invalid timeout '%s', must not be negative", c.Timeout)
	}

	return d, nil
}

// ExpandPath replaces a leading "~/" with the user's home directory.
func ExpandPath(path string) string {

	if !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()

	if err != nil {
		return path
	}

	return filepath.Join(home, path[2:])
}
