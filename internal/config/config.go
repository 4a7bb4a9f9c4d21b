// Package config handles loading, validating, and rendering the iconforge
// configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/aellingwood/iconforge/internal/icon"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "iconforge.yaml"

// Config is the top-level iconforge configuration. The density tables and
// the safe-zone ratio are fixed and deliberately not part of it.
type Config struct {
	Source    string      `yaml:"source"    mapstructure:"source"`
	OutputDir string      `yaml:"outputDir" mapstructure:"outputDir"`
	PNG       PNGConfig   `yaml:"png"       mapstructure:"png"`
	Watch     WatchConfig `yaml:"watch"     mapstructure:"watch"`
}

// PNGConfig controls PNG encoding.
type PNGConfig struct {
	Compression string `yaml:"compression" mapstructure:"compression"`
}

// WatchConfig controls `iconforge watch`.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

// Default returns a Config pointing at the conventional logo location and
// the res/ directory of a Capacitor/Cordova style Android project.
func Default() *Config {
	return &Config{
		Source:    "icons/logo.png",
		OutputDir: filepath.Join("android", "app", "src", "main", "res"),
		PNG: PNGConfig{
			Compression: string(icon.CompressionDefault),
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// Load reads a configuration file from configPath (YAML or TOML) and returns
// a Config with defaults applied first and file values overlaid on top.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	v := viper.New()

	ext := strings.TrimPrefix(filepath.Ext(configPath), ".")
	switch ext {
	case "toml":
		v.SetConfigType("toml")
	default:
		v.SetConfigType("yaml")
	}

	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOptional behaves like Load, except that a missing file yields the
// defaults when the path was not named explicitly by the user.
func LoadOptional(configPath string, explicit bool) (*Config, error) {
	if !explicit {
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
	}
	return Load(configPath)
}

// Validate checks the Config for common errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return fmt.Errorf("config: source is required")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("config: outputDir is required")
	}
	if _, err := icon.ParseCompression(c.PNG.Compression); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("config: watch.debounce must not be negative (got %s)", c.Watch.Debounce)
	}
	return nil
}

// WithOverrides applies CLI flag overrides to the config. Empty strings are
// ignored so unset flags do not clobber file values. The modified config is
// returned for convenient chaining.
func (c *Config) WithOverrides(overrides map[string]any) *Config {
	for key, val := range overrides {
		s, ok := val.(string)
		if !ok || s == "" {
			continue
		}
		switch key {
		case "source":
			c.Source = s
		case "outputDir":
			c.OutputDir = s
		case "compression":
			c.PNG.Compression = s
		}
	}
	return c
}

// fileView mirrors Config with durations spelled as strings, so the
// rendered file reads the same way a user would write it.
type fileView struct {
	Source    string `yaml:"source"    toml:"source"    json:"source"`
	OutputDir string `yaml:"outputDir" toml:"outputDir" json:"outputDir"`
	PNG       struct {
		Compression string `yaml:"compression" toml:"compression" json:"compression"`
	} `yaml:"png" toml:"png" json:"png"`
	Watch struct {
		Debounce string `yaml:"debounce" toml:"debounce" json:"debounce"`
	} `yaml:"watch" toml:"watch" json:"watch"`
}

// View returns the config in its file shape, suitable for JSON encoding.
func (c *Config) View() any {
	var v fileView
	v.Source = c.Source
	v.OutputDir = c.OutputDir
	v.PNG.Compression = c.PNG.Compression
	v.Watch.Debounce = c.Watch.Debounce.String()
	return v
}

// Marshal renders the config as "yaml" or "toml".
func (c *Config) Marshal(format string) ([]byte, error) {
	v := c.View()
	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		return yaml.Marshal(v)
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(v); err != nil {
			return nil, fmt.Errorf("encoding toml: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown format %q (want yaml or toml)", format)
}
