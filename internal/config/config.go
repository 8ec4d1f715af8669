// Package config loads the YAML configuration shared by the CLI commands
// and the playground server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "http2java.yaml"

	defaultListen       = "127.0.0.1:3380"
	defaultMaxBodyBytes = 64 << 10
	defaultDebounceMs   = 200
	defaultStyle        = "monokai"

	envListen = "HTTP2JAVA_LISTEN"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Diagnostic output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

type OutputConfig struct {
	Color string `yaml:"color"`
	Style string `yaml:"style"`
	Copy  bool   `yaml:"copy"`
}

type DiagnosticsConfig struct {
	Format           string `yaml:"format"`
	WarningsAsErrors bool   `yaml:"warnings_as_errors"`
}

type ServerConfig struct {
	Listen       string `yaml:"listen"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms"`
}

type Config struct {
	Output      OutputConfig      `yaml:"output"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Server      ServerConfig      `yaml:"server"`
	Watch       WatchConfig       `yaml:"watch"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads path. A missing file yields the defaults; any other read or
// decode failure is returned. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Output.Color = strings.ToLower(strings.TrimSpace(c.Output.Color))
	if c.Output.Color == "" {
		c.Output.Color = ColorAuto
	}
	if strings.TrimSpace(c.Output.Style) == "" {
		c.Output.Style = defaultStyle
	}
	c.Diagnostics.Format = strings.ToLower(strings.TrimSpace(c.Diagnostics.Format))
	if c.Diagnostics.Format == "" {
		c.Diagnostics.Format = FormatText
	}
	if strings.TrimSpace(c.Server.Listen) == "" {
		c.Server.Listen = defaultListen
	}
	if c.Server.MaxBodyBytes <= 0 {
		c.Server.MaxBodyBytes = defaultMaxBodyBytes
	}
	if c.Watch.DebounceMs <= 0 {
		c.Watch.DebounceMs = defaultDebounceMs
	}
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(envListen)); v != "" {
		c.Server.Listen = v
	}
}

// Validate rejects unknown enum values.
func (c *Config) Validate() error {
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("output.color: unknown mode %q (want auto, always or never)", c.Output.Color)
	}
	switch c.Diagnostics.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("diagnostics.format: unknown format %q (want text or json)", c.Diagnostics.Format)
	}
	return nil
}
