// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. REPORT_QA_LOG_LEVEL.
const EnvPrefix = "REPORT_QA"

// Output formats for rendered validation reports.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputText = "text"
)

type Server struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// Config holds the runtime settings of the CLI and MCP server.
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	Output   string `mapstructure:"output"`
	// Timezone is the IANA zone "today" is computed in for date checks.
	Timezone string `mapstructure:"timezone"`
	Server   Server `mapstructure:"server"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Output:   OutputJSON,
		Timezone: "Asia/Jerusalem",
		Server: Server{
			Name:    "report-qa",
			Version: "dev",
		},
	}
}

// Load reads defaults, then the optional config file at path, then environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("timezone", defaults.Timezone)
	v.SetDefault("server.name", defaults.Server.Name)
	v.SetDefault("server.version", defaults.Server.Version)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that would fail later at use.
func (c *Config) Validate() error {
	var errs []error
	switch c.Output {
	case OutputJSON, OutputYAML, OutputText:
	default:
		errs = append(errs, fmt.Errorf("unknown output format %q (want json, yaml or text)", c.Output))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log_level: %w", err))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid timezone: %w", err))
	}
	return errors.Join(errs...)
}

// Location returns the configured time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Level returns the configured log level, falling back to info.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
