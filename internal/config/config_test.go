// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appraisal-tools/report-qa/internal/config"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
	assert.Equal(t, "Asia/Jerusalem", cfg.Location().String())
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, "report-qa.yaml", `
log_level: debug
output: text
timezone: UTC
server:
  name: appraisal-qa
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.OutputText, cfg.Output)
	assert.Equal(t, "appraisal-qa", cfg.Server.Name)
	assert.Equal(t, "dev", cfg.Server.Version, "unset keys keep their defaults")
	assert.Equal(t, log.DebugLevel, cfg.Level())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "report-qa.yaml", "output: text\n")
	t.Setenv("REPORT_QA_OUTPUT", "yaml")
	t.Setenv("REPORT_QA_SERVER_VERSION", "1.2.3")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.OutputYAML, cfg.Output)
	assert.Equal(t, "1.2.3", cfg.Server.Version)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr []string
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "unknown output", mutate: func(c *config.Config) { c.Output = "xml" }, wantErr: []string{"unknown output format"}},
		{name: "bad level", mutate: func(c *config.Config) { c.LogLevel = "loud" }, wantErr: []string{"invalid log_level"}},
		{name: "bad timezone", mutate: func(c *config.Config) { c.Timezone = "Mars/Olympus" }, wantErr: []string{"invalid timezone"}},
		{
			name: "all errors reported together",
			mutate: func(c *config.Config) {
				c.Output = "xml"
				c.Timezone = "Mars/Olympus"
			},
			wantErr: []string{"unknown output format", "invalid timezone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestConfig_FallbacksOnInvalidValues(t *testing.T) {
	cfg := &config.Config{LogLevel: "loud", Timezone: "Mars/Olympus"}
	assert.Equal(t, log.InfoLevel, cfg.Level())
	assert.Equal(t, "UTC", cfg.Location().String())
}
