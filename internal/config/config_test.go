package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.True(t, cfg.KeepRaw())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
parse:
  keepRaw: false
output:
  format: text
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.KeepRaw())
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("MIMEINSPECT_LOG_LEVEL", "warn")
	path := writeConfig(t, "logging:\n  level: ${MIMEINSPECT_LOG_LEVEL}\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, slog.LevelWarn, cfg.LogLevel())
	assert.True(t, cfg.KeepRaw())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"level", "logging:\n  level: loud\n"},
		{"log format", "logging:\n  format: xml\n"},
		{"output format", "output:\n  format: json\n"},
		{"yaml", "logging: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
