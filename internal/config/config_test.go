package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ".modelgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(Options{SearchPaths: []string{t.TempDir()}})
	require.NoError(t, err)

	assert.True(t, cfg.Dev)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, FormatText, cfg.LogFormat)
	assert.False(t, cfg.AllowHTTP)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Empty(t, cfg.File)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "dev: false\nlog_level: warn\nallow_http: true\nhttp_timeout: 3s\n")

	t.Setenv("MODELGEN_LOG_LEVEL", "error")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-format", "text", "")
	flags.Bool("dev", true, "")
	require.NoError(t, flags.Parse([]string{"--log-format=json"}))

	cfg, err := Load(Options{SearchPaths: []string{dir}, Flags: flags})
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.False(t, cfg.Dev, "unchanged flag must not override the file")
	assert.Equal(t, "error", cfg.LogLevel, "env overrides file")
	assert.Equal(t, FormatJSON, cfg.LogFormat, "flag overrides default")
	assert.True(t, cfg.AllowHTTP)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	_, err := Load(Options{Path: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "log_format: xml\n")
	_, err := Load(Options{SearchPaths: []string{dir}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_format")

	writeConfig(t, dir, "log_level: loud\n")
	_, err = Load(Options{SearchPaths: []string{dir}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Config{LogLevel: "warn", LogFormat: FormatJSON}.Logger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "field", "foo")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"), "expected JSON output: %s", out)
	assert.Contains(t, out, `"field":"foo"`)
}
