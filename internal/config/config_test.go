package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ikanga93/ritt-ai-assistant/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, 0.5, cfg.Threshold)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromReader(t *testing.T) {
	cfg, err := config.LoadFromReader(strings.NewReader(`
catalog: menus/catalog.yaml
restaurant: micro dose
threshold: 0.6
`))

	require.NoError(t, err)
	assert.Equal(t, "menus/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, "micro dose", cfg.Restaurant)
	assert.Equal(t, 0.6, cfg.Threshold)
	assert.Equal(t, "warn", cfg.LogLevel, "unset keys keep their defaults")
}

func TestLoadFromReader_Empty(t *testing.T) {
	cfg, err := config.LoadFromReader(strings.NewReader(""))

	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadFromReader_UnknownKey(t *testing.T) {
	_, err := config.LoadFromReader(strings.NewReader("treshold: 0.6\n"))
	assert.Error(t, err)
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{"threshold too high", config.Config{Threshold: 1.5, LogLevel: "warn"}, "threshold"},
		{"threshold negative", config.Config{Threshold: -0.1, LogLevel: "warn"}, "threshold"},
		{"bad level", config.Config{Threshold: 0.5, LogLevel: "loud"}, "log_level"},
		{"bad url", config.Config{Threshold: 0.5, LogLevel: "warn", CatalogURL: "not a url"}, "catalog_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rittmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threshold: 0.6\nlog_level: info\n"), 0o600))
	t.Setenv("RITT_THRESHOLD", "0.7")
	t.Setenv("RITT_CATALOG_URL", "http://localhost:8080")

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, 0.7, cfg.Threshold)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http://localhost:8080", cfg.CatalogURL)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("RITT_THRESHOLD", "high")

	_, err := config.Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: open")
}
