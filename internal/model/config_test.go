package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveBaseURLExplicitWins(t *testing.T) {
	cfg := APIConfig{
		Base: "https://api.example.com/api/",
		Host: "github.io",
	}

	got, err := cfg.ResolveBaseURL()
	require.NoError(t, err)
	require.Equal(t, "https://api.example.com/api", got)
}

func TestResolveBaseURLLoopback(t *testing.T) {
	for _, host := range []string{"localhost", "127.0.0.1"} {
		got, err := APIConfig{Host: host}.ResolveBaseURL()
		require.NoError(t, err)
		require.Equal(t, "http://localhost:8000/api", got)
	}
}

func TestResolveBaseURLStaticHostingNeedsExternalBase(t *testing.T) {
	_, err := APIConfig{Host: "widgets.github.io"}.ResolveBaseURL()
	require.Error(t, err)

	got, err := APIConfig{
		Host:         "widgets.github.io",
		ExternalBase: "https://api.widgets.example/api",
	}.ResolveBaseURL()
	require.NoError(t, err)
	require.Equal(t, "https://api.widgets.example/api", got)
}

func TestResolveBaseURLSameDomain(t *testing.T) {
	got, err := APIConfig{Host: "widgets.example.com"}.ResolveBaseURL()
	require.NoError(t, err)
	require.Equal(t, "https://widgets.example.com/api", got)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, "localhost", cfg.API.Host)
	require.Equal(t, 100, cfg.API.PageLimit)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
api:
  host: widgets.example.com
  page_limit: 25
display:
  accent: "#ff8800"
log:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "widgets.example.com", cfg.API.Host)
	require.Equal(t, 25, cfg.API.PageLimit)
	require.Equal(t, "#ff8800", cfg.Display.Accent)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigClampsPageLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  page_limit: -5\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 100, cfg.API.PageLimit)
}
