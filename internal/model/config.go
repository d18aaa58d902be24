package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// devAPIBase is the fixed endpoint used when the configured host is a
// local loopback name.
const devAPIBase = "http://localhost:8000/api"

// APIConfig holds settings for reaching the notification backend.
type APIConfig struct {
	// Base is an explicit backend base URL. When set it wins over any
	// host-based resolution.
	Base string `mapstructure:"base" yaml:"base"`

	// Host is the domain the widget is served from, used to resolve a
	// base URL when Base is empty.
	Host string `mapstructure:"host" yaml:"host"`

	// ExternalBase is the backend URL required when Host is a static
	// hosting domain that cannot serve the API itself.
	ExternalBase string `mapstructure:"external_base" yaml:"external_base"`

	// PageLimit bounds how many notifications a single reload requests.
	PageLimit int `mapstructure:"page_limit" yaml:"page_limit"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Accent overrides the theme accent color (hex). The host theme
	// color, when present, takes precedence over this.
	Accent string `mapstructure:"accent" yaml:"accent"`
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/notifeed/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "notifeed", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			Host:      "localhost",
			PageLimit: 100,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// newViper builds a viper instance bound to the given config file with
// defaults applied for missing keys.
func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("api.host", "localhost")
	v.SetDefault("api.page_limit", 100)
	v.SetDefault("log.level", "info")

	return v
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := newViper(path)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.API.PageLimit <= 0 {
		cfg.API.PageLimit = 100
	}

	return cfg, nil
}

// WatchConfig re-reads the file whenever it changes on disk and invokes
// onChange with the fresh configuration. Parse failures keep the previous
// configuration and are reported through onError.
func WatchConfig(path string, onChange func(*AppConfig), onError func(error)) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		// Nothing to watch yet; viper will still pick the file up if it
		// appears later.
		_ = err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		cfg := defaultAppConfig()
		if err := v.Unmarshal(cfg); err != nil {
			if onError != nil {
				onError(fmt.Errorf("reloading config %s: %w", path, err))
			}
			return
		}
		if cfg.API.PageLimit <= 0 {
			cfg.API.PageLimit = 100
		}
		onChange(cfg)
	})
	v.WatchConfig()
}

// ResolveBaseURL determines the backend base URL for the configured
// environment. An explicit base always wins. Loopback hosts map to the
// fixed development endpoint. Static hosting domains cannot serve the
// API themselves, so they require an external base to be configured.
// Everything else assumes the API lives under /api on the same host.
func (c APIConfig) ResolveBaseURL() (string, error) {
	if c.Base != "" {
		return strings.TrimRight(c.Base, "/"), nil
	}

	host := c.Host
	if host == "localhost" || host == "127.0.0.1" {
		return devAPIBase, nil
	}

	if strings.Contains(host, "github.io") {
		if c.ExternalBase == "" {
			return "", fmt.Errorf(
				"host %s is static hosting: set api.external_base to the real API URL",
				host,
			)
		}
		return strings.TrimRight(c.ExternalBase, "/"), nil
	}

	return "https://" + host + "/api", nil
}
