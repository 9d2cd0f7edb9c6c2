// Package config provides configuration loading for swagger-preview.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	configloader "github.com/GabrielNunesIT/go-libs/config-loader"
)

const (
	// DefaultFile is read from the working directory when present.
	DefaultFile = "swagger-preview.yaml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SWAGGER_PREVIEW_"
	// HistoryDB is the database file inside DataDir.
	HistoryDB = "history.db"
)

// Config holds the application configuration.
type Config struct {
	ListenAddr       string `koanf:"listen_addr"`
	DataDir          string `koanf:"data_dir"`
	FetchTimeout     string `koanf:"fetch_timeout"`
	MaxSpecBytes     int64  `koanf:"max_spec_bytes"`
	SwaggerUIVersion string `koanf:"swagger_ui_version"`
	AllowAllOrigins  bool   `koanf:"allow_all_origins"`
	AllowLocalFiles  bool   `koanf:"allow_local_files"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		ListenAddr:       "127.0.0.1:8642",
		DataDir:          defaultDataDir(),
		FetchTimeout:     "0s",
		MaxSpecBytes:     10 << 20,
		SwaggerUIVersion: "5",
	}
}

// Load returns the application configuration using go-libs config-loader:
// defaults, then the YAML file at path (DefaultFile when empty, skipped if
// absent), then SWAGGER_PREVIEW_* environment variables.
func Load(path string) (*Config, error) {
	defaults := Defaults()

	load := func() (Config, error) {
		return configloader.NewConfigLoader(
			configloader.WithDefaults(defaults),
			configloader.WithEnv[Config](EnvPrefix),
		).Load()
	}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if _, err := os.Stat(path); err == nil {
		load = func() (Config, error) {
			return configloader.NewConfigLoader(
				configloader.WithDefaults(defaults),
				configloader.WithFile[Config](path),
				configloader.WithEnv[Config](EnvPrefix),
			).Load()
		}
	} else if explicit {
		return nil, fmt.Errorf("config file: %w", err)
	}

	cfg, err := load()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that cannot be used as given.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return errors.New("listen_addr must not be empty")
	}
	if c.MaxSpecBytes < 0 {
		return errors.New("max_spec_bytes must not be negative")
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	return nil
}

// Timeout parses FetchTimeout. Zero means fetches never time out.
func (c *Config) Timeout() (time.Duration, error) {
	if c.FetchTimeout == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid fetch_timeout %q: %w", c.FetchTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("fetch_timeout must not be negative: %s", d)
	}
	return d, nil
}

// HistoryPath is the recall list database location.
func (c *Config) HistoryPath() string {
	return filepath.Join(expandHome(c.DataDir), HistoryDB)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".swagger-preview"
	}
	return filepath.Join(home, ".swagger-preview")
}

func expandHome(dir string) string {
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		return dir
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return dir
	}
	return filepath.Join(home, strings.TrimPrefix(dir, "~"))
}
