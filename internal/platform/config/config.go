package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL = "http://localhost:5000"
	DefaultTimeout = 15 * time.Second
	BaseURLEnv     = "FACTORYERP_BASE_URL"
)

type Config struct {
	Home        string
	BaseURL     string
	StoragePath string
	LogPath     string
	Timeout     time.Duration
	Verbose     bool
}

// fileConfig mirrors <home>/.factoryerp/config.yaml.
type fileConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
	Storage string `yaml:"storage"`
	LogFile string `yaml:"log_file"`
	Verbose bool   `yaml:"verbose"`
}

func New(home string) (Config, error) {
	if home == "" {
		return Config{}, fmt.Errorf("home path is required")
	}
	dir := filepath.Join(home, ".factoryerp")
	return Config{
		Home:        home,
		BaseURL:     DefaultBaseURL,
		StoragePath: filepath.Join(dir, "storage.db"),
		LogPath:     filepath.Join(dir, "factoryerp.log"),
		Timeout:     DefaultTimeout,
	}, nil
}

// Load builds the defaults for home, overlays config.yaml when present and
// finally applies the base URL environment override.
func Load(home string) (Config, error) {
	cfg, err := New(home)
	if err != nil {
		return Config{}, err
	}
	path := filepath.Join(home, ".factoryerp", "config.yaml")
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.overlay(raw); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if v := strings.TrimSpace(os.Getenv(BaseURLEnv)); v != "" {
		cfg.BaseURL = v
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

func (c *Config) overlay(raw []byte) error {
	fc := fileConfig{}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return err
	}
	if fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive")
		}
		c.Timeout = d
	}
	if fc.Storage != "" {
		c.StoragePath = c.resolve(fc.Storage)
	}
	if fc.LogFile != "" {
		c.LogPath = c.resolve(fc.LogFile)
	}
	c.Verbose = c.Verbose || fc.Verbose
	return nil
}

func (c Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Home, ".factoryerp", p)
}
