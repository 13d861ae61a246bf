package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the web server. Values are resolved
// in order: built-in defaults, optional YAML config file, environment overlay.
type Config struct {
	Addr           string        `yaml:"addr"`
	AssetBaseURL   string        `yaml:"asset_base_url"`
	DatasetPath    string        `yaml:"dataset_path"`
	CountryHeader  string        `yaml:"country_header"`
	RegionHeader   string        `yaml:"region_header"`
	LogLevel       string        `yaml:"log_level"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// SetDefaults initializes c with built-in defaults.
func (c *Config) SetDefaults() {
	if c.Addr == "" {
		// Port resolution: prefer NAEP_WEB_PORT, then Cloud Run's PORT, else 8080
		port := os.Getenv("NAEP_WEB_PORT")
		if port == "" {
			port = os.Getenv("PORT")
		}
		if port == "" {
			port = "8080"
		}
		c.Addr = ":" + port
	}
	if c.AssetBaseURL == "" {
		c.AssetBaseURL = "https://assets.mathfacts.org"
	}
	if c.DatasetPath == "" {
		c.DatasetPath = "/naep.json"
	}
	if c.CountryHeader == "" {
		c.CountryHeader = "CF-IPCountry"
	}
	if c.RegionHeader == "" {
		c.RegionHeader = "CF-Region-Code"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 30 * time.Second
	}
}

// LoadFile merges values from a YAML config file. A missing file is not an
// error so deployments can run on defaults plus environment alone.
func (c *Config) LoadFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays environment variables onto the current config values.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("NAEP_WEB_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("NAEP_WEB_ASSET_BASE"); v != "" {
		c.AssetBaseURL = v
	}
	if v := os.Getenv("NAEP_WEB_DATASET_PATH"); v != "" {
		c.DatasetPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// DatasetURL returns the absolute URL of the statistics dataset.
func (c *Config) DatasetURL() string {
	return strings.TrimRight(c.AssetBaseURL, "/") + c.DatasetPath
}
