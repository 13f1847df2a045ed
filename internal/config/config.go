package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Backend     string `yaml:"backend,omitempty"`
	Nameserver  string `yaml:"nameserver,omitempty"`
	DoHProvider string `yaml:"doh-provider,omitempty"`
	PreferGo    bool   `yaml:"prefer-go,omitempty"`
	Pihole      struct {
		Endpoint string `yaml:"endpoint,omitempty"`
		APIKey   string `yaml:"apikey,omitempty"`
	} `yaml:"pihole,omitempty"`
	MaxAliasDepth *int              `yaml:"max-alias-depth,omitempty"` // nil when unset, 0 is a valid value
	Color         string            `yaml:"color,omitempty"`
	Hosts         map[string]string `yaml:"hosts,omitempty"`   // name -> address overrides
	Aliases       map[string]string `yaml:"aliases,omitempty"` // name -> canonical name overrides
}

func Parse(confyaml []byte) (*Config, error) {
	c := &Config{}
	err := yaml.Unmarshal(confyaml, c)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values that yaml decoding alone can't reject.
func (c *Config) Validate() error {
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, not %q", c.Color)
	}
	return nil
}

// DefaultPath is where the config lives when no path is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "nameres", "config.yaml")
}

// Load reads the config at path. With explicit unset, a missing file yields an empty config.
func Load(path string, explicit bool) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// HasOverrides reports whether any static hosts or aliases are configured.
func (c *Config) HasOverrides() bool {
	return len(c.Hosts) != 0 || len(c.Aliases) != 0
}
