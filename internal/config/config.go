// Package config loads the wadinfo configuration file.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted when no config
// path is given.
const EnvConfigPath = "WADINFO_CONFIG"

type Config struct {
	WAD       string `yaml:"wad"`
	Level     string `yaml:"level"`
	Verbose   bool   `yaml:"verbose"`
	PrintTree bool   `yaml:"print_tree"`
	DumpLump  string `yaml:"dump_lump"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		WAD:   "DOOM1.WAD",
		Level: "E1M1",
	}
}

// Load reads a YAML configuration file over the defaults. An empty path
// falls back to $WADINFO_CONFIG, and to the defaults when that is unset too.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.WAD == "" {
		return errors.New("wad path is empty")
	}
	if c.Level == "" && c.DumpLump == "" {
		return errors.New("nothing to do: level and dump_lump are both empty")
	}
	return nil
}
