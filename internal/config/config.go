// Package config resolves registry settings from defaults, an optional
// YAML file, and the environment. Command-line flags are applied last by
// the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvDB       = "REGISTRY_DB"
	EnvSeedFile = "REGISTRY_SEED_FILE"
)

// DefaultDB is the database path used when nothing else is configured.
const DefaultDB = "./registry.db"

// Config holds registry settings.
type Config struct {
	// DB is the SQLite database path.
	DB string `yaml:"db"`

	// Seed loads demonstration records on init. A database that already
	// holds records is left alone unless --seed is given explicitly.
	Seed bool `yaml:"seed"`

	// SeedFile replaces the embedded seed when set.
	SeedFile string `yaml:"seed_file"`

	// Format is the CLI output format (text|json).
	Format string `yaml:"format"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DB:     DefaultDB,
		Seed:   true,
		Format: "text",
	}
}

// Load returns the defaults overlaid with the YAML file at path (if path
// is non-empty) and then with the environment.
//
// A named file that does not exist is an error; an empty path skips the
// file entirely.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.mergeEnv(os.LookupEnv)
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config file %s: not found", path)
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	// Decoding onto c keeps defaults for keys the file omits.
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvDB); ok && v != "" {
		c.DB = v
	}
	if v, ok := lookup(EnvSeedFile); ok && v != "" {
		c.SeedFile = v
	}
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if c.DB == "" {
		return errors.New("config: db path is empty")
	}
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("config: invalid format %q: must be text or json", c.Format)
	}
	return nil
}
