package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "./registry.db", cfg.DB)
	assert.True(t, cfg.Seed)
	assert.Equal(t, "text", cfg.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv(EnvDB, "")
	t.Setenv(EnvSeedFile, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Setenv(EnvDB, "")
	t.Setenv(EnvSeedFile, "")
	path := writeConfig(t, "db: /tmp/x.db\nseed: false\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.DB)
	assert.False(t, cfg.Seed)
	assert.Equal(t, "text", cfg.Format, "omitted keys keep defaults")
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "db: from-file.db\nseed_file: file.cue\n")
	t.Setenv(EnvDB, "from-env.db")
	t.Setenv(EnvSeedFile, "env.cue")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.DB)
	assert.Equal(t, "env.cue", cfg.SeedFile)
}

func TestEnvWithoutFile(t *testing.T) {
	t.Setenv(EnvDB, "env.db")
	t.Setenv(EnvSeedFile, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.DB)
	assert.Empty(t, cfg.SeedFile)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "db: [unterminated\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty db", func(c *Config) { c.DB = "" }, "db path is empty"},
		{"bad format", func(c *Config) { c.Format = "xml" }, "invalid format"},
		{"json ok", func(c *Config) { c.Format = "json" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
