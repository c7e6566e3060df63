package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 15, cfg.Search.MaxConcurrency)
	assert.Equal(t, 100, cfg.Search.MaxResults)
	assert.Equal(t, 100, cfg.Generator.BatchSize)
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[search]
log_dir = "/var/log/app"
max_concurrency = 4

[logging]
level = "debug"
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/log/app", cfg.Search.LogDir)
	assert.Equal(t, 4, cfg.Search.MaxConcurrency)
	assert.Equal(t, 100, cfg.Search.MaxResults, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[search\n"), 0o644))

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.LogDir = ""
	cfg.Search.MaxConcurrency = 0
	cfg.Search.MaxResults = -1
	cfg.Generator.BatchSize = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "log_dir")
	assert.ErrorContains(t, err, "max_concurrency")
	assert.ErrorContains(t, err, "max_results")
	assert.ErrorContains(t, err, "batch_size")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.Search.LogDir = "/tmp/logs"

	require.NoError(t, SaveFile(path, cfg))
	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigPathHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "mseek", "config.toml"), GetConfigPath())
}

func TestSaveFileRequiresPath(t *testing.T) {
	assert.Error(t, SaveFile("", DefaultConfig()))
}

func TestApplyEnvNoColor(t *testing.T) {
	cfg := DefaultConfig()
	t.Setenv("NO_COLOR", "")
	cfg.ApplyEnv()
	assert.False(t, cfg.Display.Plain)

	t.Setenv("NO_COLOR", "1")
	cfg.ApplyEnv()
	assert.True(t, cfg.Display.Plain)
}
