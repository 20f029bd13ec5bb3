package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvDir, EnvVaultFile, EnvLogLevel} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestLoadImplicitFileInDir(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv(EnvDir, dir)

	content := "vault_file: work.csv\nlog_level: debug\nkeyring: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, "work.csv", cfg.VaultFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Keyring)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vault_file: a.csv\nlog_level: info\n"), 0600))

	t.Setenv(EnvVaultFile, "b.csv")
	t.Setenv(EnvLogLevel, "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "b.csv", cfg.VaultFile)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.True(t, cfg.Keyring)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("colour: blue\n"), 0600))
	_, err = Load(unknown)
	assert.Error(t, err)

	badLevel := filepath.Join(dir, "level.yaml")
	require.NoError(t, os.WriteFile(badLevel, []byte("log_level: loud\n"), 0600))
	_, err = Load(badLevel)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0600))
	cfg, err := Load(empty)
	require.NoError(t, err)
	assert.Equal(t, "password.csv", cfg.VaultFile)
}
