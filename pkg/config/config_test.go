package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "", config.DefaultFile)
	assert.True(t, config.CreateMissing)
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "mconfig_config_test")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		configPath := filepath.Join(tmpDir, "config.yaml")
		content := "default_file: /var/lib/app/settings.mconf\ncreate_missing: false\n"
		require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))

		config, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, "/var/lib/app/settings.mconf", config.DefaultFile)
		assert.False(t, config.CreateMissing)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/config.yaml")
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "mconfig_config_test")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		configPath := filepath.Join(tmpDir, "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("{not yaml"), 0600))

		_, err = LoadConfig(configPath)
		assert.Error(t, err)
	})
}

func TestSaveConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "mconfig_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "nested", "config.yaml")
	saved := &Config{DefaultFile: "store.mconf", CreateMissing: true}
	require.NoError(t, SaveConfig(saved, configPath))

	// Written with restrictive permissions.
	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestConfigExists(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "mconfig_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	assert.False(t, ConfigExists(configPath))

	require.NoError(t, os.WriteFile(configPath, []byte("create_missing: true\n"), 0600))
	assert.True(t, ConfigExists(configPath))
}
