package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInit(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	configPath := filepath.Join(t.TempDir(), "knobkit.toml")

	t.Run("creates config file when it doesn't exist", func(t *testing.T) {
		require.NoError(t, executeCommand(rootCmd, "config", "init", "--config", configPath))

		content, err := os.ReadFile(configPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "[panel]")
		assert.Contains(t, string(content), "cutoff")
	})

	t.Run("doesn't overwrite existing config without force", func(t *testing.T) {
		viper.Reset()
		require.NoError(t, os.WriteFile(configPath, []byte("test = true\n"), 0600))

		require.NoError(t, executeCommand(rootCmd, "config", "init", "--config", configPath))

		content, err := os.ReadFile(configPath)
		require.NoError(t, err)
		assert.Equal(t, "test = true\n", string(content))
	})

	t.Run("overwrites with force flag", func(t *testing.T) {
		viper.Reset()

		require.NoError(t, executeCommand(rootCmd, "config", "init", "--force", "--config", configPath))

		content, err := os.ReadFile(configPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "[panel]")
	})
}

func TestConfigShow(t *testing.T) {
	_, cfgPath := setupConfig(t)

	out, err := executeCommandOutput(rootCmd, "config", "show", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "cutoff")
	assert.Contains(t, out, "20..20000 log")
}

func TestConfigValidation(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	configPath := filepath.Join(t.TempDir(), "knobkit.toml")
	invalidTOML := `
[panel
width = 640
`
	require.NoError(t, os.WriteFile(configPath, []byte(invalidTOML), 0600))

	err := executeCommand(rootCmd, "config", "show", "--config", configPath)
	assert.ErrorContains(t, err, "failed to initialize config")
}
