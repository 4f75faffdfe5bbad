package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/bnema/knobkit/internal/event"
	"github.com/bnema/knobkit/internal/geom"
	"github.com/bnema/knobkit/internal/preset"
	"github.com/bnema/knobkit/internal/trace"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupConfig writes a config file that keeps presets inside a temp dir
func setupConfig(t *testing.T) (dir, path string) {
	t.Helper()

	viper.Reset()
	dir = t.TempDir()
	path = filepath.Join(dir, "knobkit.toml")
	content := fmt.Sprintf("[presets]\npath = %q\n", filepath.Join(dir, "presets.db"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	t.Cleanup(func() {
		viper.Reset()
		presetFromTrace = ""
		replayPreset = ""
		rootCmd.SetOut(nil)
	})
	return dir, path
}

// writeTrace records a click on the bypass switch
func writeTrace(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "click.trace")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w, err := trace.NewWriter(f)
	require.NoError(t, err)

	pos := geom.Point{X: 20, Y: 150}
	require.NoError(t, w.Write(trace.FromMouse(event.Mouse{Button: event.ButtonLeft, Press: true, Pos: pos})))
	require.NoError(t, w.Write(trace.FromMouse(event.Mouse{Base: event.Base{Time: 80}, Button: event.ButtonLeft, Pos: pos})))
	require.NoError(t, w.Flush())
	return path
}

func TestReplayCommand(t *testing.T) {
	dir, cfgPath := setupConfig(t)
	tracePath := writeTrace(t, dir)

	out, err := executeCommandOutput(rootCmd, "replay", tracePath, "--config", cfgPath)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`(?m)^bypass\s+1$`), out)
	assert.Regexp(t, regexp.MustCompile(`(?m)^voices\s+8$`), out)
	assert.Regexp(t, regexp.MustCompile(`(?m)^hold\s+0$`), out)
}

func TestReplayCommandErrors(t *testing.T) {
	dir, cfgPath := setupConfig(t)

	t.Run("missing file", func(t *testing.T) {
		err := executeCommand(rootCmd, "replay", filepath.Join(dir, "nope.trace"), "--config", cfgPath)
		assert.Error(t, err)
	})

	t.Run("not a trace", func(t *testing.T) {
		path := filepath.Join(dir, "junk")
		require.NoError(t, os.WriteFile(path, []byte("definitely not a trace"), 0600))

		err := executeCommand(rootCmd, "replay", path, "--config", cfgPath)
		assert.ErrorIs(t, err, trace.ErrBadMagic)
	})
}

func TestPresetCommands(t *testing.T) {
	dir, cfgPath := setupConfig(t)
	tracePath := writeTrace(t, dir)

	err := executeCommand(rootCmd, "preset", "save", "clicked", "--trace", tracePath, "--config", cfgPath)
	require.NoError(t, err)
	presetFromTrace = ""

	err = executeCommand(rootCmd, "preset", "save", "plain", "--config", cfgPath)
	require.NoError(t, err)

	out, err := executeCommandOutput(rootCmd, "preset", "list", "--config", cfgPath)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`(?m)^clicked\s`), out)
	assert.Regexp(t, regexp.MustCompile(`(?m)^plain\s`), out)

	out, err = executeCommandOutput(rootCmd, "preset", "show", "clicked", "--config", cfgPath)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`(?m)^bypass\s+1$`), out)

	out, err = executeCommandOutput(rootCmd, "preset", "show", "plain", "--config", cfgPath)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`(?m)^bypass\s+0$`), out)

	t.Run("replay from preset", func(t *testing.T) {
		// Clicking the switch again turns it back off
		out, err := executeCommandOutput(rootCmd, "replay", tracePath, "--preset", "clicked", "--config", cfgPath)
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`(?m)^bypass\s+0$`), out)
		replayPreset = ""
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, executeCommand(rootCmd, "preset", "delete", "plain", "--config", cfgPath))

		err := executeCommand(rootCmd, "preset", "show", "plain", "--config", cfgPath)
		assert.ErrorIs(t, err, preset.ErrNotFound)

		err = executeCommand(rootCmd, "preset", "delete", "plain", "--config", cfgPath)
		assert.ErrorIs(t, err, preset.ErrNotFound)
	})

	t.Run("single preset is selected without prompting", func(t *testing.T) {
		out, err := executeCommandOutput(rootCmd, "preset", "show", "--config", cfgPath)
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`(?m)^bypass\s+1$`), out)
	})
}

// Helper function to execute cobra commands in tests
func executeCommand(root *cobra.Command, args ...string) error {
	root.SetArgs(args)
	return root.Execute()
}

func executeCommandOutput(root *cobra.Command, args ...string) (string, error) {
	var buf bytes.Buffer
	root.SetOut(&buf)
	defer root.SetOut(nil)

	err := executeCommand(root, args...)
	return buf.String(), err
}
