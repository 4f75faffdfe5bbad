package cmd

import (
	"github.com/bnema/knobkit/internal/config"
	"github.com/bnema/knobkit/internal/logger"
	"github.com/bnema/knobkit/internal/widget"
	"github.com/spf13/cobra"
)

var replayPreset string

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Replay a recorded trace against the panel",
	Long: `Replay the pointer events in a trace recorded with 'knobkit demo --record'
against a fresh panel built from the configuration, without a terminal UI,
and print the resulting widget values.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVarP(&replayPreset, "preset", "p", "", "Start from a saved preset")

	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	panel, err := widget.FromConfig(config.Get())
	if err != nil {
		return err
	}

	if replayPreset != "" {
		values, err := loadPreset(cmd.Context(), replayPreset)
		if err != nil {
			return err
		}
		if err := panel.Apply(values); err != nil {
			logger.Warn("Preset does not match the panel", "error", err)
		}
	}

	changes := 0
	panel.SetOnChange(func(name string, value float64) {
		changes++
		logger.Debug("Value changed", "widget", name, "value", value)
	})

	n, err := replayFile(args[0], panel)
	if err != nil {
		return err
	}
	logger.Infof("Replayed %d events, %d value changes", n, changes)

	return printValues(cmd.OutOrStdout(), panel.Values())
}
