package cmd

import (
	"fmt"
	"os"

	"github.com/bnema/knobkit/internal/config"
	"github.com/bnema/knobkit/internal/logger"
	"github.com/bnema/knobkit/internal/trace"
	"github.com/bnema/knobkit/internal/ui"
	"github.com/bnema/knobkit/internal/widget"
	"github.com/spf13/cobra"
)

var (
	demoRecord     string
	demoPreset     string
	demoSavePreset string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the widget panel in this terminal",
	Long: `Run the configured widget panel in this terminal. Click, drag and
scroll the widgets with the mouse. Shift+click restores a widget's default,
Ctrl+drag moves knobs and sliders in fine steps.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringVarP(&demoRecord, "record", "r", "", "Record pointer events to this trace file")
	demoCmd.Flags().StringVarP(&demoPreset, "preset", "p", "", "Start from a saved preset")
	demoCmd.Flags().StringVarP(&demoSavePreset, "save-preset", "s", "", "Save the final values as a preset on exit")

	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	ctx := cmd.Context()

	panel, err := widget.FromConfig(cfg)
	if err != nil {
		return err
	}

	if demoPreset != "" {
		values, err := loadPreset(ctx, demoPreset)
		if err != nil {
			return err
		}
		if err := panel.Apply(values); err != nil {
			// Presets outlive layout changes; apply what still matches
			logger.Warn("Preset does not match the panel", "error", err)
		}
	}

	var opts []ui.Option
	if demoRecord != "" {
		f, err := os.Create(demoRecord)
		if err != nil {
			return fmt.Errorf("failed to create trace file: %w", err)
		}
		defer f.Close()

		w, err := trace.NewWriter(f)
		if err != nil {
			return err
		}
		opts = append(opts, ui.WithRecorder(w))
	}

	restoreLogs, err := redirectLogs(cfg.Logging.File)
	if err != nil {
		return err
	}

	model := ui.NewModel(panel, cfg.Panel, opts...)
	runner := ui.NewProgramRunner(ui.DefaultProgramConfig())
	runErr := runner.Run(ctx, model)
	restoreLogs()
	if runErr != nil {
		return fmt.Errorf("panel exited: %w", runErr)
	}

	if demoSavePreset != "" {
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(store)

		p, err := store.Save(ctx, demoSavePreset, panel.Values())
		if err != nil {
			return err
		}
		logger.Infof("Saved preset '%s'", p.Name)
	}

	return printValues(cmd.OutOrStdout(), panel.Values())
}
