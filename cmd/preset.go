package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/bnema/knobkit/internal/config"
	"github.com/bnema/knobkit/internal/logger"
	"github.com/bnema/knobkit/internal/preset"
	"github.com/bnema/knobkit/internal/trace"
	"github.com/bnema/knobkit/internal/widget"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var presetFromTrace string

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage saved widget presets",
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore(store)

		presets, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(presets) == 0 {
			logger.Info("No presets saved")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		if _, err := fmt.Fprintln(w, "NAME\tUPDATED\tID"); err != nil {
			return err
		}
		for _, p := range presets {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.UpdatedAt.Local().Format(time.DateTime), p.ID); err != nil {
				return err
			}
		}
		return w.Flush()
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show the values stored in a preset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore(store)

		name, err := presetName(cmd.Context(), store, args, "Select Preset")
		if err != nil {
			return err
		}

		p, err := store.Load(cmd.Context(), name)
		if err != nil {
			return err
		}
		return printValues(cmd.OutOrStdout(), p.Values)
	},
}

var presetSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the configured widget values as a preset",
	Long: `Save the initial widget values from the configuration as a preset.
With --trace, the recorded events are replayed first and the resulting
values are saved instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		panel, err := widget.FromConfig(config.Get())
		if err != nil {
			return err
		}

		if presetFromTrace != "" {
			n, err := replayFile(presetFromTrace, panel)
			if err != nil {
				return err
			}
			logger.Debugf("Replayed %d events from %s", n, presetFromTrace)
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore(store)

		p, err := store.Save(cmd.Context(), args[0], panel.Values())
		if err != nil {
			return err
		}
		logger.Infof("Saved preset '%s' (%d values)", p.Name, len(p.Values))
		return nil
	},
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a preset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore(store)

		name, err := presetName(cmd.Context(), store, args, "Delete Preset")
		if err != nil {
			return err
		}

		if err := store.Delete(cmd.Context(), name); err != nil {
			return err
		}
		logger.Infof("Deleted preset '%s'", name)
		return nil
	},
}

func init() {
	presetSaveCmd.Flags().StringVarP(&presetFromTrace, "trace", "t", "", "Replay this trace before saving")

	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetShowCmd)
	presetCmd.AddCommand(presetSaveCmd)
	presetCmd.AddCommand(presetDeleteCmd)
	rootCmd.AddCommand(presetCmd)
}

func openStore(ctx context.Context) (*preset.Store, error) {
	store, err := preset.Open(ctx, config.Get().Presets.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preset store: %w", err)
	}
	return store, nil
}

func closeStore(store *preset.Store) {
	if err := store.Close(); err != nil {
		logger.Warnf("Failed to close preset store: %v", err)
	}
}

// loadPreset reads a preset's values from the configured store
func loadPreset(ctx context.Context, name string) (map[string]float64, error) {
	store, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer closeStore(store)

	p, err := store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return p.Values, nil
}

// presetName takes the name from args or asks for one
func presetName(ctx context.Context, store *preset.Store, args []string, title string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	names, err := store.Names(ctx)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no presets saved")
	}

	// If only one preset, use it automatically
	if len(names) == 1 {
		logger.Infof("Auto-selected preset: %s", names[0])
		return names[0], nil
	}

	options := make([]huh.Option[string], len(names))
	for i, name := range names {
		options[i] = huh.NewOption(name, name)
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Description("Choose a saved preset").
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("preset selection cancelled: %w", err)
	}

	return selected, nil
}

// replayFile replays a trace file into panel
func replayFile(path string, panel *widget.Panel) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()

	r, err := trace.NewReader(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	n, err := trace.Replay(r, panel)
	if err != nil {
		return n, fmt.Errorf("replay stopped after %d events: %w", n, err)
	}
	return n, nil
}
