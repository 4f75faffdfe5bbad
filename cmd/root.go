package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/bnema/knobkit/internal/config"
	"github.com/bnema/knobkit/internal/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "knobkit",
		Short: "knobkit - pointer handlers for plugin widgets",
		Long: `knobkit turns raw pointer input into bounded widget values.
It hosts a panel of sliders, knobs, spinners, switches, radio groups and
buttons in the terminal or over SSH, records and replays pointer traces,
and stores widget values as named presets.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is $HOME/.config/knobkit/knobkit.toml)")
}

func initConfig(cmd *cobra.Command, args []string) error {
	config.SetConfigPath(cfgFile)
	if err := config.Init(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	if level := config.Get().Logging.LogLevel; level != "" {
		logger.SetLevel(level)
	}
	return nil
}

// redirectLogs points the logger at the configured log file while a TUI owns
// the terminal. Without a file, logs are dropped until the returned restore
// func runs.
func redirectLogs(path string) (func(), error) {
	restore := func() { logger.SetOutput(os.Stderr) }

	if path == "" {
		logger.SetOutput(io.Discard)
		return restore, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(f)

	return func() {
		restore()
		if err := f.Close(); err != nil {
			logger.Warnf("Failed to close log file: %v", err)
		}
	}, nil
}

// printValues writes widget values as a name-sorted table
func printValues(out io.Writer, values map[string]float64) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "WIDGET\tVALUE"); err != nil {
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s\t%g\n", name, values[name]); err != nil {
			return err
		}
	}
	return w.Flush()
}
