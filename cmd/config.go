package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bnema/knobkit/internal/config"
	"github.com/bnema/knobkit/internal/logger"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage knobkit configuration",
	Long:  `Manage knobkit configuration including the panel layout and server settings.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		logger.Info("Current Configuration:")
		logger.Infof("Config file: %s\n", config.GetConfigPath())

		logger.Info("[Panel]")
		logger.Infof("  Title: %s", cfg.Panel.Title)
		logger.Infof("  Size: %gx%g pixels", cfg.Panel.Width, cfg.Panel.Height)
		logger.Infof("  Cell: %gx%g pixels", cfg.Panel.CellWidth, cfg.Panel.CellHeight)

		logger.Info("\n[Serve]")
		logger.Infof("  Address: %s", cfg.Serve.Address)
		logger.Infof("  SSH Host Key: %s", cfg.Serve.HostKeyPath)
		logger.Infof("  SSH Authorized Keys: %s", cfg.Serve.AuthorizedKeysPath)
		logger.Infof("  Allow All Keys: %v", cfg.Serve.AllowAll)

		logger.Info("\n[Presets]")
		logger.Infof("  Database: %s", cfg.Presets.Path)

		logger.Info("\n[Logging]")
		logger.Infof("  Level: %s", cfg.Logging.LogLevel)
		logger.Infof("  File: %s", cfg.Logging.File)

		if len(cfg.Widgets) == 0 {
			return nil
		}

		logger.Info("\n[Widgets]")
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		if _, err := fmt.Fprintln(w, "  Name\tKind\tBounds\tRange"); err != nil {
			return err
		}
		for _, wc := range cfg.Widgets {
			rng := "-"
			if wc.Min != 0 || wc.Max != 0 {
				rng = fmt.Sprintf("%g..%g", wc.Min, wc.Max)
				if wc.LogScale {
					rng += " log"
				}
			}
			if _, err := fmt.Fprintf(w, "  %s\t%s\t%g,%g %gx%g\t%s\n", wc.Name, wc.Kind, wc.X, wc.Y, wc.W, wc.H, rng); err != nil {
				return err
			}
		}
		return w.Flush()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check if config already exists
		configPath := config.GetConfigPath()
		if _, err := os.Stat(configPath); err == nil {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				logger.Infof("Configuration file already exists at: %s", configPath)
				logger.Info("Use --force to overwrite")
				return nil
			}
		}

		if err := config.Save(); err != nil {
			return err
		}

		logger.Infof("Configuration initialized at: %s", configPath)
		logger.Info("\nYou can now:")
		logger.Info("  - Edit the widget layout in the configuration file")
		logger.Info("  - Use 'knobkit demo' to try the panel")
		logger.Info("  - Use 'knobkit config show' to view current settings")

		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Force overwrite existing configuration")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
