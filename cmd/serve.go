package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/knobkit/internal/config"
	"github.com/bnema/knobkit/internal/logger"
	"github.com/bnema/knobkit/internal/server"
	"github.com/bnema/knobkit/internal/widget"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveAddress    string
	serveAllowAll   bool
	serveMaxClients int
	servePreset     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the widget panel over SSH",
	Long: `Serve the configured widget panel over SSH. Every session gets its own
panel. Clients authenticate with a public key listed in the authorized_keys
file unless --allow-all is set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddress, "address", "a", "", "Listen address (host:port)")
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all", false, "Accept any public key")
	serveCmd.Flags().IntVarP(&serveMaxClients, "max-clients", "m", 0, "Maximum concurrent sessions (0 for no limit)")
	serveCmd.Flags().StringVarP(&servePreset, "preset", "p", "", "Start every session from a saved preset")

	// Bind flags to viper
	viper.BindPFlag("serve.address", serveCmd.Flags().Lookup("address"))
	viper.BindPFlag("serve.allow_all", serveCmd.Flags().Lookup("allow-all"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	var values map[string]float64
	if servePreset != "" {
		var err error
		if values, err = loadPreset(cmd.Context(), servePreset); err != nil {
			return err
		}
	}

	newPanel := func() (*widget.Panel, error) {
		panel, err := widget.FromConfig(cfg)
		if err != nil {
			return nil, err
		}
		if values != nil {
			if err := panel.Apply(values); err != nil {
				logger.Warn("Preset does not match the panel", "error", err)
			}
		}
		return panel, nil
	}

	srv := server.New(cfg.Serve, cfg.Panel, newPanel)
	srv.SetMaxClients(serveMaxClients)
	srv.OnClientConnected = func(addr, fingerprint string) {
		logger.Info("Client connected", "addr", addr, "key", fingerprint, "clients", srv.ClientCount())
	}
	srv.OnClientDisconnected = func(addr string) {
		logger.Info("Client disconnected", "addr", addr, "clients", srv.ClientCount())
	}
	srv.OnValueChanged = func(addr, name string, value float64) {
		logger.Debug("Value changed", "addr", addr, "widget", name, "value", value)
	}

	if cfg.Serve.AllowAll {
		logger.Warn("Accepting any public key")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info("Serving panel", "title", cfg.Panel.Title, "address", cfg.Serve.Address)

	<-ctx.Done()
	logger.Info("Shutting down...")
	srv.Stop()

	return nil
}
