package ui

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/knobkit/internal/logger"
)

// ProgramConfig holds configuration for running a UI program
type ProgramConfig struct {
	ShutdownConfig ShutdownConfig
	AltScreen      bool
	Input          io.Reader // Defaults to stdin
	Output         io.Writer // Defaults to stdout
}

// DefaultProgramConfig returns default configuration
func DefaultProgramConfig() ProgramConfig {
	return ProgramConfig{
		ShutdownConfig: DefaultShutdownConfig(),
		AltScreen:      true,
	}
}

// UIModel interface that all UI models must implement
type UIModel interface {
	tea.Model
	// SetBase allows the model to store reference to base UI
	SetBase(base *BaseUI)
	// OnShutdown is called during shutdown
	OnShutdown() error
}

// ProgramRunner manages the lifecycle of a Bubble Tea program with proper shutdown
type ProgramRunner struct {
	config  ProgramConfig
	base    *BaseUI
	program *tea.Program
}

// NewProgramRunner creates a new program runner
func NewProgramRunner(config ProgramConfig) *ProgramRunner {
	return &ProgramRunner{
		config: config,
	}
}

// ProgramOptions returns the options every panel program runs with. Mouse
// reporting includes motion without a pressed button so widgets can track
// hover.
func ProgramOptions(altScreen bool) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithMouseAllMotion()}
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	return opts
}

// Run starts the UI program with the given model
func (r *ProgramRunner) Run(ctx context.Context, model UIModel) error {
	r.base = NewBaseUI(ctx, r.config.ShutdownConfig)
	r.base.HandleSignals()
	r.base.SetOnShutdown(func() error {
		logger.Debug("Starting graceful shutdown...")
		if err := model.OnShutdown(); err != nil {
			logger.Error("Model shutdown error", "error", err)
			return err
		}
		logger.Debug("Graceful shutdown complete")
		return nil
	})

	model.SetBase(r.base)

	opts := ProgramOptions(r.config.AltScreen)
	opts = append(opts, tea.WithContext(r.base.Context()))
	if r.config.Input != nil {
		opts = append(opts, tea.WithInput(r.config.Input))
	}
	if r.config.Output != nil {
		opts = append(opts, tea.WithOutput(r.config.Output))
	}

	r.program = tea.NewProgram(model, opts...)

	// Run in a goroutine to handle context cancellation
	errCh := make(chan error, 1)
	go func() {
		_, err := r.program.Run()
		errCh <- err
	}()

	// Wait for either program completion or context cancellation
	var runErr error
	select {
	case err := <-errCh:
		runErr = err
	case <-ctx.Done():
		r.program.Quit()

		select {
		case err := <-errCh:
			runErr = err
		case <-time.After(2 * time.Second):
			// Force kill the program if it's not responding
			r.program.Kill()
			<-errCh
		}
	}
	if errors.Is(runErr, tea.ErrProgramKilled) && r.base.IsShuttingDown() {
		// Killed through our own context on shutdown
		runErr = nil
	}

	// Now that Bubble Tea has exited, run the shutdown callback
	if r.base.onShutdown != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), r.config.ShutdownConfig.GracePeriod)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- r.base.onShutdown()
		}()

		select {
		case err := <-done:
			if err != nil {
				logger.Error("Shutdown callback error", "error", err)
			}
		case <-shutdownCtx.Done():
			logger.Warn("Shutdown callback timed out")
		}
	}

	return runErr
}
