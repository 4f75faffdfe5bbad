// Package config handles configuration management using Viper
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Widget kinds understood by the panel builder.
const (
	KindSlider  = "slider"
	KindKnob    = "knob"
	KindSpinner = "spinner"
	KindSwitch  = "switch"
	KindRadio   = "radio"
	KindButton  = "button"
)

// Config represents the application configuration
type Config struct {
	// Panel geometry and the widgets laid out on it
	Panel   PanelConfig    `mapstructure:"panel"`
	Widgets []WidgetConfig `mapstructure:"widgets"`

	// SSH front door for the panel
	Serve ServeConfig `mapstructure:"serve"`

	// Preset storage
	Presets PresetConfig `mapstructure:"presets"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// PanelConfig describes the pixel space the widgets live in and how it maps
// onto terminal cells.
type PanelConfig struct {
	Title      string  `mapstructure:"title"`
	Width      float64 `mapstructure:"width"`
	Height     float64 `mapstructure:"height"`
	CellWidth  float64 `mapstructure:"cell_width"`  // pixels per terminal column
	CellHeight float64 `mapstructure:"cell_height"` // pixels per terminal row
}

// WidgetConfig describes one widget. Coordinates are panel pixels.
type WidgetConfig struct {
	Name string  `mapstructure:"name"`
	Kind string  `mapstructure:"kind"`
	X    float64 `mapstructure:"x"`
	Y    float64 `mapstructure:"y"`
	W    float64 `mapstructure:"w"`
	H    float64 `mapstructure:"h"`

	// Range; both zero keeps the handler's default range
	Min  float64 `mapstructure:"min"`
	Max  float64 `mapstructure:"max"`
	Step float64 `mapstructure:"step"`

	Default *float64 `mapstructure:"default"` // Shift+click target
	Value   *float64 `mapstructure:"value"`   // Initial value

	LogScale    bool   `mapstructure:"log_scale"`
	Inverted    bool   `mapstructure:"inverted"`
	Orientation string `mapstructure:"orientation"` // "horizontal" or "vertical"
	Checkable   bool   `mapstructure:"checkable"`

	Options []OptionConfig `mapstructure:"options"` // Radio choices
}

// OptionConfig is one radio choice
type OptionConfig struct {
	Name  string  `mapstructure:"name"`
	Value float64 `mapstructure:"value"`
}

// ServeConfig contains SSH server settings
type ServeConfig struct {
	Address            string `mapstructure:"address"`
	HostKeyPath        string `mapstructure:"host_key_path"`
	AuthorizedKeysPath string `mapstructure:"authorized_keys_path"`
	AllowAll           bool   `mapstructure:"allow_all"` // Accept any public key
}

// PresetConfig locates the preset database
type PresetConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override LOG_LEVEL env var
	File     string `mapstructure:"file"`      // Log file used while a TUI owns the terminal
}

func f(v float64) *float64 { return &v }

var (
	// DefaultConfig provides a small synth-style demo panel
	DefaultConfig = Config{
		Panel: PanelConfig{
			Title:      "knobkit",
			Width:      640,
			Height:     320,
			CellWidth:  8,
			CellHeight: 16,
		},
		Widgets: []WidgetConfig{
			{Name: "cutoff", Kind: KindSlider, X: 16, Y: 32, W: 288, H: 16, Min: 20, Max: 20000, LogScale: true, Default: f(1000), Value: f(1000)},
			{Name: "resonance", Kind: KindKnob, X: 320, Y: 32, W: 64, H: 32, Min: 0, Max: 1, Default: f(0.5)},
			{Name: "gain", Kind: KindSlider, X: 440, Y: 16, W: 16, H: 128, Min: -60, Max: 6, Orientation: "vertical", Inverted: true, Default: f(0), Value: f(0)},
			{Name: "voices", Kind: KindSpinner, X: 16, Y: 96, W: 160, H: 16, Min: 1, Max: 16, Step: 1, Value: f(8)},
			{Name: "waveform", Kind: KindRadio, X: 520, Y: 16, W: 112, H: 64, Options: []OptionConfig{
				{Name: "sine", Value: 0}, {Name: "saw", Value: 1}, {Name: "square", Value: 2}, {Name: "noise", Value: 3},
			}},
			{Name: "bypass", Kind: KindSwitch, X: 16, Y: 144, W: 64, H: 16},
			{Name: "hold", Kind: KindButton, X: 96, Y: 144, W: 64, H: 16, Checkable: true},
		},
		Serve: ServeConfig{
			Address:            "localhost:23234",
			HostKeyPath:        filepath.Join(userConfigDir(), "ssh_host_ed25519"),
			AuthorizedKeysPath: filepath.Join(userConfigDir(), "authorized_keys"),
			AllowAll:           false,
		},
		Presets: PresetConfig{
			Path: filepath.Join(userDataDir(), "presets.db"),
		},
		Logging: LoggingConfig{
			LogLevel: "", // Empty means use LOG_LEVEL env var
			File:     "",
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("knobkit")
	viper.SetConfigType("toml")

	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		// Add config paths in order of precedence
		viper.AddConfigPath(".")
		viper.AddConfigPath(userConfigDir())
		viper.AddConfigPath("/etc/knobkit")
	}

	viper.SetDefault("panel.title", DefaultConfig.Panel.Title)
	viper.SetDefault("panel.width", DefaultConfig.Panel.Width)
	viper.SetDefault("panel.height", DefaultConfig.Panel.Height)
	viper.SetDefault("panel.cell_width", DefaultConfig.Panel.CellWidth)
	viper.SetDefault("panel.cell_height", DefaultConfig.Panel.CellHeight)

	viper.SetDefault("widgets", widgetsAsMaps(DefaultConfig.Widgets))

	viper.SetDefault("serve.address", DefaultConfig.Serve.Address)
	viper.SetDefault("serve.host_key_path", DefaultConfig.Serve.HostKeyPath)
	viper.SetDefault("serve.authorized_keys_path", DefaultConfig.Serve.AuthorizedKeysPath)
	viper.SetDefault("serve.allow_all", DefaultConfig.Serve.AllowAll)

	viper.SetDefault("presets.path", DefaultConfig.Presets.Path)

	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)
	viper.SetDefault("logging.file", DefaultConfig.Logging.File)

	viper.SetEnvPrefix("KNOBKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}

	cfg = c
	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// Validate checks the panel geometry and widget list for mistakes that the
// widget builder cannot recover from.
func (c *Config) Validate() error {
	if c.Panel.Width <= 0 || c.Panel.Height <= 0 {
		return fmt.Errorf("panel size must be positive, got %gx%g", c.Panel.Width, c.Panel.Height)
	}
	if c.Panel.CellWidth <= 0 || c.Panel.CellHeight <= 0 {
		return fmt.Errorf("panel cell size must be positive, got %gx%g", c.Panel.CellWidth, c.Panel.CellHeight)
	}

	seen := make(map[string]bool, len(c.Widgets))
	for i, w := range c.Widgets {
		if w.Name == "" {
			return fmt.Errorf("widget %d has no name", i)
		}
		if seen[w.Name] {
			return fmt.Errorf("duplicate widget name %q", w.Name)
		}
		seen[w.Name] = true

		switch w.Kind {
		case KindSlider, KindKnob, KindSpinner, KindSwitch, KindRadio, KindButton:
		default:
			return fmt.Errorf("widget %q: unknown kind %q", w.Name, w.Kind)
		}
		if w.W <= 0 || w.H <= 0 {
			return fmt.Errorf("widget %q: size must be positive, got %gx%g", w.Name, w.W, w.H)
		}
		if w.Kind == KindRadio && len(w.Options) == 0 {
			return fmt.Errorf("widget %q: radio needs at least one option", w.Name)
		}
	}
	return nil
}

// widgetsAsMaps converts widgets to the keyed form written to TOML, so that
// a saved file uses the same snake_case keys it is read back with.
func widgetsAsMaps(widgets []WidgetConfig) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(widgets))
	for _, w := range widgets {
		m := map[string]interface{}{
			"name": w.Name,
			"kind": w.Kind,
			"x":    w.X,
			"y":    w.Y,
			"w":    w.W,
			"h":    w.H,
		}
		if w.Min != 0 || w.Max != 0 {
			m["min"] = w.Min
			m["max"] = w.Max
		}
		if w.Step != 0 {
			m["step"] = w.Step
		}
		if w.Default != nil {
			m["default"] = *w.Default
		}
		if w.Value != nil {
			m["value"] = *w.Value
		}
		if w.LogScale {
			m["log_scale"] = true
		}
		if w.Inverted {
			m["inverted"] = true
		}
		if w.Orientation != "" {
			m["orientation"] = w.Orientation
		}
		if w.Checkable {
			m["checkable"] = true
		}
		if len(w.Options) > 0 {
			opts := make([]map[string]interface{}, 0, len(w.Options))
			for _, o := range w.Options {
				opts = append(opts, map[string]interface{}{"name": o.Name, "value": o.Value})
			}
			m["options"] = opts
		}
		out = append(out, m)
	}
	return out
}

// Save saves the current configuration to file
func Save() error {
	configPath := GetConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		if os.IsPermission(err) && strings.Contains(configPath, "/etc/") {
			return fmt.Errorf("failed to create config directory %s: permission denied. Try running with sudo", dir)
		}
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	return filepath.Join(userConfigDir(), "knobkit.toml")
}

func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "/etc/knobkit"
	}
	return filepath.Join(home, ".config", "knobkit")
}

func userDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "knobkit")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, ".local", "share", "knobkit")
}
