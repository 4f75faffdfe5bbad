package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/knobkit/internal/config"
	"github.com/bnema/knobkit/internal/logger"
	"github.com/bnema/knobkit/internal/trace"
	"github.com/bnema/knobkit/internal/widget"
)

// maxShownLogs is how many recent changes the expanded help lists.
const maxShownLogs = 5

// Model hosts a widget panel in the terminal. The panel is drawn from the
// top-left corner so that terminal mouse cells map straight onto it.
type Model struct {
	base     *BaseUI
	panel    *widget.Panel
	grid     grid
	pointer  *pointer
	keys     keyMap
	help     help.Model
	status   *StatusBar
	recorder *trace.Writer
	initial  map[string]float64
	onChange widget.ChangeFunc

	view string // Cached panel drawing
}

// Option configures a Model
type Option func(*Model)

// WithRecorder records every pointer event the panel receives.
func WithRecorder(w *trace.Writer) Option {
	return func(m *Model) {
		m.recorder = w
		m.status.Recording = true
	}
}

// WithOnChange forwards value changes after the model has handled them.
func WithOnChange(fn widget.ChangeFunc) Option {
	return func(m *Model) {
		m.onChange = fn
	}
}

// NewModel creates a model for p. The current panel values become the
// target of the reset key.
func NewModel(p *widget.Panel, cfg config.PanelConfig, opts ...Option) *Model {
	g := grid{cellW: cfg.CellWidth, cellH: cfg.CellHeight}
	m := &Model{
		base:    NewBaseUI(context.Background(), DefaultShutdownConfig()),
		panel:   p,
		grid:    g,
		pointer: newPointer(g),
		keys:    defaultKeys,
		help:    help.New(),
		status:  NewStatusBar(p.Title()),
		initial: p.Values(),
	}
	for _, opt := range opts {
		opt(m)
	}
	p.SetOnChange(m.valueChanged)
	return m
}

// SetBase implements UIModel
func (m *Model) SetBase(base *BaseUI) {
	m.base = base
}

// OnShutdown flushes the recorder, if any
func (m *Model) OnShutdown() error {
	if m.recorder == nil {
		return nil
	}
	if err := m.recorder.Flush(); err != nil {
		return fmt.Errorf("failed to flush trace: %w", err)
	}
	logger.Info("Trace recorded", "events", m.recorder.Count())
	return nil
}

// Panel returns the hosted panel
func (m *Model) Panel() *widget.Panel {
	return m.panel
}

func (m *Model) valueChanged(name string, value float64) {
	msg := fmt.Sprintf("%s = %s", name, formatValue(value))
	m.status.SetStatus(msg)
	m.base.AddLogEntry("info", msg)

	if m.onChange != nil {
		m.onChange(name, value)
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.panel.Title())
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd := m.base.BaseUpdate(msg); cmd != nil {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Reset):
			if err := m.panel.Apply(m.initial); err != nil {
				m.status.SetError(err.Error())
			} else {
				m.status.SetStatus("reset")
			}
		}

	case tea.MouseMsg:
		if rec, ok := m.pointer.translate(msg); ok {
			m.dispatch(rec)
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.status.Width = msg.Width
	}

	return m, nil
}

func (m *Model) dispatch(rec trace.Record) {
	if m.recorder != nil {
		if err := m.recorder.Write(rec); err != nil {
			logger.Warn("Failed to record event, recording stopped", "error", err)
			m.recorder = nil
			m.status.Recording = false
		}
	}

	switch rec.Kind {
	case trace.KindMouse:
		m.panel.DispatchMouse(rec.Mouse())
	case trace.KindMotion:
		m.panel.DispatchMotion(rec.Motion())
	case trace.KindScroll:
		m.panel.DispatchScroll(rec.Scroll())
	}
}

// View implements tea.Model
func (m *Model) View() string {
	if m.panel.Dirty() || m.view == "" {
		m.view = renderPanel(m.panel, m.grid).String()
	}

	cols, _ := m.grid.size(m.panel.Size())

	var b strings.Builder
	b.WriteString(m.view)
	b.WriteString("\n")
	b.WriteString(CreateSeparator(cols, "─"))
	b.WriteString("\n")
	b.WriteString(m.status.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	if m.help.ShowAll {
		logs := m.base.GetLogs()
		if len(logs) > maxShownLogs {
			logs = logs[len(logs)-maxShownLogs:]
		}
		for _, entry := range logs {
			b.WriteString("\n")
			b.WriteString(m.base.FormatLogEntry(entry))
		}
	}
	return b.String()
}
