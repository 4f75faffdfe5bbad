package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar is the line under the panel: title on the left, last change on
// the right.
type StatusBar struct {
	Width     int
	Title     string
	Status    string
	IsError   bool
	Recording bool
}

// NewStatusBar creates a new status bar
func NewStatusBar(title string) *StatusBar {
	return &StatusBar{Title: title}
}

// SetStatus shows an informational message
func (s *StatusBar) SetStatus(status string) {
	s.Status = status
	s.IsError = false
}

// SetError shows an error message
func (s *StatusBar) SetError(status string) {
	s.Status = status
	s.IsError = true
}

// View renders the status bar
func (s *StatusBar) View() string {
	title := TitleStyle.Render(s.Title)

	style := InfoStyle
	if s.IsError {
		style = ErrorStyle
	}
	status := style.Render(s.Status)
	if s.Recording {
		status = RecordingIndicator + " " + TextStyle.Render("REC") + "  " + status
	}

	gap := s.Width - lipgloss.Width(title) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + status
}
