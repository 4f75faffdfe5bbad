// Package ui renders a widget panel in the terminal and feeds it mouse input
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - consistent across the application
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("39")  // Bright blue
	ColorSecondary = lipgloss.Color("205") // Pink/magenta
	ColorSuccess   = lipgloss.Color("82")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorInfo      = lipgloss.Color("86")  // Cyan

	// Neutral colors
	ColorText      = lipgloss.Color("252") // Light gray
	ColorSubtle    = lipgloss.Color("241") // Medium gray
	ColorMuted     = lipgloss.Color("238") // Dark gray
	ColorHighlight = lipgloss.Color("255") // White
)

// Base styles - building blocks for other styles
var (
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorMuted).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)
)

// Widget styles, indexed by the canvas
var (
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	TrackStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	FillStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	ThumbStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight)

	HoverStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	ActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	PressedStyle = lipgloss.NewStyle().
			Reverse(true).
			Foreground(ColorWarning)

	RecordingIndicator = lipgloss.NewStyle().
				Foreground(ColorError).
				Render("●")
)

// CreateSeparator creates a horizontal line separator
func CreateSeparator(width int, char string) string {
	if width <= 0 {
		width = 50 // Default width
	}
	if char == "" {
		char = "─" // Default to horizontal line
	}

	return SubtleStyle.Render(strings.Repeat(char, width))
}
