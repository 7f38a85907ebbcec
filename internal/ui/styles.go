package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/josephgoksu/FocusFlow/internal/task"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("99")  // Violet
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")  // Cyan for advice

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	// Completed rows
	StyleDone = lipgloss.NewStyle().Foreground(ColorSecondary).Strikethrough(true)

	// Input box, idle and focused
	StyleInputBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)

	StyleInputBoxFocused = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	// Advice panel
	StyleAdviceBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorCyan).
			Padding(0, 1)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	// Selection lists
	StyleSelectTitle  = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleSelectNormal = lipgloss.NewStyle().Foreground(ColorText)
	StyleSelectActive = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleSelectDim    = lipgloss.NewStyle().Foreground(ColorSecondary)
)

// PriorityStyle colors a priority label.
func PriorityStyle(p task.Priority) lipgloss.Style {
	switch p {
	case task.PriorityHigh:
		return StyleError
	case task.PriorityLow:
		return StyleSubtle
	default:
		return StyleWarning
	}
}

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}
