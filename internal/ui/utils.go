package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// IsInteractive checks if stdin and stdout are both terminals.
// This is useful to avoid prompting when piping output or running in non-interactive environments.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the stdout width, or fallback when it is not a terminal.
func TerminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// Panel represents a styled panel with optional title and content.
type Panel struct {
	Title       string
	Content     string
	BorderColor lipgloss.Color
	Width       int
}

// NewPanel creates a new panel with default styling.
func NewPanel(title, content string) *Panel {
	return &Panel{
		Title:       title,
		Content:     content,
		BorderColor: ColorSecondary,
	}
}

// WithBorderColor sets the border color and returns the panel.
func (p *Panel) WithBorderColor(color lipgloss.Color) *Panel {
	p.BorderColor = color
	return p
}

// WithWidth sets the panel width and returns the panel.
func (p *Panel) WithWidth(width int) *Panel {
	p.Width = width
	return p
}

// Render returns the styled panel as a string.
func (p *Panel) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.BorderColor).
		Padding(0, 1)

	content := p.Content
	if p.Width > 0 {
		style = style.Width(p.Width)
		content = WrapText(content, p.Width-2)
	}
	if p.Title != "" {
		content = StyleSelectTitle.Render(p.Title) + "\n" + content
	}
	return style.Render(content)
}

// RenderAdvicePanel renders advice text in the cyan advice panel.
func RenderAdvicePanel(advice string, width int) string {
	return NewPanel("💡 Advice", advice).WithBorderColor(ColorCyan).WithWidth(width).Render()
}

// WrapText wraps text to the specified width, counting runes.
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			result.WriteString("\n")
		}
		if lipgloss.Width(line) <= width {
			result.WriteString(line)
			continue
		}

		current := ""
		for _, word := range strings.Fields(line) {
			switch {
			case current == "":
				current = word
			case lipgloss.Width(current)+1+lipgloss.Width(word) <= width:
				current += " " + word
			default:
				result.WriteString(current + "\n")
				current = word
			}
		}
		result.WriteString(current)
	}
	return result.String()
}
