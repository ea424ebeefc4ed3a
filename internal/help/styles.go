// Package help renders usage text for a parsed definition table.
package help

import "github.com/charmbracelet/lipgloss"

// Styles holds all the lipgloss styles used for usage rendering.
type Styles struct {
	// Header is the style for section headers (bold).
	Header lipgloss.Style

	// Flag is the style for flag aliases and positional markers (cyan).
	Flag lipgloss.Style

	// Value is the style for placeholders and defaults (yellow).
	Value lipgloss.Style
}

// DefaultStyles returns the standard styles for usage output.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true),
		Flag:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")), // Cyan
		Value:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")), // Yellow
	}
}
