package cmd

import "github.com/charmbracelet/lipgloss"

var (
	colorError  = lipgloss.Color("#EF4444")
	colorResult = lipgloss.Color("#10B981")
	colorMuted  = lipgloss.Color("#94A3B8")
)

type styles struct {
	errorHeader lipgloss.Style
	result      lipgloss.Style
	muted       lipgloss.Style
}

// newStyles returns unstyled renderers when color is off.
func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{errorHeader: plain, result: plain, muted: plain}
	}
	return styles{
		errorHeader: lipgloss.NewStyle().Foreground(colorError).Bold(true),
		result:      lipgloss.NewStyle().Foreground(colorResult),
		muted:       lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
	}
}
