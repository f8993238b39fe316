package ui

import "github.com/charmbracelet/lipgloss"

// Title renders a section heading.
func Title(s string) string {
	p := GetCurrentPalette()
	return lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Render(s)
}

// Success renders a positive status line.
func Success(s string) string {
	return lipgloss.NewStyle().Foreground(GetCurrentPalette().Success).Render(s)
}

// Failure renders a negative status line.
func Failure(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(GetCurrentPalette().Error).Render(s)
}

// Dim renders secondary information.
func Dim(s string) string {
	return lipgloss.NewStyle().Foreground(GetCurrentPalette().Dim).Render(s)
}

// Panel renders lines inside a rounded border.
func Panel(s string) string {
	p := GetCurrentPalette()
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1).
		Render(s)
}
