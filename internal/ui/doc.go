// Package ui holds the color themes of the fibseq diagnostics: raw ANSI
// escapes for plain lines and lipgloss styles for banners. Every function
// reads the active theme, so presentation code never decides on colors itself.
package ui
