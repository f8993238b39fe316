package ui

import (
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme pairs the ANSI escapes used by plain diagnostics with the lipgloss
// palette used by styled banners.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary highlights strategy names.
	Primary string
	// Secondary is used for counts and less prominent values.
	Secondary string
	// Success marks completed runs.
	Success string
	// Warning is used for timeouts and durations.
	Warning string
	// Error marks failures.
	Error string
	// Info is used for tips.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
	// Palette styles lipgloss renderings.
	Palette Palette
}

// Palette holds the lipgloss colors of a Theme.
type Palette struct {
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

// fg returns the escape selecting color code from the 256-color table.
func fg(code int) string { return fmt.Sprintf("\033[38;5;%dm", code) }

const (
	escBold      = "\033[1m"
	escUnderline = "\033[4m"
	escReset     = "\033[0m"
)

var (
	// DarkTheme suits dark terminal backgrounds. It is the default.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   fg(39),
		Secondary: fg(245),
		Success:   fg(82),
		Warning:   fg(220),
		Error:     fg(196),
		Info:      fg(141),
		Bold:      escBold,
		Underline: escUnderline,
		Reset:     escReset,
		Palette: Palette{
			Border:  lipgloss.Color("39"),
			Accent:  lipgloss.Color("#FF8C00"),
			Success: lipgloss.Color("#9ece6a"),
			Warning: lipgloss.Color("#FFB347"),
			Error:   lipgloss.Color("#FF4444"),
			Dim:     lipgloss.Color("#666666"),
		},
	}

	// LightTheme uses darker colors for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   fg(27),
		Secondary: fg(240),
		Success:   fg(28),
		Warning:   fg(130),
		Error:     fg(124),
		Info:      fg(54),
		Bold:      escBold,
		Underline: escUnderline,
		Reset:     escReset,
		Palette: Palette{
			Border:  lipgloss.Color("27"),
			Accent:  lipgloss.Color("#B35900"),
			Success: lipgloss.Color("#2E7D32"),
			Warning: lipgloss.Color("#A65E00"),
			Error:   lipgloss.Color("#B00020"),
			Dim:     lipgloss.Color("#808080"),
		},
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or --no-color is given.
	NoColorTheme = Theme{
		Name: "none",
		Palette: Palette{
			Border:  lipgloss.NoColor{},
			Accent:  lipgloss.NoColor{},
			Success: lipgloss.NoColor{},
			Warning: lipgloss.NoColor{},
			Error:   lipgloss.NoColor{},
			Dim:     lipgloss.NoColor{},
		},
	}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// ThemeNames returns the selectable theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// GetCurrentPalette returns the palette of the active theme.
func GetCurrentPalette() Palette {
	return GetCurrentTheme().Palette
}

// setCurrentTheme swaps the active theme under the lock.
func setCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name. Unknown names select the dark
// theme.
func SetTheme(name string) {
	t, ok := themes[name]
	if !ok {
		t = DarkTheme
	}
	setCurrentTheme(t)
}

// InitTheme selects the theme for a run. Colors are disabled when noColor is
// set or the NO_COLOR environment variable exists (https://no-color.org/);
// otherwise the named theme is used, dark when name is empty.
func InitTheme(noColor bool, name ...string) {
	if _, exists := os.LookupEnv("NO_COLOR"); noColor || exists {
		setCurrentTheme(NoColorTheme)
		return
	}
	if len(name) > 0 && name[0] != "" {
		SetTheme(name[0])
		return
	}
	setCurrentTheme(DarkTheme)
}
