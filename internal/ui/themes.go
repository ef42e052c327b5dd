package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a set of ANSI escape codes for one terminal color scheme.
// Fields are consumed through the accessor functions in colors.go.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for important elements.
	Primary string
	// Secondary is used for informational values and less prominent elements.
	Secondary string
	// Success indicates positive outcomes or completed scans.
	Success string
	// Warning is used for caution messages or non-critical issues.
	Warning string
	// Error indicates failures or critical issues.
	Error string
	// Info is used for informational messages.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is the default scheme, tuned for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;75m",  // Sky blue
		Secondary: "\033[38;5;51m",  // Cyan
		Success:   "\033[38;5;84m",  // Spring green
		Warning:   "\033[38;5;221m", // Light yellow
		Error:     "\033[38;5;203m", // Salmon red
		Info:      "\033[38;5;147m", // Lavender
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme uses darker colors that stay readable on light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;25m",  // Deep blue
		Secondary: "\033[38;5;30m",  // Dark cyan
		Success:   "\033[38;5;22m",  // Forest green
		Warning:   "\033[38;5;130m", // Orange brown
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;90m",  // Plum
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// MonoTheme keeps structure visible through weight alone. Intended for
	// terminals with broken 256-color support and for piped logs where
	// color codes survive but hues are meaningless.
	MonoTheme = Theme{
		Name:      "mono",
		Primary:   "\033[1m",
		Secondary: "\033[2m",
		Success:   "\033[1m",
		Warning:   "\033[1m",
		Error:     "\033[1;7m", // Inverse video for failures
		Info:      "\033[2m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme renders everything as plain text.
	// Active when NO_COLOR is set or colors are disabled programmatically.
	NoColorTheme = Theme{Name: "none"}

	// themesByName resolves user-supplied theme names. "none" is accepted
	// here so DUPSCAN_THEME=none works like NO_COLOR.
	themesByName = map[string]Theme{
		"dark":  DarkTheme,
		"light": LightTheme,
		"mono":  MonoTheme,
		"none":  NoColorTheme,
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme defines the lipgloss palette for the dashboard. Fields are
// lipgloss.TerminalColor values suitable for Style.Foreground and
// Style.Background.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the cyan-on-slate dashboard palette.
	DarkTUITheme = TUITheme{
		Bg:      lipgloss.Color("#0B1220"),
		Text:    lipgloss.Color("#D8E0EA"),
		Border:  lipgloss.Color("#2AA8C4"),
		Accent:  lipgloss.Color("#4FC3E8"),
		Success: lipgloss.Color("#7DD87D"),
		Warning: lipgloss.Color("#E8C547"),
		Error:   lipgloss.Color("#E8615A"),
		Dim:     lipgloss.Color("#5A6678"),
		Info:    lipgloss.Color("#9B8CE8"),
	}

	// NoColorTUITheme disables all TUI colors.
	// lipgloss.NoColor{} renders text with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the TUI palette matching the active theme:
// NoColorTUITheme when colors are disabled, DarkTUITheme otherwise.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	if currentTheme.Name == "none" {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name. Valid names are the keys of
// themesByName; unknown names fall back to the dark theme.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = lookupTheme(name)
}

func lookupTheme(name string) Theme {
	if t, ok := themesByName[name]; ok {
		return t
	}
	return DarkTheme
}

// InitTheme selects the startup theme. Precedence: the noColor argument,
// then the NO_COLOR environment variable (https://no-color.org/), then
// DUPSCAN_THEME, then the dark default.
//
// Parameters:
//   - noColor: If true, disables all color output regardless of environment.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}

	// Any non-empty value disables colors (per no-color.org).
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}

	if name, ok := os.LookupEnv("DUPSCAN_THEME"); ok && name != "" {
		currentTheme = lookupTheme(name)
		return
	}

	currentTheme = DarkTheme
}
