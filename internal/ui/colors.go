package ui

// Color accessor functions return ANSI escape codes from the currently
// active theme. They are the primary API used by the CLI presentation
// layer: callers compose colored output without touching Theme fields
// directly, so theme switches (including NO_COLOR) apply everywhere at
// once.

// ColorReset returns the escape code that clears all formatting.
func ColorReset() string {
	return GetCurrentTheme().Reset
}

// ColorRed returns the error color of the active theme.
func ColorRed() string {
	return GetCurrentTheme().Error
}

// ColorGreen returns the success color of the active theme.
func ColorGreen() string {
	return GetCurrentTheme().Success
}

// ColorYellow returns the warning color of the active theme.
func ColorYellow() string {
	return GetCurrentTheme().Warning
}

// ColorBlue returns the primary accent color of the active theme.
func ColorBlue() string {
	return GetCurrentTheme().Primary
}

// ColorMagenta returns the info color of the active theme.
func ColorMagenta() string {
	return GetCurrentTheme().Info
}

// ColorCyan returns the secondary accent color of the active theme.
func ColorCyan() string {
	return GetCurrentTheme().Secondary
}

// ColorBold returns the bold escape code of the active theme.
func ColorBold() string {
	return GetCurrentTheme().Bold
}

// ColorUnderline returns the underline escape code of the active theme.
func ColorUnderline() string {
	return GetCurrentTheme().Underline
}
