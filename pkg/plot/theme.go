package plot

import (
	"errors"
	"fmt"
)

// Theme represents a color theme for charts.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ErrUnknownTheme is returned by ParseTheme for names other than light and dark.
var ErrUnknownTheme = errors.New("unknown theme")

// ParseTheme converts a theme name to a Theme.
func ParseTheme(name string) (Theme, error) {
	switch Theme(name) {
	case ThemeLight, ThemeDark:
		return Theme(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
}

// ThemeConfig holds the chart colors of a theme.
type ThemeConfig struct {
	Background string
	Grid       string
	Axis       string
	Text       string
	TextMuted  string

	// Series colors, in order of use.
	Series []string

	Fit     string
	Mild    string
	Extreme string
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeDark {
		return darkTheme
	}

	return lightTheme
}

// SeriesColor returns the i-th series color, cycling through the palette.
func (tc ThemeConfig) SeriesColor(i int) string {
	return tc.Series[i%len(tc.Series)]
}

var lightTheme = ThemeConfig{
	Background: "#ffffff",
	Grid:       "#e7e5e4", // stone-200.
	Axis:       "#a8a29e", // stone-400.
	Text:       "#44403c", // stone-700.
	TextMuted:  "#78716c", // stone-500.

	Series: []string{
		"#a16207", // amber-700.
		"#0369a1", // sky-700.
		"#4d7c0f", // lime-700.
		"#7c3aed", // violet-600.
		"#be185d", // pink-700.
		"#0891b2", // cyan-600.
	},

	Fit:     "#2563eb", // blue-600.
	Mild:    "#ca8a04", // yellow-600.
	Extreme: "#dc2626", // red-600.
}

var darkTheme = ThemeConfig{
	Background: "#1c1917", // stone-900.
	Grid:       "#44403c", // stone-700.
	Axis:       "#57534e", // stone-600.
	Text:       "#d6d3d1", // stone-300.
	TextMuted:  "#a8a29e", // stone-400.

	Series: []string{
		"#d97706", // amber-600.
		"#0284c7", // sky-600.
		"#65a30d", // lime-600.
		"#8b5cf6", // violet-500.
		"#db2777", // pink-600.
		"#06b6d4", // cyan-500.
	},

	Fit:     "#3b82f6", // blue-500.
	Mild:    "#eab308", // yellow-500.
	Extreme: "#ef4444", // red-500.
}
