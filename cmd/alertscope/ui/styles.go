// Package ui provides the Bubble Tea pages and visual styling for the
// alertscope terminal browser.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. The accent follows the archive dashboard's amber-on-navy
// scheme; semantic colors are shared between both modes.
var (
	LightBackground = lipgloss.Color("#f4f5f7")
	LightForeground = lipgloss.Color("#141d38")
	LightPrimary    = lipgloss.Color("#1f3a68")
	LightAccent     = lipgloss.Color("#d97706")
	LightMuted      = lipgloss.Color("#8a93a6")
	LightBorder     = lipgloss.Color("#d8dce3")
	LightCard       = lipgloss.Color("#ffffff")

	DarkBackground = lipgloss.Color("#10182b")
	DarkForeground = lipgloss.Color("#e8eaf0")
	DarkPrimary    = lipgloss.Color("#f59e0b")
	DarkAccent     = lipgloss.Color("#38bdf8")
	DarkMuted      = lipgloss.Color("#5b6478")
	DarkBorder     = lipgloss.Color("#2a3850")
	DarkCard       = lipgloss.Color("#1a2536")

	Destructive = lipgloss.Color("#e53935")
	Good        = lipgloss.Color("#4caf50")
	Caution     = lipgloss.Color("#ffc107")
	Notice      = lipgloss.Color("#2196f3")
)

// Theme holds the current color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeNamed maps a config theme name to a Theme; "auto" detects.
func ThemeNamed(name string) Theme {
	switch name {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme guesses dark/light from the terminal environment.
func DetectTheme() Theme {
	if os.Getenv("ALERTSCOPE_DARK_MODE") == "1" {
		return DarkTheme()
	}
	// COLORFGBG is "foreground;background"; low background indices are
	// dark terminal backgrounds.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}
	return LightTheme()
}

// Styles holds the styled components used across pages.
type Styles struct {
	Theme Theme

	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Link     lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Spinner lipgloss.Style
	Badge   lipgloss.Style
	Divider lipgloss.Style
}

// NewStyles creates a Styles instance for the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Link: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Underline(true),

		Success: lipgloss.NewStyle().
			Foreground(Good).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Caution).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Notice),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// DefaultStyles returns styles with the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider of the given width.
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", width))
}
