package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// WeatherStyle returns the style for a weather bucket.
func WeatherStyle(c domain.WeatherCategory) lipgloss.Style {
	switch c {
	case domain.WeatherClear:
		return StyleYellow
	case domain.WeatherCloudy:
		return StyleDim
	case domain.WeatherPrecipitation:
		return StyleBlue
	default:
		return StyleFg
	}
}

// WeatherGlyph returns a one-character icon for a weather bucket.
func WeatherGlyph(c domain.WeatherCategory) string {
	switch c {
	case domain.WeatherClear:
		return "☀"
	case domain.WeatherCloudy:
		return "☁"
	case domain.WeatherPrecipitation:
		return "☂"
	default:
		return "?"
	}
}

// WeatherLabel returns the display name for a weather bucket.
func WeatherLabel(c domain.WeatherCategory) string {
	switch c {
	case domain.WeatherClear:
		return "Clear"
	case domain.WeatherCloudy:
		return "Cloudy"
	case domain.WeatherPrecipitation:
		return "Rain"
	default:
		return "Unknown"
	}
}

// OpenBadge returns a colored availability indicator such as "● Open".
func OpenBadge(open bool) string {
	if open {
		return StyleGreen.Render("● Open")
	}
	return StyleRed.Render("✖ Closed")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
