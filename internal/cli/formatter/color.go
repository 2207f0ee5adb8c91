package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
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

var categoryColors = map[domain.Category]lipgloss.Color{
	domain.CategoryWork:     ColorBlue,
	domain.CategoryHealth:   ColorGreen,
	domain.CategoryLeisure:  ColorYellow,
	domain.CategorySocial:   ColorPurple,
	domain.CategoryLearning: ColorAqua,
}

// CategoryStyle returns the style used for a category's label and bar.
func CategoryStyle(c domain.Category) lipgloss.Style {
	if color, ok := categoryColors[c]; ok {
		return lipgloss.NewStyle().Foreground(color)
	}
	return StyleDim
}

// CategoryBadge returns a colored category label such as "● health".
func CategoryBadge(c domain.Category) string {
	return CategoryStyle(c).Render("● " + string(c))
}

// ScoreStyle colors a balance score: green from 80, yellow from 60, red below.
func ScoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return StyleGreen
	case score >= 60:
		return StyleYellow
	default:
		return StyleRed
	}
}

// SourceBadge marks output produced by the rule-based fallback. Model
// output gets no badge.
func SourceBadge(src domain.GenerationSource) string {
	if src == domain.SourceFallback {
		return StyleYellow.Render("◌ offline suggestion")
	}
	return ""
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
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
