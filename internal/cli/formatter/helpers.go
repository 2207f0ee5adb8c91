package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner) + "\n"
	}

	return boxStyle.Render(content) + "\n"
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DayLabel returns "Mon Mar 2" with a relative hint for nearby days.
func DayLabel(day time.Time, now time.Time) string {
	label := day.Format("Mon Jan 2")
	y1, m1, d1 := day.Date()
	y2, m2, d2 := now.Date()
	today := time.Date(y2, m2, d2, 0, 0, 0, 0, now.Location())
	rel := RelativeDateFrom(time.Date(y1, m1, d1, 0, 0, 0, 0, now.Location()), today)
	switch rel {
	case "Today", "Tomorrow", "Yesterday":
		return label + Dim(" ("+strings.ToLower(rel)+")")
	}
	return label
}

// TimeRange formats a start/end pair as "09:00-10:30".
func TimeRange(start, end time.Time) string {
	return start.Format("15:04") + "-" + end.Format("15:04")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Truncate shortens s to max runes, ending with "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 4 {
		return s
	}
	return string(r[:max-3]) + "..."
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// GoalStatusPill returns a colored status indicator for a goal.
func GoalStatusPill(status domain.GoalStatus) string {
	switch status {
	case domain.GoalActive:
		return StyleGreen.Render("● Active")
	case domain.GoalCompleted:
		return StyleDim.Render("✔ Done")
	case domain.GoalAbandoned:
		return StyleDim.Render("✖ Abandoned")
	default:
		return StyleDim.Render(string(status))
	}
}

// PriorityPill returns a colored milestone priority.
func PriorityPill(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("high")
	case domain.PriorityLow:
		return StyleDim.Render("low")
	default:
		return StyleYellow.Render("medium")
	}
}

// BulletList renders items as dim-bulleted lines.
func BulletList(items []string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(Dim("  • "))
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}
