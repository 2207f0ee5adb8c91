package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lifeplan/internal/domain"
)

const barWidth = 20

// FormatBalance renders a day's balance analysis.
func FormatBalance(day time.Time, now time.Time, result domain.BalanceResult, eventCount int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n\n", Bold(DayLabel(day, now)),
		Dim(fmt.Sprintf("%d event%s tracked", eventCount, plural(eventCount))))

	if result.Empty {
		b.WriteString(StyleYellow.Render("No tracked time yet.") + "\n")
	}
	fmt.Fprintf(&b, "Balance score  %s\n\n", ScoreStyle(result.Score).Bold(true).Render(fmt.Sprintf("%d/100", result.Score)))
	b.WriteString(RenderBreakdown(result.Breakdown, barWidth))

	if len(result.Suggestions) > 0 {
		b.WriteString("\n" + Header("Suggestions") + "\n")
		b.WriteString(BulletList(result.Suggestions))
	}

	return RenderBox("Balance", strings.TrimRight(b.String(), "\n"))
}

// FormatSuggestions renders generated suggestions with their source.
func FormatSuggestions(suggestions []string, src domain.GenerationSource) string {
	var b strings.Builder
	b.WriteString(Header("Suggestions"))
	if badge := SourceBadge(src); badge != "" {
		b.WriteString("  " + badge)
	}
	b.WriteString("\n")
	if len(suggestions) == 0 {
		b.WriteString(Dim("  Nothing to change. Keep it up.") + "\n")
		return b.String()
	}
	b.WriteString(BulletList(suggestions))
	return b.String()
}

// FormatBalanceHistory renders stored daily snapshots as a table with a
// compact score trend.
func FormatBalanceHistory(snapshots []*domain.BalanceSnapshot) string {
	if len(snapshots) == 0 {
		return Dim("No balance history yet. Run 'lifeplan balance' to record today.") + "\n"
	}

	headers := []string{"DATE", "SCORE", "", "EVENTS", "TOP CATEGORY"}
	rows := make([][]string, 0, len(snapshots))
	total := 0
	for _, s := range snapshots {
		total += s.Score
		rows = append(rows, []string{
			s.Date.Format("Mon Jan 2"),
			ScoreStyle(s.Score).Render(fmt.Sprintf("%3d", s.Score)),
			RenderProgress(float64(s.Score)/100, 10),
			fmt.Sprintf("%d", s.EventCount),
			topCategory(s.Breakdown),
		})
	}

	avg := total / len(snapshots)
	footer := fmt.Sprintf("\n%s %s\n", Dim("Average score:"), ScoreStyle(avg).Render(fmt.Sprintf("%d", avg)))
	return RenderBox("Balance history", RenderTable(headers, rows)+footer)
}

func topCategory(b domain.Breakdown) string {
	best := domain.Category("")
	for _, c := range domain.Categories {
		if best == "" || b[c] > b[best] {
			best = c
		}
	}
	if b[best] == 0 {
		return Dim("--")
	}
	return CategoryStyle(best).Render(fmt.Sprintf("%s %d%%", best, b[best]))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
