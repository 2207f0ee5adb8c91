package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lifeplan/internal/domain"
)

// FormatEventList renders a day's events.
func FormatEventList(day time.Time, now time.Time, events []*domain.Event) string {
	if len(events) == 0 {
		return Dim(fmt.Sprintf("No events on %s.", day.Format("Mon Jan 2"))) + "\n"
	}
	headers := []string{"ID", "TIME", "DURATION", "CATEGORY", "TITLE"}
	rows := make([][]string, 0, len(events))
	total := 0
	for _, e := range events {
		total += e.DurationMinutes()
		rows = append(rows, []string{
			TruncID(e.ID),
			TimeRange(e.StartTime, e.EndTime),
			FormatMinutes(e.DurationMinutes()),
			CategoryBadge(e.Category),
			activity(e.Title, e.Description),
		})
	}
	footer := fmt.Sprintf("\n%s %s\n", Dim("Tracked:"), FormatMinutes(total))
	return RenderBox(DayLabel(day, now), RenderTable(headers, rows)+footer)
}

// FormatEventCreated confirms a stored event.
func FormatEventCreated(e *domain.Event) string {
	return fmt.Sprintf("%s %s %s %s %s\n",
		StyleGreen.Render("✔ Added"),
		Bold(e.Title),
		Dim(e.StartTime.Format("Mon Jan 2")),
		TimeRange(e.StartTime, e.EndTime),
		CategoryBadge(e.Category),
	)
}

// FormatEventDraft renders an event extracted from free text.
func FormatEventDraft(draft domain.EventDraft) string {
	it := draft.Item
	var b strings.Builder
	b.WriteString(RenderFields([][2]string{
		{"Title", Bold(it.Title)},
		{"Category", CategoryBadge(it.Category)},
		{"Date", it.Date},
		{"Time", it.StartTime + "-" + it.EndTime},
	}))
	if badge := SourceBadge(draft.Source); badge != "" {
		b.WriteString("\n" + badge + "\n")
	}
	return RenderBox("Parsed event", strings.TrimRight(b.String(), "\n"))
}
