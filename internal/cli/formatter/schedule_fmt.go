package formatter

import (
	"strings"

	"github.com/alexanderramin/lifeplan/internal/domain"
)

// FormatScheduleItems renders schedule items as a time-ordered table.
func FormatScheduleItems(items []domain.ScheduleItem) string {
	dated := false
	for _, it := range items {
		if it.Date != "" {
			dated = true
			break
		}
	}

	headers := []string{"TIME", "CATEGORY", "ACTIVITY"}
	if dated {
		headers = append([]string{"DATE"}, headers...)
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		row := []string{
			it.StartTime + "-" + it.EndTime,
			CategoryBadge(it.Category),
			activity(it.Title, it.Description),
		}
		if dated {
			row = append([]string{it.Date}, row...)
		}
		rows = append(rows, row)
	}
	return RenderTable(headers, rows)
}

// FormatSchedulePlan renders a generated day schedule with its balance.
func FormatSchedulePlan(plan domain.SchedulePlan) string {
	var b strings.Builder
	if badge := SourceBadge(plan.Source); badge != "" {
		b.WriteString(badge + "\n\n")
	}
	b.WriteString(FormatScheduleItems(plan.Schedule))
	b.WriteString("\n" + Header("Planned balance") + "\n")
	b.WriteString(RenderBreakdown(plan.BalanceAnalysis, barWidth))
	if len(plan.Suggestions) > 0 {
		b.WriteString("\n" + Header("Tips") + "\n")
		b.WriteString(BulletList(plan.Suggestions))
	}
	return RenderBox("Schedule", strings.TrimRight(b.String(), "\n"))
}

func activity(title, description string) string {
	if description == "" {
		return title
	}
	return title + Dim(" · "+Truncate(description, 48))
}
