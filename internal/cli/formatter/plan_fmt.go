package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lifeplan/internal/domain"
)

// FormatGoalPlan renders a generated goal plan.
func FormatGoalPlan(plan domain.GoalPlan) string {
	var b strings.Builder

	b.WriteString(Bold(plan.GoalTitle))
	if badge := SourceBadge(plan.Source); badge != "" {
		b.WriteString("  " + badge)
	}
	b.WriteString("\n")
	if plan.Description != "" {
		b.WriteString(Dim(plan.Description) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(RenderFields([][2]string{
		{"Timeframe", fmt.Sprintf("%d days", plan.TimeframeDays)},
		{"Feasibility", ScoreStyle(plan.Analysis.FeasibilityScore).Render(fmt.Sprintf("%d%%", plan.Analysis.FeasibilityScore))},
		{"Success rate", ScoreStyle(plan.Analysis.EstimatedSuccessRate).Render(fmt.Sprintf("%d%%", plan.Analysis.EstimatedSuccessRate))},
	}))

	b.WriteString("\n" + Header("Milestones") + "\n")
	rows := make([][]string, 0, len(plan.Milestones))
	for _, m := range plan.Milestones {
		rows = append(rows, []string{fmt.Sprintf("%d", m.WeekIndex), m.DueDate, PriorityPill(m.Priority), m.Title})
	}
	b.WriteString(RenderTable([]string{"WEEK", "DUE", "PRIORITY", "MILESTONE"}, rows))

	b.WriteString("\n" + Header("Daily tasks") + "\n")
	tasks := make([][]string, 0, len(plan.DailyTasks))
	for _, t := range plan.DailyTasks {
		tasks = append(tasks, []string{FormatMinutes(t.DurationMinutes), CategoryBadge(t.Category), t.TimeOfDay, t.Title})
	}
	b.WriteString(RenderTable([]string{"TIME", "CATEGORY", "WHEN", "TASK"}, tasks))

	if len(plan.Analysis.KeySuccessFactors) > 0 {
		b.WriteString("\n" + Header("Keys to success") + "\n")
		b.WriteString(BulletList(plan.Analysis.KeySuccessFactors))
	}
	if len(plan.Analysis.PotentialChallenges) > 0 {
		b.WriteString("\n" + Header("Watch out for") + "\n")
		b.WriteString(BulletList(plan.Analysis.PotentialChallenges))
	}
	if len(plan.TrackingMetrics) > 0 {
		b.WriteString("\n" + Header("Track") + "\n")
		for _, m := range plan.TrackingMetrics {
			fmt.Fprintf(&b, "%s%s %s\n", Dim("  • "), m.Name, Dim(fmt.Sprintf("(%s, %s)", m.Target, m.Frequency)))
		}
	}

	return RenderBox("Goal plan", strings.TrimRight(b.String(), "\n"))
}

// FormatGoalList renders stored goals.
func FormatGoalList(goals []*domain.Goal, now time.Time) string {
	if len(goals) == 0 {
		return Dim("No goals yet. Create one with 'lifeplan plan \"<goal>\"'.") + "\n"
	}
	headers := []string{"ID", "GOAL", "STATUS", "TIMEFRAME", "CREATED"}
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, []string{
			TruncID(g.ID),
			Truncate(g.Title, 40),
			GoalStatusPill(g.Status),
			fmt.Sprintf("%dd", g.TimeframeDays),
			RelativeDateFrom(g.CreatedAt, now),
		})
	}
	return RenderBox("Goals", RenderTable(headers, rows))
}

// FormatGoalDetail renders a goal with its milestones and upcoming sessions.
func FormatGoalDetail(goal *domain.Goal, subGoals []*domain.SubGoal, events []*domain.Event, now time.Time) string {
	var b strings.Builder

	b.WriteString(Bold(goal.Title) + "  " + GoalStatusPill(goal.Status) + "\n")
	if goal.Description != "" {
		b.WriteString(Dim(goal.Description) + "\n")
	}
	b.WriteString("\n")

	done := 0
	for _, sg := range subGoals {
		if sg.Completed {
			done++
		}
	}
	progress := 0.0
	if len(subGoals) > 0 {
		progress = float64(done) / float64(len(subGoals))
	}
	b.WriteString(RenderFields([][2]string{
		{"ID", goal.ID},
		{"Timeframe", fmt.Sprintf("%s (%d days)", goal.Timeframe, goal.TimeframeDays)},
		{"Milestones", RenderProgress(progress, 16)},
		{"Feasibility", fmt.Sprintf("%d%%", goal.FeasibilityScore)},
	}))

	if len(subGoals) > 0 {
		b.WriteString("\n" + Header("Milestones") + "\n")
		rows := make([][]string, 0, len(subGoals))
		for _, sg := range subGoals {
			check := Dim("○")
			if sg.Completed {
				check = StyleGreen.Render("✔")
			}
			rows = append(rows, []string{check, TruncID(sg.ID), sg.DueDate.Format("Jan 2"), PriorityPill(sg.Priority), sg.Title})
		}
		b.WriteString(RenderTable([]string{"", "ID", "DUE", "PRIORITY", "MILESTONE"}, rows))
	}

	upcoming := make([][]string, 0, 5)
	for _, e := range events {
		if e.EndTime.Before(now) {
			continue
		}
		upcoming = append(upcoming, []string{DayLabel(e.StartTime, now), TimeRange(e.StartTime, e.EndTime), e.Title})
		if len(upcoming) == 5 {
			break
		}
	}
	if len(upcoming) > 0 {
		b.WriteString("\n" + Header("Next sessions") + "\n")
		b.WriteString(RenderTable([]string{"DAY", "TIME", "SESSION"}, upcoming))
	}

	return RenderBox("Goal", strings.TrimRight(b.String(), "\n"))
}
