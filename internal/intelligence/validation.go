package intelligence

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/lifeplan/internal/balance"
	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/llm"
)

const (
	maxSuggestions      = balance.MaxSuggestions
	defaultEventMinutes = 60
	lastMinuteOfDay     = 23*60 + 59
	breakdownTolerance  = 5
)

// flexInt decodes integers that models emit as floats or numeric strings
// ("40", "40%", 40.0).
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexInt(math.Round(n))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*f = flexInt(math.Round(n))
	return nil
}

type rawScheduleItem struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type rawSchedulePlan struct {
	Schedule        []json.RawMessage          `json:"schedule"`
	BalanceAnalysis map[string]json.RawMessage `json:"balanceAnalysis"`
	Suggestions     []json.RawMessage          `json:"suggestions"`
}

type rawMilestone struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Week        flexInt `json:"week"`
	DueDate     string  `json:"dueDate"`
	Priority    string  `json:"priority"`
}

type rawDailyTask struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	DurationMinutes flexInt `json:"durationMinutes"`
	TimeOfDay       string  `json:"timeOfDay"`
}

type rawAnalysis struct {
	FeasibilityScore       *flexInt          `json:"feasibilityScore"`
	EstimatedSuccessRate   *flexInt          `json:"estimatedSuccessRate"`
	KeySuccessFactors      []json.RawMessage `json:"keySuccessFactors"`
	PotentialChallenges    []json.RawMessage `json:"potentialChallenges"`
	RecommendedAdjustments []json.RawMessage `json:"recommendedAdjustments"`
}

type rawMetric struct {
	Name      string `json:"name"`
	Target    string `json:"target"`
	Frequency string `json:"frequency"`
}

type rawGoalPlan struct {
	GoalTitle       string            `json:"goalTitle"`
	Description     string            `json:"description"`
	Milestones      []json.RawMessage `json:"milestones"`
	DailyTasks      []json.RawMessage `json:"dailyTasks"`
	Schedule        []json.RawMessage `json:"schedule"`
	Analysis        json.RawMessage   `json:"analysis"`
	TrackingMetrics []json.RawMessage `json:"trackingMetrics"`
}

type rawSuggestions struct {
	Suggestions []json.RawMessage `json:"suggestions"`
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", llm.ErrInvalidOutput, fmt.Sprintf(format, args...))
}

// ParseSchedulePlan extracts a schedule from model output. Items missing a
// required field, with an unknown category or with unusable times are
// dropped; a plan with no surviving items is invalid. A missing or
// inconsistent balanceAnalysis is recomputed from the schedule.
func ParseSchedulePlan(raw string) (domain.SchedulePlan, error) {
	parsed, err := llm.ExtractJSON[rawSchedulePlan](raw, nil)
	if err != nil {
		return domain.SchedulePlan{}, err
	}

	items := parseScheduleItems(parsed.Schedule, time.Time{}, false)
	if len(items) == 0 {
		return domain.SchedulePlan{}, invalid("schedule has no valid items")
	}

	breakdown, ok := parseBreakdown(parsed.BalanceAnalysis)
	if !ok {
		breakdown = balance.Aggregate(balance.EntriesFromSchedule(items)).Breakdown
	}

	suggestions := parseStrings(parsed.Suggestions, maxSuggestions)
	if len(suggestions) == 0 {
		suggestions = balance.Suggestions(breakdown)
	}

	plan := domain.SchedulePlan{
		Schedule:        items,
		BalanceAnalysis: breakdown,
		Suggestions:     suggestions,
		Source:          domain.SourceAI,
	}
	if err := ValidateSchedulePlan(plan); err != nil {
		return domain.SchedulePlan{}, invalid("%v", err)
	}
	return plan, nil
}

// ParseGoalPlan extracts a goal plan from model output. At least one
// milestone and one schedule item must survive; placeholder dates are
// replaced with real ones counted from now, and missing daily tasks,
// analysis or metrics are filled in from the rule-based plan.
func ParseGoalPlan(raw string, req GoalPlanRequest, now time.Time) (domain.GoalPlan, error) {
	parsed, err := llm.ExtractJSON[rawGoalPlan](raw, nil)
	if err != nil {
		return domain.GoalPlan{}, err
	}

	base := startOfDay(now)
	milestones := parseMilestones(parsed.Milestones, base)
	if len(milestones) == 0 {
		return domain.GoalPlan{}, invalid("plan has no valid milestones")
	}
	schedule := parseScheduleItems(parsed.Schedule, base, true)
	if len(schedule) == 0 {
		return domain.GoalPlan{}, invalid("plan has no valid schedule items")
	}

	defaults := FallbackGoalPlan(req, now)
	plan := domain.GoalPlan{
		GoalTitle:       strings.TrimSpace(parsed.GoalTitle),
		Description:     strings.TrimSpace(parsed.Description),
		TimeframeDays:   req.Params().TimeframeDays,
		Milestones:      milestones,
		DailyTasks:      parseDailyTasks(parsed.DailyTasks),
		Schedule:        schedule,
		Analysis:        parseAnalysis(parsed.Analysis, defaults.Analysis),
		TrackingMetrics: parseMetrics(parsed.TrackingMetrics),
		Source:          domain.SourceAI,
	}
	if plan.GoalTitle == "" {
		plan.GoalTitle = defaults.GoalTitle
	}
	if plan.Description == "" {
		plan.Description = defaults.Description
	}
	if len(plan.DailyTasks) == 0 {
		plan.DailyTasks = defaults.DailyTasks
	}
	if len(plan.TrackingMetrics) == 0 {
		plan.TrackingMetrics = defaults.TrackingMetrics
	}

	if err := ValidateGoalPlan(plan); err != nil {
		return domain.GoalPlan{}, invalid("%v", err)
	}
	return plan, nil
}

// ParseEventDraft extracts a single dated schedule item. A missing end time
// defaults to one hour after the start.
func ParseEventDraft(raw string, now time.Time) (domain.ScheduleItem, error) {
	parsed, err := llm.ExtractJSON[rawScheduleItem](raw, nil)
	if err != nil {
		return domain.ScheduleItem{}, err
	}
	if strings.TrimSpace(parsed.EndTime) == "" {
		if start, ok := normalizeClock(parsed.StartTime); ok {
			parsed.EndTime = addMinutes(start, defaultEventMinutes)
		}
	}
	item, ok := normalizeScheduleItem(parsed, startOfDay(now), 0, true)
	if !ok {
		return domain.ScheduleItem{}, invalid("event is missing a title, category or valid times")
	}
	return item, nil
}

// ParseSuggestions extracts up to three non-empty suggestion strings.
func ParseSuggestions(raw string) ([]string, error) {
	parsed, err := llm.ExtractJSON[rawSuggestions](raw, nil)
	if err != nil {
		return nil, err
	}
	out := parseStrings(parsed.Suggestions, maxSuggestions)
	if len(out) == 0 {
		return nil, invalid("no suggestions")
	}
	return out, nil
}

// ParseChatText cleans a free-text chat reply.
func ParseChatText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	for _, prefix := range []string{"Assistant:", "assistant:"} {
		text = strings.TrimSpace(strings.TrimPrefix(text, prefix))
	}
	text = strings.Trim(text, "`")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", invalid("empty chat reply")
	}
	return text, nil
}

func parseScheduleItems(raws []json.RawMessage, base time.Time, dated bool) []domain.ScheduleItem {
	items := make([]domain.ScheduleItem, 0, len(raws))
	for _, r := range raws {
		var ri rawScheduleItem
		if err := json.Unmarshal(r, &ri); err != nil {
			continue
		}
		// Placeholder dates are offset by the item's position in the
		// accepted list so consecutive items land on consecutive days.
		item, ok := normalizeScheduleItem(ri, base, len(items), dated)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items
}

func normalizeScheduleItem(ri rawScheduleItem, base time.Time, index int, dated bool) (domain.ScheduleItem, bool) {
	title := strings.TrimSpace(ri.Title)
	if title == "" {
		return domain.ScheduleItem{}, false
	}
	cat, ok := domain.ParseCategory(ri.Category)
	if !ok {
		return domain.ScheduleItem{}, false
	}
	start, ok := normalizeClock(ri.StartTime)
	if !ok {
		return domain.ScheduleItem{}, false
	}
	end, ok := normalizeClock(ri.EndTime)
	if !ok || balance.ClockMinutes(start, end) <= 0 {
		return domain.ScheduleItem{}, false
	}

	item := domain.ScheduleItem{
		Title:       title,
		Category:    cat,
		StartTime:   start,
		EndTime:     end,
		Description: strings.TrimSpace(ri.Description),
	}
	if d, err := time.Parse(dateLayout, strings.TrimSpace(ri.Date)); err == nil {
		item.Date = d.Format(dateLayout)
	} else if dated {
		item.Date = base.AddDate(0, 0, index).Format(dateLayout)
	}
	return item, true
}

var clockLayouts = []string{"15:04", "3:04PM", "3:04 PM", "3PM", "3 PM", "15.04", "15:04:05"}

// normalizeClock accepts common time spellings and returns "HH:MM".
func normalizeClock(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(clockLayout), true
		}
	}
	return "", false
}

// addMinutes returns clock + minutes, capped at 23:59.
func addMinutes(clock string, minutes int) string {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return clock
	}
	total := min(t.Hour()*60+t.Minute()+minutes, lastMinuteOfDay)
	return formatClock(total)
}

func formatClock(minutes int) string {
	minutes = min(max(minutes, 0), lastMinuteOfDay)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// parseBreakdown accepts a model breakdown only when it names every
// category with a 0-100 value and sums to roughly 100.
func parseBreakdown(raw map[string]json.RawMessage) (domain.Breakdown, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	b := domain.EmptyBreakdown()
	seen := 0
	for k, v := range raw {
		cat, ok := domain.ParseCategory(k)
		if !ok {
			continue
		}
		var n flexInt
		if err := json.Unmarshal(v, &n); err != nil || n < 0 || n > 100 {
			return nil, false
		}
		b[cat] = int(n)
		seen++
	}
	if seen != len(domain.Categories) {
		return nil, false
	}
	if sum := b.Sum(); sum < 100-breakdownTolerance || sum > 100+breakdownTolerance {
		return nil, false
	}
	return b, true
}

func parseStrings(raws []json.RawMessage, limit int) []string {
	var out []string
	for _, r := range raws {
		if len(out) == limit {
			break
		}
		var s string
		if err := json.Unmarshal(r, &s); err != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseMilestones(raws []json.RawMessage, base time.Time) []domain.Milestone {
	var out []domain.Milestone
	for _, r := range raws {
		var rm rawMilestone
		if err := json.Unmarshal(r, &rm); err != nil {
			continue
		}
		title := strings.TrimSpace(rm.Title)
		if title == "" {
			continue
		}
		week := int(rm.Week)
		if week <= 0 {
			week = len(out) + 1
		}
		due := strings.TrimSpace(rm.DueDate)
		if d, err := time.Parse(dateLayout, due); err == nil {
			due = d.Format(dateLayout)
		} else {
			due = base.AddDate(0, 0, week*7).Format(dateLayout)
		}
		out = append(out, domain.Milestone{
			Title:       title,
			Description: strings.TrimSpace(rm.Description),
			WeekIndex:   week,
			DueDate:     due,
			Priority:    domain.ParsePriority(strings.ToLower(strings.TrimSpace(rm.Priority))),
		})
	}
	return out
}

func parseDailyTasks(raws []json.RawMessage) []domain.DailyTask {
	var out []domain.DailyTask
	for _, r := range raws {
		var rt rawDailyTask
		if err := json.Unmarshal(r, &rt); err != nil {
			continue
		}
		title := strings.TrimSpace(rt.Title)
		cat, ok := domain.ParseCategory(rt.Category)
		if title == "" || !ok || rt.DurationMinutes <= 0 {
			continue
		}
		out = append(out, domain.DailyTask{
			Title:           title,
			Description:     strings.TrimSpace(rt.Description),
			Category:        cat,
			DurationMinutes: int(rt.DurationMinutes),
			TimeOfDay:       strings.TrimSpace(rt.TimeOfDay),
		})
	}
	return out
}

func parseAnalysis(raw json.RawMessage, defaults domain.PlanAnalysis) domain.PlanAnalysis {
	var ra rawAnalysis
	if len(raw) == 0 || json.Unmarshal(raw, &ra) != nil {
		return defaults
	}
	out := defaults
	if ra.FeasibilityScore != nil {
		out.FeasibilityScore = clampPercent(int(*ra.FeasibilityScore))
	}
	if ra.EstimatedSuccessRate != nil {
		out.EstimatedSuccessRate = clampPercent(int(*ra.EstimatedSuccessRate))
	}
	if s := parseStrings(ra.KeySuccessFactors, -1); len(s) > 0 {
		out.KeySuccessFactors = s
	}
	if s := parseStrings(ra.PotentialChallenges, -1); len(s) > 0 {
		out.PotentialChallenges = s
	}
	if s := parseStrings(ra.RecommendedAdjustments, -1); len(s) > 0 {
		out.RecommendedAdjustments = s
	}
	return out
}

func parseMetrics(raws []json.RawMessage) []domain.TrackingMetric {
	var out []domain.TrackingMetric
	for _, r := range raws {
		var rm rawMetric
		if err := json.Unmarshal(r, &rm); err != nil {
			continue
		}
		name := strings.TrimSpace(rm.Name)
		if name == "" {
			continue
		}
		out = append(out, domain.TrackingMetric{
			Name:      name,
			Target:    strings.TrimSpace(rm.Target),
			Frequency: strings.TrimSpace(rm.Frequency),
		})
	}
	return out
}

func clampPercent(n int) int {
	return min(max(n, 0), 100)
}

// ValidateScheduleItem checks one item against the schedule contract.
func ValidateScheduleItem(item domain.ScheduleItem, requireDate bool) error {
	if strings.TrimSpace(item.Title) == "" {
		return errors.New("title is required")
	}
	if !item.Category.IsValid() {
		return fmt.Errorf("invalid category %q", item.Category)
	}
	if _, err := time.Parse(clockLayout, item.StartTime); err != nil {
		return fmt.Errorf("startTime %q is not HH:MM", item.StartTime)
	}
	if _, err := time.Parse(clockLayout, item.EndTime); err != nil {
		return fmt.Errorf("endTime %q is not HH:MM", item.EndTime)
	}
	if balance.ClockMinutes(item.StartTime, item.EndTime) <= 0 {
		return fmt.Errorf("%q ends before it starts", item.Title)
	}
	if requireDate || item.Date != "" {
		if _, err := time.Parse(dateLayout, item.Date); err != nil {
			return fmt.Errorf("date %q is not YYYY-MM-DD", item.Date)
		}
	}
	return nil
}

// ValidateSchedulePlan checks a schedule plan regardless of which path
// produced it.
func ValidateSchedulePlan(p domain.SchedulePlan) error {
	if len(p.Schedule) == 0 {
		return errors.New("schedule is empty")
	}
	for i, item := range p.Schedule {
		if err := ValidateScheduleItem(item, false); err != nil {
			return fmt.Errorf("schedule[%d]: %w", i, err)
		}
	}
	if err := validateBreakdown(p.BalanceAnalysis); err != nil {
		return err
	}
	if len(p.Suggestions) > maxSuggestions {
		return fmt.Errorf("too many suggestions: %d", len(p.Suggestions))
	}
	for _, s := range p.Suggestions {
		if strings.TrimSpace(s) == "" {
			return errors.New("empty suggestion")
		}
	}
	return nil
}

func validateBreakdown(b domain.Breakdown) error {
	for _, c := range domain.Categories {
		v, ok := b[c]
		if !ok {
			return fmt.Errorf("balanceAnalysis is missing %s", c)
		}
		if v < 0 || v > 100 {
			return fmt.Errorf("balanceAnalysis %s out of range: %d", c, v)
		}
	}
	return nil
}

// ValidateGoalPlan checks a goal plan regardless of which path produced it.
func ValidateGoalPlan(p domain.GoalPlan) error {
	if strings.TrimSpace(p.GoalTitle) == "" {
		return errors.New("goalTitle is required")
	}
	if p.TimeframeDays <= 0 {
		return errors.New("timeframeDays must be positive")
	}
	if len(p.Milestones) == 0 {
		return errors.New("milestones are empty")
	}
	for i, m := range p.Milestones {
		if strings.TrimSpace(m.Title) == "" {
			return fmt.Errorf("milestones[%d]: title is required", i)
		}
		if m.WeekIndex < 1 {
			return fmt.Errorf("milestones[%d]: week must be >= 1", i)
		}
		if _, err := time.Parse(dateLayout, m.DueDate); err != nil {
			return fmt.Errorf("milestones[%d]: dueDate %q is not YYYY-MM-DD", i, m.DueDate)
		}
		switch m.Priority {
		case domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow:
		default:
			return fmt.Errorf("milestones[%d]: invalid priority %q", i, m.Priority)
		}
	}
	if len(p.DailyTasks) == 0 {
		return errors.New("dailyTasks are empty")
	}
	for i, t := range p.DailyTasks {
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("dailyTasks[%d]: title is required", i)
		}
		if !t.Category.IsValid() {
			return fmt.Errorf("dailyTasks[%d]: invalid category %q", i, t.Category)
		}
		if t.DurationMinutes <= 0 {
			return fmt.Errorf("dailyTasks[%d]: durationMinutes must be positive", i)
		}
	}
	if len(p.Schedule) == 0 {
		return errors.New("schedule is empty")
	}
	for i, item := range p.Schedule {
		if err := ValidateScheduleItem(item, true); err != nil {
			return fmt.Errorf("schedule[%d]: %w", i, err)
		}
	}
	a := p.Analysis
	if a.FeasibilityScore < 0 || a.FeasibilityScore > 100 || a.EstimatedSuccessRate < 0 || a.EstimatedSuccessRate > 100 {
		return errors.New("analysis scores must be within 0-100")
	}
	if len(a.KeySuccessFactors) == 0 || len(a.PotentialChallenges) == 0 || len(a.RecommendedAdjustments) == 0 {
		return errors.New("analysis lists must not be empty")
	}
	if len(p.TrackingMetrics) == 0 {
		return errors.New("trackingMetrics are empty")
	}
	for i, m := range p.TrackingMetrics {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("trackingMetrics[%d]: name is required", i)
		}
	}
	return nil
}
