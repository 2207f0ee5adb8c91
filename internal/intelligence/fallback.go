package intelligence

import (
	"fmt"
	"hash/fnv"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/alexanderramin/lifeplan/internal/balance"
	"github.com/alexanderramin/lifeplan/internal/domain"
)

// Fallback generators are pure and deterministic: they never fail and their
// output always passes the same validators applied to model output.

const (
	fallbackScheduleDays = 14
	fallbackFeasibility  = 75
	fallbackSuccessRate  = 70
	reviewMinutes        = 15
	movementMinutes      = 10
	maxTitleLen          = 60
)

type templateBlock struct {
	title       string
	category    domain.Category
	start, end  string
	description string
}

// The template's durations (75/120/60/30/15 minutes) reproduce the optimal
// distribution exactly.
var (
	morningWorkout = templateBlock{"Morning workout", domain.CategoryHealth, "07:00", "08:15", "Cardio and stretching to start the day"}
	deepWork       = templateBlock{"Focused work block", domain.CategoryWork, "09:00", "11:00", "Most important task first, notifications off"}
	socialLunch    = templateBlock{"Lunch with a friend or colleague", domain.CategorySocial, "12:30", "13:00", "Step away from the desk and connect"}
	unwind         = templateBlock{"Unwind", domain.CategoryLeisure, "18:00", "19:00", "A walk, a hobby or something you enjoy"}
	learning       = templateBlock{"Learn something new", domain.CategoryLearning, "20:00", "20:15", "Read or practise a skill for 15 minutes"}
)

var fallbackScheduleTips = []string{
	"Protect the focused work block from meetings and messages.",
	"Keep your workout at the same time each day to build the habit.",
	"Wind down without screens for 30 minutes before bed.",
}

// FallbackSchedule returns a fixed five-activity day covering every
// category, shifted to honour the user's workout preference.
func FallbackSchedule(req ScheduleRequest) domain.SchedulePlan {
	blocks := []templateBlock{morningWorkout, deepWork, socialLunch, unwind, learning}

	pref := strings.ToLower(req.Preferences.WorkoutTime)
	switch {
	case strings.Contains(pref, "evening") || strings.Contains(pref, "night"):
		blocks[0] = templateBlock{"Evening workout", domain.CategoryHealth, "18:00", "19:15", morningWorkout.description}
		blocks[3] = templateBlock{unwind.title, unwind.category, "19:30", "20:30", unwind.description}
		blocks[4] = templateBlock{learning.title, learning.category, "21:00", "21:15", learning.description}
	case strings.Contains(pref, "afternoon") || strings.Contains(pref, "lunch"):
		blocks[0] = templateBlock{"Afternoon workout", domain.CategoryHealth, "13:00", "14:15", morningWorkout.description}
	}

	goals := nonEmpty(req.Goals)
	items := make([]domain.ScheduleItem, 0, len(blocks))
	for _, b := range blocks {
		item := domain.ScheduleItem{
			Title:       b.title,
			Category:    b.category,
			StartTime:   b.start,
			EndTime:     b.end,
			Description: b.description,
		}
		if b.category == domain.CategoryWork && len(goals) > 0 {
			item.Description = "Make progress on: " + goals[0]
		}
		if b.category == domain.CategoryLearning && len(goals) > 1 {
			item.Description = "Make progress on: " + goals[1]
		}
		items = append(items, item)
	}

	return domain.SchedulePlan{
		Schedule:        items,
		BalanceAnalysis: balance.Aggregate(balance.EntriesFromSchedule(items)).Breakdown,
		Suggestions:     append([]string(nil), fallbackScheduleTips...),
		Source:          domain.SourceFallback,
	}
}

var fallbackChatReplies = []string{
	"That sounds like a good step. Try blocking a specific time for it today so it does not get crowded out.",
	"Small, consistent progress beats big bursts. What is one thing you could do in the next 30 minutes?",
	"Remember to balance focus with rest. A short walk or a chat with a friend can recharge you.",
	"You are doing well by thinking about this. Pick the most important task and start there.",
	"Keep an eye on how your time splits across work, health and the people you care about.",
}

// FallbackChatReply picks a generic encouragement. The choice depends only
// on the message so repeated calls agree.
func FallbackChatReply(message string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.TrimSpace(message)))
	return fallbackChatReplies[h.Sum32()%uint32(len(fallbackChatReplies))]
}

// FallbackSuggestions derives suggestions from the balance result itself.
func FallbackSuggestions(result domain.BalanceResult) []string {
	if result.Empty {
		return balance.EmptyResult().Suggestions
	}
	return balance.Suggestions(result.Breakdown)
}

type skillRule struct {
	keywords []string
	skill    string
	category domain.Category
}

var skillRules = []skillRule{
	{[]string{"code", "coding", "program", "programming", "python", "javascript", "golang", "software", "developer", "rust"}, "programming", domain.CategoryLearning},
	{[]string{"spanish", "french", "german", "japanese", "italian", "chinese", "english", "language", "languages"}, "language study", domain.CategoryLearning},
	{[]string{"run", "running", "marathon", "5k", "10k", "gym", "fitness", "weight", "workout", "exercise", "strength", "swim", "yoga"}, "fitness training", domain.CategoryHealth},
	{[]string{"guitar", "piano", "violin", "drums", "music", "sing", "singing"}, "music practice", domain.CategoryLearning},
	{[]string{"write", "writing", "novel", "blog", "book", "poetry"}, "writing", domain.CategoryLearning},
	{[]string{"promotion", "career", "job", "interview", "business", "startup", "certification"}, "career development", domain.CategoryWork},
	{[]string{"friends", "network", "networking", "relationship", "family", "community"}, "social connection", domain.CategorySocial},
	{[]string{"meditate", "meditation", "sleep", "mindfulness", "stress"}, "wellbeing practice", domain.CategoryHealth},
}

var wordPattern = regexp.MustCompile(`[a-z0-9]+`)

// detectSkill maps a goal description onto a skill label and the category
// its practice belongs to.
func detectSkill(description string) (string, domain.Category) {
	words := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(strings.ToLower(description), -1) {
		words[w] = true
	}
	for _, rule := range skillRules {
		for _, k := range rule.keywords {
			if words[k] {
				return rule.skill, rule.category
			}
		}
	}
	return "your goal", domain.CategoryLearning
}

var milestonePhases = []struct{ title, description string }{
	{"Foundations", "Set up a routine and learn the basics of %s"},
	{"Build momentum", "Practise %s daily and track what works"},
	{"Deepen practice", "Take on harder %s challenges and fix weak spots"},
	{"Review and consolidate", "Measure progress in %s and plan the next stage"},
}

// FallbackGoalPlan synthesizes weekly milestones, daily tasks and a
// two-week schedule for the goal.
func FallbackGoalPlan(req GoalPlanRequest, now time.Time) domain.GoalPlan {
	params := req.Params()
	base := startOfDay(now)
	skill, cat := detectSkill(req.Description)
	title := goalTitle(req.Description)

	milestones := make([]domain.Milestone, 0, params.Weeks)
	for w := 1; w <= params.Weeks; w++ {
		phase := milestonePhases[phaseIndex(w, params.Weeks)]
		priority := domain.PriorityMedium
		if w == 1 || w == params.Weeks {
			priority = domain.PriorityHigh
		}
		milestones = append(milestones, domain.Milestone{
			Title:       fmt.Sprintf("Week %d: %s", w, phase.title),
			Description: fmt.Sprintf(phase.description, skill),
			WeekIndex:   w,
			DueDate:     base.AddDate(0, 0, w*7).Format(dateLayout),
			Priority:    priority,
		})
	}

	budget := int(math.Round(params.DailyHours * 60))
	practice := max(budget-reviewMinutes, reviewMinutes)
	timeOfDay := "evening"
	if cat == domain.CategoryHealth && strings.Contains(strings.ToLower(req.Preferences.WorkoutTime), "morning") {
		timeOfDay = "morning"
	}
	tasks := []domain.DailyTask{
		{
			Title:           "Core " + skill + " session",
			Description:     "Focused practice on this week's milestone",
			Category:        cat,
			DurationMinutes: practice,
			TimeOfDay:       timeOfDay,
		},
		{
			Title:           "Review progress and plan tomorrow",
			Description:     "Note what went well and what to try next",
			Category:        domain.CategoryLearning,
			DurationMinutes: reviewMinutes,
			TimeOfDay:       timeOfDay,
		},
	}
	if cat != domain.CategoryHealth {
		tasks = append(tasks, domain.DailyTask{
			Title:           "Move for ten minutes",
			Description:     "A short walk or stretch between sessions",
			Category:        domain.CategoryHealth,
			DurationMinutes: movementMinutes,
			TimeOfDay:       "afternoon",
		})
	}

	startMin := sessionStart(req.Preferences, cat, timeOfDay)
	startMin = min(startMin, lastMinuteOfDay-practice)
	days := min(fallbackScheduleDays, params.TimeframeDays)
	schedule := make([]domain.ScheduleItem, 0, days)
	for i := 0; i < days; i++ {
		week := min(i/7+1, len(milestones))
		schedule = append(schedule, domain.ScheduleItem{
			Title:       tasks[0].Title,
			Category:    cat,
			Date:        base.AddDate(0, 0, i).Format(dateLayout),
			StartTime:   formatClock(startMin),
			EndTime:     formatClock(startMin + practice),
			Description: "Focus: " + milestones[week-1].Title,
		})
	}

	perWeek := 5
	return domain.GoalPlan{
		GoalTitle:     title,
		Description:   fmt.Sprintf("A %d-week plan for %s with %.1f hours of daily practice.", params.Weeks, skill, params.DailyHours),
		TimeframeDays: params.TimeframeDays,
		Milestones:    milestones,
		DailyTasks:    tasks,
		Schedule:      schedule,
		Analysis: domain.PlanAnalysis{
			FeasibilityScore:     fallbackFeasibility,
			EstimatedSuccessRate: fallbackSuccessRate,
			KeySuccessFactors: []string{
				"Practise " + skill + " at the same time every day",
				"Track progress weekly against the milestones",
				"Start small and increase difficulty gradually",
			},
			PotentialChallenges: []string{
				"Losing motivation after the first week",
				"Competing commitments crowding out practice time",
			},
			RecommendedAdjustments: []string{
				"Reduce the daily session rather than skipping it on busy days",
				"Review the plan at the end of each week and adjust the next milestone",
			},
		},
		TrackingMetrics: []domain.TrackingMetric{
			{Name: "Practice days", Target: fmt.Sprintf("%d per week", perWeek), Frequency: "weekly"},
			{Name: "Hours invested", Target: strconv.FormatFloat(params.DailyHours*float64(perWeek), 'f', -1, 64) + " per week", Frequency: "weekly"},
			{Name: "Milestones completed", Target: fmt.Sprintf("%d of %d", params.Weeks, params.Weeks), Frequency: "weekly"},
		},
		Source: domain.SourceFallback,
	}
}

// phaseIndex spreads the four phases across any number of weeks: the first
// and last weeks get the opening and closing phases.
func phaseIndex(week, weeks int) int {
	switch {
	case week == 1:
		return 0
	case week == weeks:
		return len(milestonePhases) - 1
	case week <= (weeks+1)/2:
		return 1
	default:
		return 2
	}
}

// sessionStart picks the daily session start in minutes after midnight.
func sessionStart(p domain.Preferences, cat domain.Category, timeOfDay string) int {
	for _, window := range p.AvailableTime {
		start, _, _ := strings.Cut(window, "-")
		if clock, ok := normalizeClock(start); ok {
			t, _ := time.Parse(clockLayout, clock)
			return t.Hour()*60 + t.Minute()
		}
	}
	if cat == domain.CategoryHealth && timeOfDay == "morning" {
		return 7 * 60
	}
	return 19 * 60
}

func goalTitle(description string) string {
	t := strings.Join(strings.Fields(description), " ")
	if t == "" {
		return "New goal"
	}
	if r := []rune(t); len(r) > maxTitleLen {
		t = strings.TrimSpace(string(r[:maxTitleLen-3])) + "..."
	}
	r := []rune(t)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var eventKeywords = []struct {
	category domain.Category
	words    []string
}{
	{domain.CategoryHealth, []string{"gym", "workout", "run", "running", "yoga", "swim", "doctor", "dentist", "exercise", "walk", "hike", "training"}},
	{domain.CategoryWork, []string{"meeting", "work", "call", "deadline", "report", "client", "presentation", "standup", "review", "office"}},
	{domain.CategorySocial, []string{"dinner", "friends", "friend", "party", "coffee", "date", "family", "birthday", "drinks", "lunch"}},
	{domain.CategoryLearning, []string{"study", "class", "course", "read", "reading", "learn", "lesson", "lecture", "homework", "practice"}},
	{domain.CategoryLeisure, []string{"movie", "game", "games", "relax", "tv", "concert", "music", "book"}},
}

var (
	clockTimePattern = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*(am|pm)?\b`)
	meridiemPattern  = regexp.MustCompile(`\b(\d{1,2})\s*(am|pm)\b`)
	atHourPattern    = regexp.MustCompile(`\bat\s+(\d{1,2})\b`)
	forDuration      = regexp.MustCompile(`\bfor\s+(\d+(?:\.\d+)?)\s*(hours?|hrs?|h|minutes?|mins?|m)\b`)
	leadingFiller    = regexp.MustCompile(`(?i)^(please\s+)?(add|schedule|book|remind me to|i have|i've got|i'm going to|i will|i need to)\s+`)
)

// FallbackEventDraft extracts an event from a message with keyword and
// time-pattern rules. Without a recognizable time the event starts at the
// next full hour; without an end it lasts one hour.
func FallbackEventDraft(message string, now time.Time) domain.ScheduleItem {
	lower := strings.ToLower(message)
	words := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(lower, -1) {
		words[w] = true
	}

	cat := domain.CategoryLeisure
match:
	for _, kw := range eventKeywords {
		for _, w := range kw.words {
			if words[w] {
				cat = kw.category
				break match
			}
		}
	}

	date := startOfDay(now)
	switch {
	case words["tomorrow"]:
		date = date.AddDate(0, 0, 1)
	default:
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			if words[strings.ToLower(wd.String())] {
				diff := (int(wd) - int(date.Weekday()) + 7) % 7
				if diff == 0 {
					diff = 7
				}
				date = date.AddDate(0, 0, diff)
				break
			}
		}
	}

	times := extractClockTimes(lower)
	var start, end int
	switch {
	case len(times) > 0:
		start = times[0]
	case words["tomorrow"] || !sameDay(date, now):
		start = 9 * 60
	default:
		start = min((now.Hour()+1)*60, 22*60)
	}
	duration := defaultEventMinutes
	if m := forDuration.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.ParseFloat(m[1], 64)
		if strings.HasPrefix(m[2], "h") {
			n *= 60
		}
		if n >= 1 {
			duration = int(math.Round(n))
		}
	}
	if len(times) > 1 && times[1] > start {
		end = times[1]
	} else {
		end = start + duration
	}
	start = min(start, lastMinuteOfDay-1)
	end = min(max(end, start+1), lastMinuteOfDay)

	return domain.ScheduleItem{
		Title:     eventTitle(message),
		Category:  cat,
		Date:      date.Format(dateLayout),
		StartTime: formatClock(start),
		EndTime:   formatClock(end),
	}
}

// extractClockTimes returns the times mentioned in s, in minutes after
// midnight, in order of appearance.
func extractClockTimes(s string) []int {
	type found struct{ pos, minutes int }
	var all []found
	var clockSpans [][2]int
	for _, m := range clockTimePattern.FindAllStringSubmatchIndex(s, -1) {
		clockSpans = append(clockSpans, [2]int{m[0], m[1]})
		h, _ := strconv.Atoi(s[m[2]:m[3]])
		mm, _ := strconv.Atoi(s[m[4]:m[5]])
		mer := ""
		if m[6] >= 0 {
			mer = s[m[6]:m[7]]
		}
		if v, ok := toMinutes(h, mm, mer); ok {
			all = append(all, found{m[0], v})
		}
	}
	for _, m := range meridiemPattern.FindAllStringSubmatchIndex(s, -1) {
		// The minutes of "7:10 pm" also read as "10 pm".
		if insideSpan(m[0], clockSpans) {
			continue
		}
		h, _ := strconv.Atoi(s[m[2]:m[3]])
		if v, ok := toMinutes(h, 0, s[m[4]:m[5]]); ok {
			all = append(all, found{m[0], v})
		}
	}
	if len(all) == 0 {
		if m := atHourPattern.FindStringSubmatch(s); m != nil {
			h, _ := strconv.Atoi(m[1])
			// "at 5" on its own almost always means the afternoon.
			if h >= 1 && h < 8 {
				h += 12
			}
			if v, ok := toMinutes(h, 0, ""); ok {
				all = append(all, found{0, v})
			}
		}
	}
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && all[j].pos < all[j-1].pos; j-- {
			all[j], all[j-1] = all[j-1], all[j]
		}
	}
	out := make([]int, len(all))
	for i, f := range all {
		out[i] = f.minutes
	}
	return out
}

func insideSpan(pos int, spans [][2]int) bool {
	for _, sp := range spans {
		if pos >= sp[0] && pos < sp[1] {
			return true
		}
	}
	return false
}

func toMinutes(h, m int, meridiem string) (int, bool) {
	switch meridiem {
	case "am":
		if h < 1 || h > 12 {
			return 0, false
		}
		if h == 12 {
			h = 0
		}
	case "pm":
		if h < 1 || h > 12 {
			return 0, false
		}
		if h != 12 {
			h += 12
		}
	}
	if h > 23 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func eventTitle(message string) string {
	t := leadingFiller.ReplaceAllString(strings.TrimSpace(message), "")
	t = strings.TrimRight(t, ".!?")
	return goalTitle(t)
}
