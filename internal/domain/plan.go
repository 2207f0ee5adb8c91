package domain

// GenerationSource records which path produced a generated result.
type GenerationSource string

const (
	SourceAI       GenerationSource = "ai"
	SourceFallback GenerationSource = "fallback"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority maps free text to a Priority, defaulting to medium.
func ParsePriority(s string) Priority {
	switch Priority(s) {
	case PriorityHigh, PriorityLow:
		return Priority(s)
	default:
		return PriorityMedium
	}
}

// ScheduleItem is one block of a generated schedule. Times are "HH:MM"
// (24-hour); Date is "YYYY-MM-DD" and only set for dated plans.
type ScheduleItem struct {
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Date        string   `json:"date,omitempty"`
	Description string   `json:"description,omitempty"`
}

// SchedulePlan is the result of schedule generation.
type SchedulePlan struct {
	Schedule        []ScheduleItem   `json:"schedule"`
	BalanceAnalysis Breakdown        `json:"balanceAnalysis"`
	Suggestions     []string         `json:"suggestions"`
	Source          GenerationSource `json:"source"`
}

type Milestone struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	WeekIndex   int      `json:"week"`
	DueDate     string   `json:"dueDate"`
	Priority    Priority `json:"priority"`
}

type DailyTask struct {
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Category        Category `json:"category"`
	DurationMinutes int      `json:"durationMinutes"`
	TimeOfDay       string   `json:"timeOfDay,omitempty"`
}

type PlanAnalysis struct {
	FeasibilityScore       int      `json:"feasibilityScore"`
	EstimatedSuccessRate   int      `json:"estimatedSuccessRate"`
	KeySuccessFactors      []string `json:"keySuccessFactors"`
	PotentialChallenges    []string `json:"potentialChallenges"`
	RecommendedAdjustments []string `json:"recommendedAdjustments"`
}

type TrackingMetric struct {
	Name      string `json:"name"`
	Target    string `json:"target"`
	Frequency string `json:"frequency"`
}

// GoalPlan is a multi-week decomposition of a goal.
type GoalPlan struct {
	GoalTitle       string           `json:"goalTitle"`
	Description     string           `json:"description"`
	TimeframeDays   int              `json:"timeframeDays"`
	Milestones      []Milestone      `json:"milestones"`
	DailyTasks      []DailyTask      `json:"dailyTasks"`
	Schedule        []ScheduleItem   `json:"schedule"`
	Analysis        PlanAnalysis     `json:"analysis"`
	TrackingMetrics []TrackingMetric `json:"trackingMetrics"`
	Source          GenerationSource `json:"source"`
}

// Preferences are the user's stated scheduling constraints.
type Preferences struct {
	WorkHours     string   `json:"workHours,omitempty"`   // e.g. "09:00-17:00"
	WorkoutTime   string   `json:"workoutTime,omitempty"` // e.g. "morning"
	StudyTime     string   `json:"studyTime,omitempty"`   // e.g. "2 hours"
	AvailableTime []string `json:"availableTime,omitempty"`
	Restrictions  []string `json:"restrictions,omitempty"`
}
