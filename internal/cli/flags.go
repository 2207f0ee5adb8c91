package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

// categoryValue is a pflag.Value restricted to the category taxonomy.
type categoryValue struct {
	target *domain.Category
}

var _ pflag.Value = (*categoryValue)(nil)

func newCategoryValue(def domain.Category, p *domain.Category) *categoryValue {
	*p = def
	return &categoryValue{target: p}
}

func (v *categoryValue) String() string {
	if v.target == nil {
		return ""
	}
	return string(*v.target)
}

func (v *categoryValue) Set(s string) error {
	c, ok := domain.ParseCategory(s)
	if !ok {
		return fmt.Errorf("must be one of %s", strings.Join(domain.CategoryNames(), ", "))
	}
	*v.target = c
	return nil
}

func (v *categoryValue) Type() string { return "category" }

// addCategoryFlag registers --category with shell completion of the
// category names.
func addCategoryFlag(cmd *cobra.Command, p *domain.Category, def domain.Category, usage string) {
	cmd.Flags().VarP(newCategoryValue(def, p), "category", "c", usage)
	_ = cmd.RegisterFlagCompletionFunc("category", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return domain.CategoryNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

// parseDay resolves "today", "tomorrow", "yesterday" or YYYY-MM-DD to local
// midnight. Empty means today.
func parseDay(s string, now time.Time) (time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD, today, tomorrow or yesterday", s)
	}
	return d, nil
}

// atClock places an HH:MM time on day.
func atClock(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use HH:MM", clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// preferenceFlags are the scheduling preferences shared by schedule and plan.
type preferenceFlags struct {
	workHours    string
	workoutTime  string
	studyTime    string
	available    []string
	restrictions []string
}

func (p *preferenceFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&p.workHours, "work-hours", "", `Work hours, e.g. "09:00-17:00"`)
	f.StringVar(&p.workoutTime, "workout-time", "", "Preferred workout time (morning, afternoon, evening)")
	f.StringVar(&p.studyTime, "study-time", "", `Daily time for the goal, e.g. "2 hours"`)
	f.StringSliceVar(&p.available, "available", nil, `Free time windows, e.g. "18:00-21:00" (repeatable)`)
	f.StringSliceVar(&p.restrictions, "restriction", nil, "Constraints to respect (repeatable)")
}

func (p *preferenceFlags) preferences() domain.Preferences {
	return domain.Preferences{
		WorkHours:     p.workHours,
		WorkoutTime:   p.workoutTime,
		StudyTime:     p.studyTime,
		AvailableTime: p.available,
		Restrictions:  p.restrictions,
	}
}
