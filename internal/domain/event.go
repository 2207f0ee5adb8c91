package domain

import (
	"fmt"
	"strings"
	"time"
)

// Event is a tracked calendar block.
type Event struct {
	ID          string
	GoalID      string // empty when not generated from a goal plan
	Title       string
	Description string
	Category    Category
	StartTime   time.Time
	EndTime     time.Time
	CreatedAt   time.Time
}

// DurationMinutes returns the length of the event in whole minutes.
// Inverted events count as zero.
func (e *Event) DurationMinutes() int {
	d := e.EndTime.Sub(e.StartTime)
	if d < 0 {
		return 0
	}
	return int(d.Minutes())
}

// Validate checks the fields required before an event is stored.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if !e.Category.IsValid() {
		return fmt.Errorf("category %q must be one of %s", e.Category, strings.Join(CategoryNames(), ", "))
	}
	if e.StartTime.IsZero() || e.EndTime.IsZero() {
		return fmt.Errorf("start and end time are required")
	}
	if e.EndTime.Before(e.StartTime) {
		return fmt.Errorf("end time %s is before start time %s",
			e.EndTime.Format("15:04"), e.StartTime.Format("15:04"))
	}
	return nil
}
