package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/repository"
	"github.com/google/uuid"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"

	defaultHistoryDays = 7
)

// dayBounds returns local midnight of day and of the following day.
func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

// eventFromItem converts a schedule item into an event. Items without a date
// are placed on day.
func eventFromItem(item domain.ScheduleItem, goalID string, day time.Time, now time.Time) (*domain.Event, error) {
	date := item.Date
	if date == "" {
		date = day.Format(dateLayout)
	}
	start, err := time.ParseInLocation(dateTimeLayout, date+" "+item.StartTime, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: start of %q: %v", ErrInvalidEvent, item.Title, err)
	}
	end, err := time.ParseInLocation(dateTimeLayout, date+" "+item.EndTime, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: end of %q: %v", ErrInvalidEvent, item.Title, err)
	}

	e := &domain.Event{
		ID:          uuid.New().String(),
		GoalID:      goalID,
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
		StartTime:   start,
		EndTime:     end,
		CreatedAt:   now.UTC(),
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return e, nil
}

// scheduleItems renders stored events as schedule items for prompt context.
func scheduleItems(events []*domain.Event) []domain.ScheduleItem {
	items := make([]domain.ScheduleItem, 0, len(events))
	for _, e := range events {
		items = append(items, domain.ScheduleItem{
			Title:     e.Title,
			Category:  e.Category,
			StartTime: e.StartTime.Format("15:04"),
			EndTime:   e.EndTime.Format("15:04"),
			Date:      e.StartTime.Format(dateLayout),
		})
	}
	return items
}

// activeGoalTitles lists the titles of active goals, newest first.
func activeGoalTitles(ctx context.Context, goals repository.GoalRepo) ([]string, error) {
	list, err := goals.List(ctx, domain.GoalActive)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(list))
	for _, g := range list {
		titles = append(titles, g.Title)
	}
	return titles, nil
}

// mergeTitles appends extra to base, skipping case-insensitive duplicates
// and blanks.
func mergeTitles(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, s := range list {
			s = strings.TrimSpace(s)
			key := strings.ToLower(s)
			if s == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, s)
		}
	}
	return out
}
