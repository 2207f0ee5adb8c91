// Package balance turns categorized time blocks into a percentage breakdown
// and a 0-100 life-balance score.
package balance

import (
	"math"
	"time"

	"github.com/alexanderramin/lifeplan/internal/domain"
)

// Entry is the minimal input to aggregation: a category and a duration.
type Entry struct {
	Category domain.Category
	Minutes  int
}

// Aggregation holds per-category minutes and the derived percentages.
type Aggregation struct {
	Minutes      map[domain.Category]int
	TotalMinutes int
	Breakdown    domain.Breakdown
}

// Empty reports whether no tracked time was aggregated. Callers must not
// score an empty aggregation.
func (a Aggregation) Empty() bool {
	return a.TotalMinutes == 0
}

// Aggregate sums minutes per category and converts them into rounded
// percentages of the total. Entries with an unknown category are dropped and
// negative durations count as zero. Rounding can leave the sum one or two
// points away from 100; that drift is not corrected.
func Aggregate(entries []Entry) Aggregation {
	agg := Aggregation{
		Minutes:   make(map[domain.Category]int, len(domain.Categories)),
		Breakdown: domain.EmptyBreakdown(),
	}
	for _, c := range domain.Categories {
		agg.Minutes[c] = 0
	}

	for _, e := range entries {
		if !e.Category.IsValid() {
			continue
		}
		m := e.Minutes
		if m < 0 {
			m = 0
		}
		agg.Minutes[e.Category] += m
		agg.TotalMinutes += m
	}

	if agg.TotalMinutes == 0 {
		return agg
	}

	total := float64(agg.TotalMinutes)
	for _, c := range domain.Categories {
		agg.Breakdown[c] = int(math.Round(float64(agg.Minutes[c]) / total * 100))
	}
	return agg
}

// EntriesFromEvents converts stored events into aggregation entries.
func EntriesFromEvents(events []*domain.Event) []Entry {
	entries := make([]Entry, 0, len(events))
	for _, e := range events {
		if e == nil {
			continue
		}
		entries = append(entries, Entry{Category: e.Category, Minutes: e.DurationMinutes()})
	}
	return entries
}

// EntriesFromSchedule converts "HH:MM" schedule items into entries.
// Items whose times do not parse contribute nothing.
func EntriesFromSchedule(items []domain.ScheduleItem) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, it := range items {
		entries = append(entries, Entry{
			Category: it.Category,
			Minutes:  ClockMinutes(it.StartTime, it.EndTime),
		})
	}
	return entries
}

// ClockMinutes returns end-start in minutes for two "HH:MM" values, or 0
// when either fails to parse or end precedes start.
func ClockMinutes(start, end string) int {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return 0
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return 0
	}
	d := int(e.Sub(s).Minutes())
	if d < 0 {
		return 0
	}
	return d
}
