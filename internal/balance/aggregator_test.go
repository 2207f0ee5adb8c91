package balance

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_Empty(t *testing.T) {
	agg := Aggregate(nil)

	assert.True(t, agg.Empty())
	assert.Equal(t, 0, agg.TotalMinutes)
	require.Len(t, agg.Breakdown, len(domain.Categories))
	for _, c := range domain.Categories {
		assert.Equal(t, 0, agg.Breakdown[c], "category %s", c)
	}
}

func TestAggregate_DropsUnknownCategories(t *testing.T) {
	agg := Aggregate([]Entry{
		{Category: domain.CategoryWork, Minutes: 60},
		{Category: "chores", Minutes: 600},
		{Category: domain.CategoryHealth, Minutes: 60},
	})

	assert.Equal(t, 120, agg.TotalMinutes)
	assert.Equal(t, 50, agg.Breakdown[domain.CategoryWork])
	assert.Equal(t, 50, agg.Breakdown[domain.CategoryHealth])
	_, present := agg.Minutes["chores"]
	assert.False(t, present)
}

func TestAggregate_NegativeDurationClampedToZero(t *testing.T) {
	agg := Aggregate([]Entry{
		{Category: domain.CategoryWork, Minutes: -30},
		{Category: domain.CategorySocial, Minutes: 30},
	})

	assert.Equal(t, 30, agg.TotalMinutes)
	assert.Equal(t, 0, agg.Breakdown[domain.CategoryWork])
	assert.Equal(t, 100, agg.Breakdown[domain.CategorySocial])
}

func TestAggregate_OnlyZeroDurationsIsEmpty(t *testing.T) {
	agg := Aggregate([]Entry{{Category: domain.CategoryWork, Minutes: 0}})
	assert.True(t, agg.Empty())
}

func TestAggregate_RoundsToNearest(t *testing.T) {
	// 1/3 and 2/3 of the day.
	agg := Aggregate([]Entry{
		{Category: domain.CategoryWork, Minutes: 20},
		{Category: domain.CategoryLeisure, Minutes: 40},
	})
	assert.Equal(t, 33, agg.Breakdown[domain.CategoryWork])
	assert.Equal(t, 67, agg.Breakdown[domain.CategoryLeisure])
}

// TestAggregate_Invariants_PercentagesSumNear100 property-tests the rounding
// tolerance of the breakdown for random non-empty inputs.
func TestAggregate_Invariants_PercentagesSumNear100(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 500; trial++ {
		n := rng.Intn(12) + 1
		entries := make([]Entry, n)
		for i := range entries {
			entries[i] = Entry{
				Category: domain.Categories[rng.Intn(len(domain.Categories))],
				Minutes:  rng.Intn(300) + 1,
			}
		}

		agg := Aggregate(entries)
		sum := agg.Breakdown.Sum()
		assert.InDelta(t, 100, sum, 2, "trial %d: breakdown %v sums to %d", trial, agg.Breakdown, sum)
	}
}

func TestEntriesFromEvents(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	events := []*domain.Event{
		{Category: domain.CategoryWork, StartTime: start, EndTime: start.Add(90 * time.Minute)},
		{Category: domain.CategoryHealth, StartTime: start, EndTime: start.Add(-time.Hour)},
		nil,
	}

	entries := EntriesFromEvents(events)

	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Category: domain.CategoryWork, Minutes: 90}, entries[0])
	assert.Equal(t, Entry{Category: domain.CategoryHealth, Minutes: 0}, entries[1])
}

func TestClockMinutes(t *testing.T) {
	assert.Equal(t, 75, ClockMinutes("07:00", "08:15"))
	assert.Equal(t, 0, ClockMinutes("08:00", "07:00"))
	assert.Equal(t, 0, ClockMinutes("8am", "09:00"))
}
