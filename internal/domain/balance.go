package domain

import "time"

// Breakdown maps each category to an integer percentage of tracked time.
type Breakdown map[Category]int

// EmptyBreakdown returns a breakdown with every category present and zero.
func EmptyBreakdown() Breakdown {
	b := make(Breakdown, len(Categories))
	for _, c := range Categories {
		b[c] = 0
	}
	return b
}

// Clone returns an independent copy of b.
func (b Breakdown) Clone() Breakdown {
	out := make(Breakdown, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Sum adds up the percentages of the known categories.
func (b Breakdown) Sum() int {
	total := 0
	for _, c := range Categories {
		total += b[c]
	}
	return total
}

// BalanceResult is the scored analysis of one day's events.
type BalanceResult struct {
	Score       int       `json:"score"`
	Breakdown   Breakdown `json:"breakdown"`
	Suggestions []string  `json:"suggestions"`
	// Empty is set when there was no tracked time to score.
	Empty bool `json:"empty,omitempty"`
}

// BalanceSnapshot is a persisted BalanceResult for a calendar day.
type BalanceSnapshot struct {
	ID          string
	Date        time.Time // midnight, local
	Score       int
	Breakdown   Breakdown
	Suggestions []string
	EventCount  int
	CreatedAt   time.Time
}
