package balance

import (
	"fmt"
	"math"
	"sort"

	"github.com/alexanderramin/lifeplan/internal/domain"
)

const (
	// Damping scales the weighted deviation before it is subtracted.
	Damping = 0.4

	// SuggestionThreshold is the deviation, in percentage points, above
	// which a category gets a suggestion.
	SuggestionThreshold = 15

	// MaxSuggestions caps the number of suggestions per result.
	MaxSuggestions = 3

	// EmptyScore is returned when there is no tracked time to score.
	EmptyScore = 60
)

// Weights scale each category's deviation from the optimal distribution.
type Weights map[domain.Category]float64

// DefaultWeights weighs health and work above the other categories.
func DefaultWeights() Weights {
	return Weights{
		domain.CategoryWork:     1.0,
		domain.CategoryHealth:   1.2,
		domain.CategoryLeisure:  0.8,
		domain.CategorySocial:   0.6,
		domain.CategoryLearning: 0.7,
	}
}

// AffirmingMessage is the sole suggestion when no category is off target.
const AffirmingMessage = "Great balance today! Your time closely matches a healthy distribution across all areas."

var emptySuggestions = []string{
	"Start tracking your day by adding events to your calendar.",
	"Plan at least one health activity, such as a walk or a workout.",
	"Block a short slot for learning; fifteen minutes a day adds up.",
}

var reduceTips = map[domain.Category]string{
	domain.CategoryWork:     "Set a firm end time and protect your breaks.",
	domain.CategoryHealth:   "Keep the habit but leave room for other areas.",
	domain.CategoryLeisure:  "Swap some downtime for a focused block.",
	domain.CategorySocial:   "Keep some time for yourself as well.",
	domain.CategoryLearning: "Spread study sessions across the week.",
}

var increaseTips = map[domain.Category]string{
	domain.CategoryWork:     "Schedule one uninterrupted focus block.",
	domain.CategoryHealth:   "Add a workout, a walk or some stretching.",
	domain.CategoryLeisure:  "Plan something you enjoy just for fun.",
	domain.CategorySocial:   "Reach out to a friend or family member.",
	domain.CategoryLearning: "Read or practise a skill for a short while.",
}

// Analyze aggregates entries and scores the result. It never fails: when
// there is no tracked time it returns EmptyResult.
func Analyze(entries []Entry) domain.BalanceResult {
	agg := Aggregate(entries)
	if agg.Empty() {
		return EmptyResult()
	}
	return ScoreBreakdown(agg.Breakdown, DefaultWeights())
}

// ScoreBreakdown builds a BalanceResult for an already computed breakdown.
func ScoreBreakdown(b domain.Breakdown, w Weights) domain.BalanceResult {
	return domain.BalanceResult{
		Score:       Score(b, w),
		Breakdown:   b.Clone(),
		Suggestions: Suggestions(b),
	}
}

// EmptyResult is the canonical result for a day with no tracked time: a
// fixed score, an all-zero breakdown and generic starter suggestions.
func EmptyResult() domain.BalanceResult {
	return domain.BalanceResult{
		Score:       EmptyScore,
		Breakdown:   domain.EmptyBreakdown(),
		Suggestions: append([]string(nil), emptySuggestions...),
		Empty:       true,
	}
}

// Score starts at 100 and subtracts each category's weighted, damped
// deviation from the optimal distribution. The result is clamped to
// [0, 100] and rounded.
func Score(b domain.Breakdown, w Weights) int {
	score := 100.0
	for _, c := range domain.Categories {
		dev := math.Abs(float64(b[c] - domain.OptimalDistribution[c]))
		score -= dev * w[c] * Damping
	}
	score = math.Max(0, math.Min(100, score))
	return int(math.Round(score))
}

type deviation struct {
	category domain.Category
	actual   int
	optimal  int
	delta    int
}

// Suggestions emits one directive per category deviating more than
// SuggestionThreshold points, largest deviation first (category order breaks
// ties), capped at MaxSuggestions. With no such category it returns the
// affirming message.
func Suggestions(b domain.Breakdown) []string {
	var devs []deviation
	for _, c := range domain.Categories {
		actual, optimal := b[c], domain.OptimalDistribution[c]
		delta := actual - optimal
		if abs(delta) > SuggestionThreshold {
			devs = append(devs, deviation{category: c, actual: actual, optimal: optimal, delta: delta})
		}
	}
	if len(devs) == 0 {
		return []string{AffirmingMessage}
	}

	sort.SliceStable(devs, func(i, j int) bool {
		return abs(devs[i].delta) > abs(devs[j].delta)
	})
	if len(devs) > MaxSuggestions {
		devs = devs[:MaxSuggestions]
	}

	out := make([]string, 0, len(devs))
	for _, d := range devs {
		out = append(out, suggestionFor(d))
	}
	return out
}

func suggestionFor(d deviation) string {
	verb, tip := "Increase", increaseTips[d.category]
	if d.delta > 0 {
		verb, tip = "Reduce", reduceTips[d.category]
	}
	return fmt.Sprintf("%s %s time: %d%% of your day vs a %d%% target. %s",
		verb, d.category, d.actual, d.optimal, tip)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
