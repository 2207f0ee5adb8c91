package balance

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_OptimalDay(t *testing.T) {
	result := Analyze([]Entry{
		{Category: domain.CategoryWork, Minutes: 240},
		{Category: domain.CategoryHealth, Minutes: 150},
		{Category: domain.CategoryLeisure, Minutes: 120},
		{Category: domain.CategorySocial, Minutes: 60},
		{Category: domain.CategoryLearning, Minutes: 30},
	})

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, []string{AffirmingMessage}, result.Suggestions)
	assert.False(t, result.Empty)
	for _, c := range domain.Categories {
		assert.Equal(t, domain.OptimalDistribution[c], result.Breakdown[c])
	}
}

func TestAnalyze_AllWorkDay(t *testing.T) {
	result := Analyze([]Entry{{Category: domain.CategoryWork, Minutes: 480}})

	assert.Equal(t, 100, result.Breakdown[domain.CategoryWork])
	for _, c := range domain.Categories[1:] {
		assert.Equal(t, 0, result.Breakdown[c])
	}

	// 100 - 0.4*(60*1.0 + 25*1.2 + 20*0.8 + 10*0.6 + 5*0.7) = 53.8
	assert.Equal(t, 54, result.Score)

	require.Len(t, result.Suggestions, 3)
	assert.Contains(t, result.Suggestions[0], "Reduce work")
	assert.Contains(t, result.Suggestions[1], "Increase health")
	assert.Contains(t, result.Suggestions[2], "Increase leisure")
}

func TestAnalyze_EmptyInput(t *testing.T) {
	for _, entries := range [][]Entry{nil, {}, {{Category: "unknown", Minutes: 60}}} {
		result := Analyze(entries)

		assert.True(t, result.Empty)
		assert.Equal(t, EmptyScore, result.Score)
		assert.Equal(t, 0, result.Breakdown.Sum())
		assert.Len(t, result.Suggestions, 3)
	}
}

func TestEmptyResult_ReturnsFreshSlices(t *testing.T) {
	a := EmptyResult()
	a.Suggestions[0] = "mutated"
	a.Breakdown[domain.CategoryWork] = 99

	b := EmptyResult()
	assert.NotEqual(t, "mutated", b.Suggestions[0])
	assert.Equal(t, 0, b.Breakdown[domain.CategoryWork])
}

func TestSuggestions_ThresholdIsExclusive(t *testing.T) {
	// work +15, health -15: exactly at threshold, no directive.
	b := domain.Breakdown{
		domain.CategoryWork:     55,
		domain.CategoryHealth:   10,
		domain.CategoryLeisure:  20,
		domain.CategorySocial:   10,
		domain.CategoryLearning: 5,
	}
	assert.Equal(t, []string{AffirmingMessage}, Suggestions(b))
}

func TestSuggestions_OrderedByDeviation(t *testing.T) {
	b := domain.Breakdown{
		domain.CategoryWork:     20, // -20
		domain.CategoryHealth:   0,  // -25
		domain.CategoryLeisure:  50, // +30
		domain.CategorySocial:   10,
		domain.CategoryLearning: 20, // +15, not above threshold
	}

	got := Suggestions(b)

	require.Len(t, got, 3)
	assert.Contains(t, got[0], "Reduce leisure")
	assert.Contains(t, got[1], "Increase health")
	assert.Contains(t, got[2], "Increase work")
}

func TestSuggestions_CappedAtThree(t *testing.T) {
	b := domain.Breakdown{
		domain.CategoryWork:     0,
		domain.CategoryHealth:   0,
		domain.CategoryLeisure:  0,
		domain.CategorySocial:   0,
		domain.CategoryLearning: 100,
	}
	assert.Len(t, Suggestions(b), MaxSuggestions)
}

// TestScore_Invariants_Bounds property-tests 0 <= score <= 100 for arbitrary
// breakdowns, including ones that do not sum to 100.
func TestScore_Invariants_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	w := DefaultWeights()

	for trial := 0; trial < 500; trial++ {
		b := domain.Breakdown{}
		for _, c := range domain.Categories {
			b[c] = rng.Intn(400) - 100
		}
		s := Score(b, w)
		assert.GreaterOrEqual(t, s, 0, "trial %d", trial)
		assert.LessOrEqual(t, s, 100, "trial %d", trial)
	}
}

func TestScore_HealthWeighsMoreThanSocial(t *testing.T) {
	w := DefaultWeights()
	base := domain.OptimalDistribution.Clone()

	lowHealth := base.Clone()
	lowHealth[domain.CategoryHealth] -= 10
	lowHealth[domain.CategoryWork] += 10

	lowSocial := base.Clone()
	lowSocial[domain.CategorySocial] -= 10
	lowSocial[domain.CategoryWork] += 10

	assert.Less(t, Score(lowHealth, w), Score(lowSocial, w))
}
