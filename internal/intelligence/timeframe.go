package intelligence

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultTimeframeDays = 30
	DefaultDailyHours    = 2.0
	MinDailyHours        = 1.0
	MaxDailyHours        = 8.0
	DefaultPlanWeeks     = 4
	maxPlanWeeks         = 12

	// Longer horizons are capped to keep day counts within int range.
	maxTimeframeDays = 3650
)

var (
	timeframePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(day|week|month|year)s?\b`)
	hoursPattern     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(h|hr|hrs|hour|hours|m|min|mins|minute|minutes)\b`)
	numberWords      = regexp.MustCompile(`\b(a couple of|a few|an|a|one|two|three|four|five|six|seven|eight|nine|ten|twelve)\s+`)
)

var numberWordValues = map[string]string{
	"a couple of": "2", "a few": "3", "an": "1", "a": "1",
	"one": "1", "two": "2", "three": "3", "four": "4", "five": "5", "six": "6",
	"seven": "7", "eight": "8", "nine": "9", "ten": "10", "twelve": "12",
}

// PlanParameters are the numeric limits a goal plan must respect.
type PlanParameters struct {
	TimeframeDays int
	DailyHours    float64
	Weeks         int
}

// DerivePlanParameters computes plan limits from free-text timeframe and
// daily study time.
func DerivePlanParameters(timeframe, studyTime string) PlanParameters {
	days := ParseTimeframeDays(timeframe)
	weeks := DefaultPlanWeeks
	if strings.TrimSpace(timeframe) != "" {
		weeks = min(max(days/7, 1), maxPlanWeeks)
	}
	return PlanParameters{
		TimeframeDays: days,
		DailyHours:    ParseDailyHours(studyTime),
		Weeks:         weeks,
	}
}

// ParseTimeframeDays converts text such as "2 months" or "3 weeks" into a
// number of days (months count 30 days, years 365), capped at ten years.
// Unparseable input yields DefaultTimeframeDays.
func ParseTimeframeDays(s string) int {
	m := timeframePattern.FindStringSubmatch(normalizeNumberWords(s))
	if m == nil {
		return DefaultTimeframeDays
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil || n <= 0 {
		return DefaultTimeframeDays
	}

	var perUnit float64
	switch m[2] {
	case "day":
		perUnit = 1
	case "week":
		perUnit = 7
	case "month":
		perUnit = 30
	case "year":
		perUnit = 365
	}
	days := math.Round(n * perUnit)
	if days > maxTimeframeDays {
		return maxTimeframeDays
	}
	return max(int(days), 1)
}

// ParseDailyHours reads a daily time budget such as "3 hours" or "90 min"
// and clamps it to [MinDailyHours, MaxDailyHours]. A bare number is read as
// hours. Unparseable input yields DefaultDailyHours.
func ParseDailyHours(s string) float64 {
	norm := normalizeNumberWords(s)
	var hours float64

	if m := hoursPattern.FindStringSubmatch(norm); m != nil {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return DefaultDailyHours
		}
		hours = n
		if strings.HasPrefix(m[2], "m") {
			hours = n / 60
		}
	} else if n, err := strconv.ParseFloat(strings.TrimSpace(norm), 64); err == nil {
		hours = n
	} else {
		return DefaultDailyHours
	}

	return math.Max(MinDailyHours, math.Min(MaxDailyHours, hours))
}

// normalizeNumberWords lowercases s and rewrites leading number words
// ("two weeks", "an hour") as digits.
func normalizeNumberWords(s string) string {
	return numberWords.ReplaceAllStringFunc(strings.ToLower(strings.TrimSpace(s)), func(m string) string {
		return numberWordValues[strings.TrimSpace(m)] + " "
	})
}
