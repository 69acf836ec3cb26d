package app

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

var yearRe = regexp.MustCompile(`^[1-9][0-9]{3}$`)

// IsYear tells if s is a four digit calendar year, as used for ContributionHistory keys.
func IsYear(s string) bool {
	return yearRe.MatchString(s)
}

const (
	maxScore              = 10
	scoreDivisor          = 400.0
	consistentYearMinimum = 300
	consistentYearsBonus  = 2
)

// Score computes reputation score in range <0..10> from yearly contributions.
//
// Recent years weigh more: 4 for currentYear, 3 and 2 for the two years before, 1 for older.
// Weighted sum is divided by 400, and one point is added when at least two years have 300+ contributions.
// Result is rounded half away from zero. Keys that aren't years are ignored, negative counts are treated as zero.
func Score(history ContributionHistory, currentYear int) int {
	var weightedSum float64
	var consistentYears int
	for year, count := range history {
		if !IsYear(year) || count <= 0 {
			continue
		}
		y, _ := strconv.Atoi(year)
		weight := 4 - (currentYear - y)
		if weight < 1 {
			weight = 1
		}
		weightedSum += float64(count) * float64(weight)

		if count >= consistentYearMinimum {
			consistentYears++
		}
	}

	score := weightedSum / scoreDivisor
	if consistentYears >= consistentYearsBonus {
		score++
	}

	rounded := int(math.Round(math.Min(maxScore, score)))
	if rounded < 0 {
		return 0
	}
	return rounded
}

// ScoreNow computes score for current calendar year.
func ScoreNow(history ContributionHistory) int {
	return Score(history, time.Now().Year())
}
