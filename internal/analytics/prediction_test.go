package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func series(start string, vals ...float64) DailySeries {
	s := DailySeries{}
	day, err := time.Parse(DateKeyFormat, start)
	if err != nil {
		panic(err)
	}
	for i, v := range vals {
		s[DateKey(day.AddDate(0, 0, i))] = v
	}
	return s
}

func TestPredictNextMoodTooFewMoodPoints(t *testing.T) {
	mood := series("2025-06-10", 0.3, 0.5)
	fitness := series("2025-06-10", 1, 2)
	adherence := series("2025-06-10", 1, 1)
	assert.Equal(t, 0.0, PredictNextMood(mood, fitness, adherence))
}

func TestPredictNextMoodFallbackMean(t *testing.T) {
	// Enough mood history but fewer than 3 aligned days across all three
	// series: the result is the plain mean of the daily moods.
	mood := series("2025-06-10", 0.2, 0.4, 0.6)
	assert.InDelta(t, 0.4, PredictNextMood(mood, DailySeries{}, DailySeries{}), 1e-9)
}

func TestPredictNextMoodWeightedCombination(t *testing.T) {
	mood := series("2025-06-10", 0.2, 0.4, 0.6)
	fitness := series("2025-06-10", 5, 5, 5)
	adherence := series("2025-06-10", 1.0, 0.5, 0.75)

	// 0.5*0.4 + 0.3*(5/10) + 0.2*0.75 + 0.3*((0.6-0.2)/3) = 0.54
	assert.Equal(t, 0.54, PredictNextMood(mood, fitness, adherence))
}

func TestPredictNextMoodUsesLastWeekOnly(t *testing.T) {
	mood := series("2025-06-01", 0.0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9)
	fitness := series("2025-06-01", 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	adherence := series("2025-06-01", 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)

	// Last 7 aligned days: moods 0.3..0.9, mean 0.6, trend (0.9-0.3)/7.
	assert.Equal(t, 0.326, PredictNextMood(mood, fitness, adherence))
}

func TestPredictNextMoodClamped(t *testing.T) {
	mood := series("2025-06-10", 1.0, 1.0, 1.0)
	fitness := series("2025-06-10", 100, 100, 100)
	adherence := series("2025-06-10", 1.0, 1.0, 1.0)
	assert.Equal(t, 1.0, PredictNextMood(mood, fitness, adherence))
}

func TestPredictNextMoodTrendDirection(t *testing.T) {
	fitness := series("2025-06-10", 3, 3, 3, 3, 3)
	adherence := series("2025-06-10", 1, 1, 1, 1, 1)

	rising := PredictNextMood(series("2025-06-10", -0.4, -0.2, 0.0, 0.2, 0.4), fitness, adherence)
	falling := PredictNextMood(series("2025-06-10", 0.4, 0.2, 0.0, -0.2, -0.4), fitness, adherence)
	assert.Greater(t, rising, falling)
}
