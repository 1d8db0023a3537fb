package analytics

// Prediction weights are product parameters standing in for a trained model;
// they are exported so callers and tests can assert on them directly.
const (
	MoodWeight      = 0.5
	FitnessWeight   = 0.3
	AdherenceWeight = 0.2
	TrendWeight     = 0.3

	// PredictionWindowDays is the default history window for PredictNextMood.
	PredictionWindowDays = 14

	// fitnessNormalizer rescales the composite fitness score onto roughly the
	// same magnitude as mood before weighting.
	fitnessNormalizer = 10.0

	// recentWindowDays bounds the averaging window to the last week of
	// aligned data.
	recentWindowDays = 7

	// minMoodPoints is the minimum history needed to predict at all.
	minMoodPoints = 3
)

// PredictNextMood estimates tomorrow's mood from the mood series, the
// simplified fitness series, and the simplified adherence series over a common
// window. Fewer than 3 mood days yields 0.0; fewer than 3 aligned days across
// all three series yields the plain mean of the available daily moods.
// Otherwise the estimate is a fixed-weight combination of the last week's
// averages plus a short-term trend term, clamped to [-1,1] and rounded to 3
// decimals.
func PredictNextMood(mood, fitness, adherence DailySeries) float64 {
	if len(mood) < minMoodPoints {
		return 0.0
	}

	dates := commonDates(mood, fitness, adherence)
	if len(dates) < minMoodPoints {
		return mean(values(mood))
	}

	if len(dates) > recentWindowDays {
		dates = dates[len(dates)-recentWindowDays:]
	}
	recentMoods := pick(mood, dates)
	recentFitness := pick(fitness, dates)
	recentAdherence := pick(adherence, dates)

	trend := 0.0
	if len(recentMoods) >= minMoodPoints {
		trend = (recentMoods[len(recentMoods)-1] - recentMoods[0]) / float64(len(recentMoods))
	}

	prediction := MoodWeight*mean(recentMoods) +
		FitnessWeight*(mean(recentFitness)/fitnessNormalizer) +
		AdherenceWeight*mean(recentAdherence) +
		TrendWeight*trend

	return round3(clamp(prediction, -1, 1))
}
