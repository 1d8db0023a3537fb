package analytics

import "strings"

// Summary thresholds are product parameters, kept as named constants so tests
// can assert on them without re-deriving.
const (
	PositiveMoodThreshold = 0.3
	NegativeMoodThreshold = -0.3

	StrongCorrelation = 0.3
	SlightCorrelation = 0.1
)

// Summarize turns the weekly average mood and the two cross-domain
// correlations into a short human-readable summary. Exactly one mood sentence
// is always present; correlation sentences are appended only when the signal
// clears a threshold, in mood, fitness, medication order.
func Summarize(avgMood, fitnessCorr, medicationCorr float64) string {
	var insights []string

	switch {
	case avgMood >= PositiveMoodThreshold:
		insights = append(insights, "You've been feeling positive lately.")
	case avgMood <= NegativeMoodThreshold:
		insights = append(insights, "You've been feeling down recently.")
	default:
		insights = append(insights, "Your mood has been relatively neutral.")
	}

	switch {
	case fitnessCorr > StrongCorrelation:
		insights = append(insights, "Exercise appears to boost your mood significantly.")
	case fitnessCorr > SlightCorrelation:
		insights = append(insights, "There's a slight connection between exercise and your mood.")
	case fitnessCorr < -StrongCorrelation:
		insights = append(insights, "Your mood seems lower on more active days.")
	}

	switch {
	case medicationCorr > StrongCorrelation:
		insights = append(insights, "Medication adherence correlates with better mood.")
	case medicationCorr > SlightCorrelation:
		insights = append(insights, "Taking medication consistently may help your mood slightly.")
	}

	return strings.Join(insights, " ")
}
