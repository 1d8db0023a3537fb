package analytics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizePositiveWithStrongFitness(t *testing.T) {
	got := Summarize(0.5, 0.4, 0.05)
	assert.Contains(t, got, "You've been feeling positive lately.")
	assert.Contains(t, got, "Exercise appears to boost your mood significantly.")
	assert.NotContains(t, got, "medication")
}

func TestSummarizeNeutralOnly(t *testing.T) {
	got := Summarize(0.0, 0.0, 0.0)
	assert.Equal(t, "Your mood has been relatively neutral.", got)
}

func TestSummarizeDownWithInverseFitness(t *testing.T) {
	got := Summarize(-0.6, -0.5, 0.2)
	assert.Contains(t, got, "You've been feeling down recently.")
	assert.Contains(t, got, "Your mood seems lower on more active days.")
	assert.Contains(t, got, "Taking medication consistently may help your mood slightly.")
}

func TestSummarizeSlightSignals(t *testing.T) {
	got := Summarize(0.1, 0.2, 0.35)
	assert.Contains(t, got, "Your mood has been relatively neutral.")
	assert.Contains(t, got, "There's a slight connection between exercise and your mood.")
	assert.Contains(t, got, "Medication adherence correlates with better mood.")
}

func TestSummarizeSentenceOrder(t *testing.T) {
	got := Summarize(0.5, 0.4, 0.4)
	mood := strings.Index(got, "positive lately")
	fitness := strings.Index(got, "Exercise")
	medication := strings.Index(got, "Medication")
	assert.True(t, mood < fitness && fitness < medication)
	assert.NotContains(t, got, "  ")
}

func TestSummarizeThresholdBoundaries(t *testing.T) {
	// Mood thresholds are inclusive, correlation thresholds are exclusive.
	assert.Contains(t, Summarize(PositiveMoodThreshold, 0, 0), "positive")
	assert.Contains(t, Summarize(NegativeMoodThreshold, 0, 0), "down")
	assert.Equal(t, "Your mood has been relatively neutral.", Summarize(0, SlightCorrelation, SlightCorrelation))
	// Exactly at the strong threshold the correlation only rates a slight mention.
	assert.Contains(t, Summarize(0, StrongCorrelation, 0), "slight connection")
}
