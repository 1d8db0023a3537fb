package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindtrack/internal/models"
)

var testToday = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func scoredEntry(score float64, daysAgo int) models.JournalEntry {
	return models.JournalEntry{
		SentimentScore: &score,
		CreatedAt:      testToday.AddDate(0, 0, -daysAgo).Add(10 * time.Hour),
	}
}

func TestMoodSeriesAveragesPerDay(t *testing.T) {
	entries := []models.JournalEntry{
		scoredEntry(0.4, 0),
		scoredEntry(0.8, 0),
		scoredEntry(-0.2, 2),
	}
	s := MoodSeries(entries, testToday, 7)

	require.Len(t, s, 2)
	assert.InDelta(t, 0.6, s[DateKey(testToday)], 1e-9)
	assert.InDelta(t, -0.2, s[DateKey(testToday.AddDate(0, 0, -2))], 1e-9)
}

func TestMoodSeriesSkipsUnscoredAndStale(t *testing.T) {
	entries := []models.JournalEntry{
		{CreatedAt: testToday}, // no score stored yet
		scoredEntry(0.5, 10),   // outside the 7-day window
	}
	s := MoodSeries(entries, testToday, 7)
	assert.Empty(t, s)
}

func TestFitnessSeriesCompositeScore(t *testing.T) {
	logs := []models.FitnessLog{
		{LogDate: testToday, Steps: 4000, MinutesExercised: 60, ActivityCompleted: true},
	}
	s := FitnessSeries(logs, testToday, 7)

	// 4000/1000 + 60/30 + 1 for the completed activity.
	require.Len(t, s, 1)
	assert.InDelta(t, 7.0, s[DateKey(testToday)], 1e-9)

	simple := SimpleFitnessSeries(logs, testToday, 7)
	assert.InDelta(t, 6.0, simple[DateKey(testToday)], 1e-9)
}

func TestFitnessSeriesSumsSameDay(t *testing.T) {
	day := testToday.AddDate(0, 0, -1)
	logs := []models.FitnessLog{
		{LogDate: day, Steps: 1000, MinutesExercised: 30},
		{LogDate: day, Steps: 2000, MinutesExercised: 0, ActivityCompleted: true},
	}
	s := FitnessSeries(logs, testToday, 7)
	assert.InDelta(t, 3.0+1.0+1.0, s[DateKey(day)], 1e-9)
}

func TestAdherenceSeriesClampedAndDense(t *testing.T) {
	meds := []models.Medication{
		{ID: 1, FrequencyPerDay: 1},
		{ID: 2, FrequencyPerDay: 1},
	}
	logs := []models.MedicationLog{
		{MedicationID: 1, TakenDate: testToday, Taken: true},
	}
	s := AdherenceSeries(meds, logs, testToday, 7)

	// Dense: every date in [today-7, today] is present.
	require.Len(t, s, 8)
	assert.InDelta(t, 0.5, s[DateKey(testToday)], 1e-9)
	assert.Equal(t, 0.0, s[DateKey(testToday.AddDate(0, 0, -3))])
}

func TestAdherenceSeriesClampsAtOne(t *testing.T) {
	meds := []models.Medication{{ID: 1, FrequencyPerDay: 1}}
	logs := []models.MedicationLog{
		{MedicationID: 1, TakenDate: testToday, Taken: true},
		{MedicationID: 2, TakenDate: testToday, Taken: true},
		{MedicationID: 3, TakenDate: testToday, Taken: true},
	}
	clamped := AdherenceSeries(meds, logs, testToday, 7)
	assert.Equal(t, 1.0, clamped[DateKey(testToday)])

	simple := SimpleAdherenceSeries(meds, logs, testToday, 7)
	assert.InDelta(t, 3.0, simple[DateKey(testToday)], 1e-9)
}

func TestAdherenceSeriesNoMedications(t *testing.T) {
	// The two variants disagree here on purpose: the clamped series is empty,
	// the simple one back-fills `days` zero rows.
	assert.Empty(t, AdherenceSeries(nil, nil, testToday, 7))

	simple := SimpleAdherenceSeries(nil, nil, testToday, 7)
	require.Len(t, simple, 7)
	for _, d := range simple.Dates() {
		assert.Equal(t, 0.0, simple[d])
	}
}

func TestAdherenceSeriesIgnoresUntakenLogs(t *testing.T) {
	meds := []models.Medication{{ID: 1, FrequencyPerDay: 2}}
	logs := []models.MedicationLog{
		{MedicationID: 1, TakenDate: testToday, Taken: false},
	}
	s := AdherenceSeries(meds, logs, testToday, 7)
	assert.Equal(t, 0.0, s[DateKey(testToday)])
}

func TestDailySeriesDatesSorted(t *testing.T) {
	s := DailySeries{
		"2025-06-14": 1,
		"2025-06-01": 2,
		"2025-06-10": 3,
	}
	assert.Equal(t, []string{"2025-06-01", "2025-06-10", "2025-06-14"}, s.Dates())
}
