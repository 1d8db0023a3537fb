package analytics

import (
	"time"

	"mindtrack/internal/models"
)

// maxStreakDays caps the backward scan so a pathological day set cannot spin
// the loop forever.
const maxStreakDays = 3650

// FitnessStreak counts consecutive days, ending today and walking backward,
// on which the user completed an activity. completedDays holds the date keys
// of days with a completed fitness log; a miss on today itself means 0.
func FitnessStreak(completedDays map[string]bool, today time.Time) int {
	streak := 0
	for day := today; streak < maxStreakDays; day = day.AddDate(0, 0, -1) {
		if !completedDays[DateKey(day)] {
			break
		}
		streak++
	}
	return streak
}

// MedicationStreak counts consecutive fully adherent days ending today. A day
// qualifies only when the taken-dose count for that date reaches the summed
// daily frequency of all the user's medications.
func MedicationStreak(takenByDay map[string]int, totalFreq int, today time.Time) int {
	if totalFreq <= 0 {
		return 0
	}
	streak := 0
	for day := today; streak < maxStreakDays; day = day.AddDate(0, 0, -1) {
		if takenByDay[DateKey(day)] < totalFreq {
			break
		}
		streak++
	}
	return streak
}

// IntensityScores weights the intensity buckets for averaging.
var IntensityScores = map[string]int{
	"LOW":    1,
	"MEDIUM": 2,
	"HIGH":   3,
}

// AverageIntensity buckets the mean intensity of a set of fitness logs back
// into a label: below 1.5 LOW, below 2.5 MEDIUM, else HIGH. Unknown intensity
// values count as LOW. An empty set is LOW.
func AverageIntensity(logs []models.FitnessLog) string {
	if len(logs) == 0 {
		return "LOW"
	}
	total := 0
	for _, l := range logs {
		score, ok := IntensityScores[l.Intensity]
		if !ok {
			score = 1
		}
		total += score
	}
	avg := float64(total) / float64(len(logs))
	switch {
	case avg < 1.5:
		return "LOW"
	case avg < 2.5:
		return "MEDIUM"
	default:
		return "HIGH"
	}
}
