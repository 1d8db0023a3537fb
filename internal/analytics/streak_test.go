package analytics

import (
	"testing"

	"mindtrack/internal/models"
)

func completed(daysAgo ...int) map[string]bool {
	m := map[string]bool{}
	for _, d := range daysAgo {
		m[DateKey(testToday.AddDate(0, 0, -d))] = true
	}
	return m
}

func TestFitnessStreakConsecutive(t *testing.T) {
	if got := FitnessStreak(completed(0, 1, 2), testToday); got != 3 {
		t.Errorf("streak: got %d, want 3", got)
	}
}

func TestFitnessStreakBrokenByGap(t *testing.T) {
	// Today missed: the streak is over regardless of history.
	if got := FitnessStreak(completed(1, 2, 3), testToday); got != 0 {
		t.Errorf("streak after miss today: got %d, want 0", got)
	}
	// Gap at yesterday stops the walk at 1.
	if got := FitnessStreak(completed(0, 2, 3), testToday); got != 1 {
		t.Errorf("streak with gap: got %d, want 1", got)
	}
}

func TestFitnessStreakEmpty(t *testing.T) {
	if got := FitnessStreak(nil, testToday); got != 0 {
		t.Errorf("empty: got %d, want 0", got)
	}
}

func TestMedicationStreak(t *testing.T) {
	taken := map[string]int{
		DateKey(testToday):                   2,
		DateKey(testToday.AddDate(0, 0, -1)): 3,
		DateKey(testToday.AddDate(0, 0, -2)): 1, // partial day breaks it
		DateKey(testToday.AddDate(0, 0, -3)): 2,
	}
	if got := MedicationStreak(taken, 2, testToday); got != 2 {
		t.Errorf("streak: got %d, want 2", got)
	}
}

func TestMedicationStreakNoMedications(t *testing.T) {
	taken := map[string]int{DateKey(testToday): 5}
	if got := MedicationStreak(taken, 0, testToday); got != 0 {
		t.Errorf("zero frequency: got %d, want 0", got)
	}
}

func TestAverageIntensity(t *testing.T) {
	cases := []struct {
		name        string
		intensities []string
		want        string
	}{
		{"empty", nil, "LOW"},
		{"all low", []string{"LOW", "LOW"}, "LOW"},
		{"mixed low medium", []string{"LOW", "MEDIUM"}, "MEDIUM"},
		{"mixed medium high", []string{"MEDIUM", "HIGH"}, "HIGH"},
		{"all high", []string{"HIGH", "HIGH", "HIGH"}, "HIGH"},
		{"unknown counts as low", []string{"EXTREME", "LOW"}, "LOW"},
	}
	for _, c := range cases {
		var logs []models.FitnessLog
		for _, in := range c.intensities {
			logs = append(logs, models.FitnessLog{Intensity: in})
		}
		if got := AverageIntensity(logs); got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}
