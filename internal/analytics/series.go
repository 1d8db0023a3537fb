package analytics

import (
	"math"
	"sort"
	"time"

	"mindtrack/internal/models"
)

// DateKeyFormat is the calendar-date key every daily series is aligned on.
// Journal timestamps are truncated to this before any cross-domain alignment.
const DateKeyFormat = "2006-01-02"

// DailySeries maps a date key to a single value for that day.
type DailySeries map[string]float64

// Dates returns the series' date keys in ascending order.
func (s DailySeries) Dates() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DateKey truncates a timestamp to its calendar-date key.
func DateKey(t time.Time) string { return t.Format(DateKeyFormat) }

// MoodSeries averages stored sentiment scores per calendar day over the
// trailing window. Entries without a score are skipped; days with no scored
// entries are absent from the result.
func MoodSeries(entries []models.JournalEntry, today time.Time, days int) DailySeries {
	start := today.AddDate(0, 0, -days)
	sums := DailySeries{}
	counts := map[string]int{}
	for _, e := range entries {
		if e.SentimentScore == nil || e.CreatedAt.Before(start) {
			continue
		}
		k := DateKey(e.CreatedAt)
		sums[k] += *e.SentimentScore
		counts[k]++
	}
	for k, n := range counts {
		sums[k] /= float64(n)
	}
	return sums
}

// FitnessSeries reduces fitness logs to one composite score per day:
// steps/1000 + minutes/30 + 1 if any log that day completed an activity.
// Days without logs are absent.
func FitnessSeries(logs []models.FitnessLog, today time.Time, days int) DailySeries {
	return fitnessSeries(logs, today, days, true)
}

// SimpleFitnessSeries is the prediction-side variant of FitnessSeries: the
// same steps/minutes composite without the activity-completed term.
func SimpleFitnessSeries(logs []models.FitnessLog, today time.Time, days int) DailySeries {
	return fitnessSeries(logs, today, days, false)
}

func fitnessSeries(logs []models.FitnessLog, today time.Time, days int, completionTerm bool) DailySeries {
	type totals struct {
		steps     int
		minutes   int
		completed bool
	}
	start := today.AddDate(0, 0, -days)
	byDay := map[string]*totals{}
	for _, l := range logs {
		if l.LogDate.Before(start) {
			continue
		}
		k := DateKey(l.LogDate)
		t := byDay[k]
		if t == nil {
			t = &totals{}
			byDay[k] = t
		}
		t.steps += l.Steps
		t.minutes += l.MinutesExercised
		if l.ActivityCompleted {
			t.completed = true
		}
	}
	s := DailySeries{}
	for k, t := range byDay {
		score := float64(t.steps)/1000 + float64(t.minutes)/30
		if completionTerm && t.completed {
			score++
		}
		s[k] = score
	}
	return s
}

// AdherenceSeries computes daily medication adherence over the trailing
// window, clamped to [0,1]: taken doses that day divided by the summed daily
// frequency of all the user's medications. The series is dense — every date in
// [today-days, today] appears, back-filled with 0 — unless the user has no
// medications, in which case it is empty.
func AdherenceSeries(meds []models.Medication, logs []models.MedicationLog, today time.Time, days int) DailySeries {
	if len(meds) == 0 {
		return DailySeries{}
	}
	totalFreq := totalFrequency(meds)
	taken := takenCounts(logs)

	s := DailySeries{}
	for i := 0; i <= days; i++ {
		k := DateKey(today.AddDate(0, 0, -i))
		s[k] = min(1.0, float64(taken[k])/float64(totalFreq))
	}
	return s
}

// SimpleAdherenceSeries is the prediction-side adherence variant. It differs
// from AdherenceSeries on purpose: values are not clamped, and a user with no
// medications gets a dense series of `days` zero rows instead of an empty one.
// The two call sites expect these exact shapes.
func SimpleAdherenceSeries(meds []models.Medication, logs []models.MedicationLog, today time.Time, days int) DailySeries {
	s := DailySeries{}
	if len(meds) == 0 {
		for i := 0; i < days; i++ {
			s[DateKey(today.AddDate(0, 0, -i))] = 0.0
		}
		return s
	}
	totalFreq := totalFrequency(meds)
	taken := takenCounts(logs)

	for i := 0; i <= days; i++ {
		k := DateKey(today.AddDate(0, 0, -i))
		if totalFreq > 0 {
			s[k] = float64(taken[k]) / float64(totalFreq)
		} else {
			s[k] = 0.0
		}
	}
	return s
}

func totalFrequency(meds []models.Medication) int {
	total := 0
	for _, m := range meds {
		total += m.FrequencyPerDay
	}
	return total
}

func takenCounts(logs []models.MedicationLog) map[string]int {
	counts := map[string]int{}
	for _, l := range logs {
		if l.Taken {
			counts[DateKey(l.TakenDate)]++
		}
	}
	return counts
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
