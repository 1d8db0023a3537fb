package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"mindtrack/internal/analytics"
	"mindtrack/internal/models"
)

// insightsWindowDays is the window for averages and correlations; the
// predictor looks further back (analytics.PredictionWindowDays).
const insightsWindowDays = 7

type InsightsHandler struct {
	db *sqlx.DB
}

func NewInsightsHandler(db *sqlx.DB) *InsightsHandler {
	return &InsightsHandler{db: db}
}

type weeklyInsightsResponse struct {
	AvgMood               float64 `json:"avg_mood"`
	FitnessCorrelation    float64 `json:"fitness_correlation"`
	MedicationCorrelation float64 `json:"medication_correlation"`
	PredictedNextMood     float64 `json:"predicted_next_mood"`
	Summary               string  `json:"summary"`
}

// Weekly fetches the prediction window's records in four queries, derives the
// daily series, and hands everything to the analytics package. Sparse or
// missing data degrades to neutral values; the response always renders.
func (h *InsightsHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	today := time.Now().UTC().Truncate(24 * time.Hour)
	windowStart := today.AddDate(0, 0, -analytics.PredictionWindowDays)

	var entries []models.JournalEntry
	err := h.db.Select(&entries, `SELECT sentiment_score, created_at FROM journal_entries
	                              WHERE user_id=$1 AND created_at >= $2`, userID, windowStart)
	if err != nil {
		http.Error(w, "could not fetch journal entries", http.StatusInternalServerError)
		return
	}

	var fitLogs []models.FitnessLog
	err = h.db.Select(&fitLogs, `SELECT log_date, activity_completed, steps, minutes_exercised, intensity
	                             FROM fitness_logs WHERE user_id=$1 AND log_date >= $2`, userID, windowStart)
	if err != nil {
		http.Error(w, "could not fetch fitness logs", http.StatusInternalServerError)
		return
	}

	var meds []models.Medication
	err = h.db.Select(&meds, `SELECT id, frequency_per_day FROM medications WHERE user_id=$1`, userID)
	if err != nil {
		http.Error(w, "could not fetch medications", http.StatusInternalServerError)
		return
	}

	var medLogs []models.MedicationLog
	err = h.db.Select(&medLogs, `SELECT medication_id, taken_date, taken FROM medication_logs
	                             WHERE user_id=$1 AND taken_date >= $2`, userID, windowStart)
	if err != nil {
		http.Error(w, "could not fetch medication logs", http.StatusInternalServerError)
		return
	}

	mood := analytics.MoodSeries(entries, today, insightsWindowDays)
	fitness := analytics.FitnessSeries(fitLogs, today, insightsWindowDays)
	adherence := analytics.AdherenceSeries(meds, medLogs, today, insightsWindowDays)

	avgMood := analytics.AverageMood(mood)
	fitnessCorr := analytics.Correlate(mood, fitness)
	medicationCorr := analytics.Correlate(mood, adherence)

	predicted := analytics.PredictNextMood(
		analytics.MoodSeries(entries, today, analytics.PredictionWindowDays),
		analytics.SimpleFitnessSeries(fitLogs, today, analytics.PredictionWindowDays),
		analytics.SimpleAdherenceSeries(meds, medLogs, today, analytics.PredictionWindowDays),
	)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(weeklyInsightsResponse{
		AvgMood:               avgMood,
		FitnessCorrelation:    fitnessCorr,
		MedicationCorrelation: medicationCorr,
		PredictedNextMood:     predicted,
		Summary:               analytics.Summarize(avgMood, fitnessCorr, medicationCorr),
	})
}
