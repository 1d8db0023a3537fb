package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"mindtrack/internal/analytics"
	"mindtrack/internal/models"
)

type StatsHandler struct {
	db *sqlx.DB
}

func NewStatsHandler(db *sqlx.DB) *StatsHandler {
	return &StatsHandler{db: db}
}

type journalStats struct {
	TotalEntries    int `json:"total_entries"`
	EntriesThisWeek int `json:"entries_this_week"`
}

type medicationStats struct {
	TotalMedications   int `json:"total_medications"`
	DosesTakenThisWeek int `json:"doses_taken_this_week"`
	CurrentStreak      int `json:"current_streak"`
}

type fitnessStats struct {
	TotalLogs          int `json:"total_logs"`
	DaysActiveThisWeek int `json:"days_active_this_week"`
	TotalStepsThisWeek int `json:"total_steps_this_week"`
	CurrentStreak      int `json:"current_streak"`
}

type userStats struct {
	ID          int     `json:"id"`
	Name        *string `json:"name,omitempty"`
	PrimaryGoal string  `json:"primary_goal"`
}

type statsResponse struct {
	Journal     journalStats    `json:"journal"`
	Medications medicationStats `json:"medications"`
	Fitness     fitnessStats    `json:"fitness"`
	User        userStats       `json:"user"`
}

// Get aggregates cross-domain totals and the two completion streaks.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	today := time.Now().UTC().Truncate(24 * time.Hour)
	weekAgo := today.AddDate(0, 0, -7)

	var resp statsResponse

	err := h.db.QueryRowx(`
		SELECT
			COUNT(*),
			COALESCE(COUNT(*) FILTER (WHERE created_at >= $2), 0)
		FROM journal_entries WHERE user_id = $1`, userID, weekAgo).
		Scan(&resp.Journal.TotalEntries, &resp.Journal.EntriesThisWeek)
	if err != nil {
		http.Error(w, "could not fetch journal stats", http.StatusInternalServerError)
		return
	}

	err = h.db.QueryRowx(`
		SELECT
			COUNT(*),
			COALESCE(COUNT(*) FILTER (WHERE log_date >= $2 AND activity_completed), 0),
			COALESCE(SUM(steps) FILTER (WHERE log_date >= $2), 0)
		FROM fitness_logs WHERE user_id = $1`, userID, weekAgo).
		Scan(&resp.Fitness.TotalLogs, &resp.Fitness.DaysActiveThisWeek, &resp.Fitness.TotalStepsThisWeek)
	if err != nil {
		http.Error(w, "could not fetch fitness stats", http.StatusInternalServerError)
		return
	}

	var totalFreq int
	err = h.db.QueryRowx(`SELECT COUNT(*), COALESCE(SUM(frequency_per_day), 0) FROM medications WHERE user_id=$1`, userID).
		Scan(&resp.Medications.TotalMedications, &totalFreq)
	if err != nil {
		http.Error(w, "could not fetch medication stats", http.StatusInternalServerError)
		return
	}
	if err := h.db.Get(&resp.Medications.DosesTakenThisWeek,
		`SELECT COUNT(*) FROM medication_logs WHERE user_id=$1 AND taken=true AND taken_date >= $2`, userID, weekAgo); err != nil {
		http.Error(w, "could not fetch medication stats", http.StatusInternalServerError)
		return
	}

	if resp.Medications.TotalMedications > 0 {
		takenByDay, err := h.takenCountsByDay(userID)
		if err != nil {
			http.Error(w, "could not compute streak", http.StatusInternalServerError)
			return
		}
		resp.Medications.CurrentStreak = analytics.MedicationStreak(takenByDay, totalFreq, today)
	}

	completedDays, err := h.completedFitnessDays(userID)
	if err != nil {
		http.Error(w, "could not compute streak", http.StatusInternalServerError)
		return
	}
	resp.Fitness.CurrentStreak = analytics.FitnessStreak(completedDays, today)

	var u models.User
	if err := h.db.Get(&u, `SELECT id, name, primary_goal FROM users WHERE id=$1`, userID); err != nil {
		http.Error(w, "could not fetch user", http.StatusInternalServerError)
		return
	}
	resp.User = userStats{ID: u.ID, Name: u.Name, PrimaryGoal: u.PrimaryGoal}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *StatsHandler) completedFitnessDays(userID int) (map[string]bool, error) {
	var dates []time.Time
	err := h.db.Select(&dates, `SELECT log_date FROM fitness_logs WHERE user_id=$1 AND activity_completed=true`, userID)
	if err != nil {
		return nil, err
	}
	days := make(map[string]bool, len(dates))
	for _, d := range dates {
		days[analytics.DateKey(d)] = true
	}
	return days, nil
}

func (h *StatsHandler) takenCountsByDay(userID int) (map[string]int, error) {
	rows, err := h.db.Queryx(`SELECT taken_date, COUNT(*) FROM medication_logs
	                          WHERE user_id=$1 AND taken=true GROUP BY taken_date`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var d time.Time
		var n int
		if err := rows.Scan(&d, &n); err == nil {
			counts[analytics.DateKey(d)] = n
		}
	}
	return counts, nil
}
