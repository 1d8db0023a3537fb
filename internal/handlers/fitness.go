package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"mindtrack/internal/analytics"
	"mindtrack/internal/models"
)

type FitnessHandler struct {
	db *sqlx.DB
}

func NewFitnessHandler(db *sqlx.DB) *FitnessHandler {
	return &FitnessHandler{db: db}
}

type fitnessRequest struct {
	LogDate           string `json:"log_date"` // YYYY-MM-DD
	ActivityCompleted bool   `json:"activity_completed"`
	Steps             int    `json:"steps"`
	MinutesExercised  int    `json:"minutes_exercised"`
	Intensity         string `json:"intensity"`
}

// Upsert creates the day's fitness log or overwrites the existing one; there
// is at most one row per (user, date).
func (h *FitnessHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var req fitnessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Steps < 0 || req.MinutesExercised < 0 {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	logDate, err := time.Parse("2006-01-02", req.LogDate)
	if err != nil {
		http.Error(w, "invalid log_date format; expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if req.Intensity == "" {
		req.Intensity = "LOW"
	}
	if _, ok := analytics.IntensityScores[req.Intensity]; !ok {
		http.Error(w, "invalid intensity; expected LOW, MEDIUM or HIGH", http.StatusBadRequest)
		return
	}

	var id int
	err = h.db.QueryRow(`INSERT INTO fitness_logs (user_id, log_date, activity_completed, steps, minutes_exercised, intensity)
	                     VALUES ($1, $2, $3, $4, $5, $6)
	                     ON CONFLICT (user_id, log_date)
	                     DO UPDATE SET
	                       activity_completed = EXCLUDED.activity_completed,
	                       steps = EXCLUDED.steps,
	                       minutes_exercised = EXCLUDED.minutes_exercised,
	                       intensity = EXCLUDED.intensity
	                     RETURNING id`,
		userID, logDate, req.ActivityCompleted, req.Steps, req.MinutesExercised, req.Intensity).Scan(&id)
	if err != nil {
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":                 id,
		"log_date":           logDate.Format("2006-01-02"),
		"activity_completed": req.ActivityCompleted,
		"steps":              req.Steps,
		"minutes_exercised":  req.MinutesExercised,
		"intensity":          req.Intensity,
	})
}

type fitnessLogResponse struct {
	ID                int    `json:"id"`
	LogDate           string `json:"log_date"`
	ActivityCompleted bool   `json:"activity_completed"`
	Steps             int    `json:"steps"`
	MinutesExercised  int    `json:"minutes_exercised"`
	Intensity         string `json:"intensity"`
}

func (h *FitnessHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var logs []models.FitnessLog
	err := h.db.Select(&logs, `SELECT id, user_id, log_date, activity_completed, steps, minutes_exercised, intensity
	                           FROM fitness_logs WHERE user_id=$1 ORDER BY log_date DESC`, userID)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	out := make([]fitnessLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, fitnessLogResponse{
			ID:                l.ID,
			LogDate:           l.LogDate.Format("2006-01-02"),
			ActivityCompleted: l.ActivityCompleted,
			Steps:             l.Steps,
			MinutesExercised:  l.MinutesExercised,
			Intensity:         l.Intensity,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

type weeklyFitnessResponse struct {
	TotalSteps    int    `json:"total_steps"`
	TotalMinutes  int    `json:"total_minutes"`
	AvgIntensity  string `json:"avg_intensity"`
	DaysActive    int    `json:"days_active"`
	CurrentStreak int    `json:"current_streak"`
}

// Weekly summarizes the trailing 7 days and the current completion streak.
func (h *FitnessHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	today := time.Now().UTC().Truncate(24 * time.Hour)
	weekAgo := today.AddDate(0, 0, -6)

	var logs []models.FitnessLog
	err := h.db.Select(&logs, `SELECT id, user_id, log_date, activity_completed, steps, minutes_exercised, intensity
	                           FROM fitness_logs WHERE user_id=$1 AND log_date >= $2 AND log_date <= $3`,
		userID, weekAgo, today)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	resp := weeklyFitnessResponse{AvgIntensity: "LOW"}
	if len(logs) > 0 {
		for _, l := range logs {
			resp.TotalSteps += l.Steps
			resp.TotalMinutes += l.MinutesExercised
			if l.ActivityCompleted {
				resp.DaysActive++
			}
		}
		resp.AvgIntensity = analytics.AverageIntensity(logs)

		completedDays, err := h.completedDays(userID)
		if err != nil {
			http.Error(w, "could not compute streak", http.StatusInternalServerError)
			return
		}
		resp.CurrentStreak = analytics.FitnessStreak(completedDays, today)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// completedDays fetches the user's completed-activity dates once and indexes
// them by date key, so the streak walk costs one query total.
func (h *FitnessHandler) completedDays(userID int) (map[string]bool, error) {
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
