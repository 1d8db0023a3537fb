package handlers

import (
	"database/sql"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"mindtrack/internal/analytics"
	"mindtrack/internal/models"
)

type MedicationHandler struct {
	db *sqlx.DB
}

func NewMedicationHandler(db *sqlx.DB) *MedicationHandler {
	return &MedicationHandler{db: db}
}

type medicationRequest struct {
	Name            string  `json:"name"`
	Dosage          *string `json:"dosage"`
	FrequencyPerDay int     `json:"frequency_per_day"`
	ReminderTime    *string `json:"reminder_time"` // HH:MM
}

func (h *MedicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var req medicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.FrequencyPerDay < 0 {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.FrequencyPerDay == 0 {
		req.FrequencyPerDay = 1
	}
	if req.ReminderTime != nil {
		if _, err := time.Parse("15:04", *req.ReminderTime); err != nil {
			http.Error(w, "invalid reminder_time format; expected HH:MM", http.StatusBadRequest)
			return
		}
	}

	var med models.Medication
	err := h.db.QueryRowx(`INSERT INTO medications (user_id, name, dosage, frequency_per_day, reminder_time)
	                       VALUES ($1, $2, $3, $4, $5)
	                       RETURNING id, user_id, name, dosage, frequency_per_day, reminder_time::text`,
		userID, req.Name, req.Dosage, req.FrequencyPerDay, req.ReminderTime).StructScan(&med)
	if err != nil {
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(med)
}

func (h *MedicationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	meds := []models.Medication{}
	err := h.db.Select(&meds, `SELECT id, user_id, name, dosage, frequency_per_day, reminder_time::text
	                           FROM medications WHERE user_id=$1 ORDER BY id`, userID)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(meds)
}

type takenRequest struct {
	TakenDate string `json:"taken_date"` // YYYY-MM-DD
	Taken     bool   `json:"taken"`
}

// MarkTaken upserts the (medication, date) log; marking the same date again
// overwrites the taken flag.
func (h *MedicationHandler) MarkTaken(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	medID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req takenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	takenDate, err := time.Parse("2006-01-02", req.TakenDate)
	if err != nil {
		http.Error(w, "invalid taken_date format; expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	var exists bool
	if err := h.db.Get(&exists, `SELECT EXISTS (SELECT 1 FROM medications WHERE id=$1 AND user_id=$2)`, medID, userID); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if !exists {
		http.Error(w, "medication not found", http.StatusNotFound)
		return
	}

	_, err = h.db.Exec(`INSERT INTO medication_logs (medication_id, user_id, taken_date, taken)
	                    VALUES ($1, $2, $3, $4)
	                    ON CONFLICT (medication_id, taken_date)
	                    DO UPDATE SET taken = EXCLUDED.taken`,
		medID, userID, takenDate, req.Taken)
	if err != nil {
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Updated successfully"})
}

type medicationSummaryResponse struct {
	CurrentStreak   int     `json:"current_streak"`
	WeeklyAdherence float64 `json:"weekly_adherence"`
}

// Summary reports the current full-adherence streak and the trailing week's
// adherence percentage (doses taken over doses scheduled).
func (h *MedicationHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	today := time.Now().UTC().Truncate(24 * time.Hour)
	weekAgo := today.AddDate(0, 0, -7)

	var freqs []int
	if err := h.db.Select(&freqs, `SELECT frequency_per_day FROM medications WHERE user_id=$1`, userID); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	resp := medicationSummaryResponse{}
	if len(freqs) == 0 {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
		return
	}

	totalFreq := 0
	for _, f := range freqs {
		totalFreq += f
	}

	var dosesTaken int
	err := h.db.Get(&dosesTaken, `SELECT COUNT(*) FROM medication_logs WHERE user_id=$1 AND taken=true AND taken_date >= $2`, userID, weekAgo)
	if err != nil && err != sql.ErrNoRows {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	dosesScheduled := totalFreq * 7
	if dosesScheduled > 0 {
		resp.WeeklyAdherence = math.Round(float64(dosesTaken)/float64(dosesScheduled)*100*100) / 100
	}

	takenByDay, err := h.takenCountsByDay(userID)
	if err != nil {
		http.Error(w, "could not compute streak", http.StatusInternalServerError)
		return
	}
	resp.CurrentStreak = analytics.MedicationStreak(takenByDay, totalFreq, today)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// takenCountsByDay fetches taken-dose counts grouped by date once, so the
// streak walk needs no further queries.
func (h *MedicationHandler) takenCountsByDay(userID int) (map[string]int, error) {
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
