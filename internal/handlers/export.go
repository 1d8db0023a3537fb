package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"mindtrack/internal/models"
	"mindtrack/internal/services"
)

type ExportHandler struct {
	db     *sqlx.DB
	encSvc *services.EncryptionService
}

func NewExportHandler(db *sqlx.DB, encSvc *services.EncryptionService) *ExportHandler {
	return &ExportHandler{db: db, encSvc: encSvc}
}

type exportEnvelope struct {
	Format string `json:"format"`
	Count  int    `json:"count"`
	Data   any    `json:"data"`
}

func exportFormat(r *http.Request) (string, bool) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	return format, format == "json" || format == "csv"
}

// dateRange builds optional start/end filter clauses for the given column.
func dateRange(r *http.Request, column string, args []interface{}) (string, []interface{}, error) {
	where := ""
	if s := r.URL.Query().Get("start_date"); s != "" {
		start, err := time.Parse("2006-01-02", s)
		if err != nil {
			return "", nil, fmt.Errorf("invalid start_date format; expected YYYY-MM-DD")
		}
		args = append(args, start)
		where += fmt.Sprintf(" AND %s >= $%d", column, len(args))
	}
	if s := r.URL.Query().Get("end_date"); s != "" {
		end, err := time.Parse("2006-01-02", s)
		if err != nil {
			return "", nil, fmt.Errorf("invalid end_date format; expected YYYY-MM-DD")
		}
		args = append(args, end)
		where += fmt.Sprintf(" AND %s <= $%d", column, len(args))
	}
	return where, args, nil
}

func writeCSV(header []string, rows [][]string) string {
	var b strings.Builder
	cw := csv.NewWriter(&b)
	_ = cw.Write(header)
	_ = cw.WriteAll(rows)
	cw.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func (h *ExportHandler) Journal(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	format, ok := exportFormat(r)
	if !ok {
		http.Error(w, "invalid format; expected json or csv", http.StatusBadRequest)
		return
	}

	args := []interface{}{userID}
	where, args, err := dateRange(r, "created_at", args)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var entries []models.JournalEntry
	query := `SELECT id, user_id, content, sentiment_score, emotion_label, risk_flag, created_at, updated_at
	          FROM journal_entries WHERE user_id=$1` + where + ` ORDER BY created_at DESC`
	if err := h.db.Select(&entries, query, args...); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	for i := range entries {
		if err := h.encSvc.DecryptJournal(&entries[i]); err != nil {
			http.Error(w, "could not decrypt", http.StatusInternalServerError)
			return
		}
	}

	if format == "json" {
		data := make([]map[string]any, 0, len(entries))
		for _, e := range entries {
			data = append(data, map[string]any{
				"id":              e.ID,
				"content":         e.Content,
				"sentiment_score": e.SentimentScore,
				"emotion_label":   e.EmotionLabel,
				"risk_flag":       e.RiskFlag,
				"created_at":      e.CreatedAt.Format(time.RFC3339),
			})
		}
		writeExport(w, "json", len(data), data)
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		score, label := "", ""
		if e.SentimentScore != nil {
			score = strconv.FormatFloat(*e.SentimentScore, 'f', -1, 64)
		}
		if e.EmotionLabel != nil {
			label = *e.EmotionLabel
		}
		rows = append(rows, []string{
			strconv.Itoa(e.ID), e.Content, score, label,
			strconv.FormatBool(e.RiskFlag), e.CreatedAt.Format(time.RFC3339),
		})
	}
	csvData := writeCSV([]string{"id", "content", "sentiment_score", "emotion_label", "risk_flag", "created_at"}, rows)
	writeExport(w, "csv", len(entries), csvData)
}

func (h *ExportHandler) Fitness(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	format, ok := exportFormat(r)
	if !ok {
		http.Error(w, "invalid format; expected json or csv", http.StatusBadRequest)
		return
	}

	args := []interface{}{userID}
	where, args, err := dateRange(r, "log_date", args)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var logs []models.FitnessLog
	query := `SELECT id, user_id, log_date, activity_completed, steps, minutes_exercised, intensity
	          FROM fitness_logs WHERE user_id=$1` + where + ` ORDER BY log_date DESC`
	if err := h.db.Select(&logs, query, args...); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	if format == "json" {
		data := make([]map[string]any, 0, len(logs))
		for _, l := range logs {
			data = append(data, map[string]any{
				"id":                 l.ID,
				"log_date":           l.LogDate.Format("2006-01-02"),
				"activity_completed": l.ActivityCompleted,
				"steps":              l.Steps,
				"minutes_exercised":  l.MinutesExercised,
				"intensity":          l.Intensity,
			})
		}
		writeExport(w, "json", len(data), data)
		return
	}

	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{
			strconv.Itoa(l.ID), l.LogDate.Format("2006-01-02"),
			strconv.FormatBool(l.ActivityCompleted), strconv.Itoa(l.Steps),
			strconv.Itoa(l.MinutesExercised), l.Intensity,
		})
	}
	csvData := writeCSV([]string{"id", "log_date", "activity_completed", "steps", "minutes_exercised", "intensity"}, rows)
	writeExport(w, "csv", len(logs), csvData)
}

func (h *ExportHandler) Medications(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	format, ok := exportFormat(r)
	if !ok {
		http.Error(w, "invalid format; expected json or csv", http.StatusBadRequest)
		return
	}

	var meds []models.Medication
	err := h.db.Select(&meds, `SELECT id, user_id, name, dosage, frequency_per_day, reminder_time::text
	                           FROM medications WHERE user_id=$1 ORDER BY id`, userID)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	var logs []models.MedicationLog
	err = h.db.Select(&logs, `SELECT id, medication_id, user_id, taken_date, taken
	                          FROM medication_logs WHERE user_id=$1 ORDER BY taken_date DESC`, userID)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	logsByMed := map[int][]models.MedicationLog{}
	for _, l := range logs {
		logsByMed[l.MedicationID] = append(logsByMed[l.MedicationID], l)
	}

	if format == "json" {
		data := make([]map[string]any, 0, len(meds))
		for _, m := range meds {
			medLogs := make([]map[string]any, 0, len(logsByMed[m.ID]))
			for _, l := range logsByMed[m.ID] {
				medLogs = append(medLogs, map[string]any{
					"taken_date": l.TakenDate.Format("2006-01-02"),
					"taken":      l.Taken,
				})
			}
			data = append(data, map[string]any{
				"id":                m.ID,
				"name":              m.Name,
				"dosage":            m.Dosage,
				"frequency_per_day": m.FrequencyPerDay,
				"reminder_time":     m.ReminderTime,
				"logs":              medLogs,
			})
		}
		writeExport(w, "json", len(data), data)
		return
	}

	var rows [][]string
	for _, m := range meds {
		dosage := ""
		if m.Dosage != nil {
			dosage = *m.Dosage
		}
		medLogs := logsByMed[m.ID]
		if len(medLogs) == 0 {
			rows = append(rows, []string{strconv.Itoa(m.ID), m.Name, dosage, "", ""})
			continue
		}
		for _, l := range medLogs {
			rows = append(rows, []string{
				strconv.Itoa(m.ID), m.Name, dosage,
				l.TakenDate.Format("2006-01-02"), strconv.FormatBool(l.Taken),
			})
		}
	}
	csvData := writeCSV([]string{"medication_id", "medication_name", "dosage", "taken_date", "taken"}, rows)
	writeExport(w, "csv", len(meds), csvData)
}

func writeExport(w http.ResponseWriter, format string, count int, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(exportEnvelope{Format: format, Count: count, Data: data})
}
