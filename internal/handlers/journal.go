package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"mindtrack/internal/analytics"
	"mindtrack/internal/models"
	"mindtrack/internal/services"
)

type JournalHandler struct {
	db     *sqlx.DB
	encSvc *services.EncryptionService
}

func NewJournalHandler(db *sqlx.DB, encSvc *services.EncryptionService) *JournalHandler {
	return &JournalHandler{db: db, encSvc: encSvc}
}

type journalRequest struct {
	Content string `json:"content"`
}

type journalAnalysisResponse struct {
	ID             int     `json:"id"`
	SentimentScore float64 `json:"sentiment_score"`
	EmotionLabel   string  `json:"emotion_label"`
	RiskFlag       bool    `json:"risk_flag"`
	Sentiment      string  `json:"sentiment"`
	CreatedAt      string  `json:"created_at"`
}

// Create classifies the entry content, stores it encrypted alongside the
// derived sentiment fields, and returns the analysis.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var req journalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	cls := analytics.Classify(req.Content)

	entry := models.JournalEntry{Content: req.Content}
	if err := h.encSvc.EncryptJournal(&entry); err != nil {
		http.Error(w, "could not encrypt content", http.StatusInternalServerError)
		return
	}

	var id int
	var createdAt time.Time
	err := h.db.QueryRow(`INSERT INTO journal_entries (user_id, content, sentiment_score, emotion_label, risk_flag)
	                      VALUES ($1, $2, $3, $4, $5)
	                      RETURNING id, created_at`,
		userID, entry.Content, cls.Score, cls.Emotion, cls.RiskFlag).Scan(&id, &createdAt)
	if err != nil {
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(journalAnalysisResponse{
		ID:             id,
		SentimentScore: cls.Score,
		EmotionLabel:   cls.Emotion,
		RiskFlag:       cls.RiskFlag,
		Sentiment:      analytics.SentimentLabel(cls.Score),
		CreatedAt:      createdAt.Format(time.RFC3339),
	})
}

type journalEntryResponse struct {
	ID             int      `json:"id"`
	Content        string   `json:"content"`
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
	EmotionLabel   *string  `json:"emotion_label,omitempty"`
	RiskFlag       bool     `json:"risk_flag"`
	CreatedAt      string   `json:"created_at"`
}

func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	q := r.URL.Query()

	where := "WHERE user_id=$1"
	args := []interface{}{userID}

	if s := q.Get("start_date"); s != "" {
		startDate, err := time.Parse("2006-01-02", s)
		if err != nil {
			http.Error(w, "invalid start_date format; expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		args = append(args, startDate)
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if s := q.Get("end_date"); s != "" {
		endDate, err := time.Parse("2006-01-02", s)
		if err != nil {
			http.Error(w, "invalid end_date format; expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		args = append(args, endDate)
		where += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	var entries []models.JournalEntry
	query := `SELECT id, user_id, content, sentiment_score, emotion_label, risk_flag, created_at, updated_at
	          FROM journal_entries ` + where + ` ORDER BY created_at DESC LIMIT 100`
	if err := h.db.Select(&entries, query, args...); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	out := make([]journalEntryResponse, 0, len(entries))
	for i := range entries {
		if err := h.encSvc.DecryptJournal(&entries[i]); err != nil {
			continue
		}
		out = append(out, journalEntryResponse{
			ID:             entries[i].ID,
			Content:        entries[i].Content,
			SentimentScore: entries[i].SentimentScore,
			EmotionLabel:   entries[i].EmotionLabel,
			RiskFlag:       entries[i].RiskFlag,
			CreatedAt:      entries[i].CreatedAt.Format(time.RFC3339),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// Update replaces the entry content and re-runs the classifier; the stored
// sentiment fields always reflect the current content.
func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	entryID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req journalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	cls := analytics.Classify(req.Content)

	entry := models.JournalEntry{Content: req.Content}
	if err := h.encSvc.EncryptJournal(&entry); err != nil {
		http.Error(w, "could not encrypt content", http.StatusInternalServerError)
		return
	}

	res, err := h.db.Exec(`UPDATE journal_entries
	                       SET content=$1, sentiment_score=$2, emotion_label=$3, risk_flag=$4, updated_at=NOW()
	                       WHERE id=$5 AND user_id=$6`,
		entry.Content, cls.Score, cls.Emotion, cls.RiskFlag, entryID, userID)
	if err != nil {
		http.Error(w, "could not update", http.StatusInternalServerError)
		return
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(journalAnalysisResponse{
		ID:             entryID,
		SentimentScore: cls.Score,
		EmotionLabel:   cls.Emotion,
		RiskFlag:       cls.RiskFlag,
		Sentiment:      analytics.SentimentLabel(cls.Score),
	})
}

func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	entryID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	res, err := h.db.Exec(`DELETE FROM journal_entries WHERE id=$1 AND user_id=$2`, entryID, userID)
	if err != nil {
		http.Error(w, "could not delete", http.StatusInternalServerError)
		return
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
