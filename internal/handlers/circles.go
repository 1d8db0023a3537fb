package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"mindtrack/internal/models"
	"mindtrack/internal/services"
)

type CircleHandler struct {
	db     *sqlx.DB
	encSvc *services.EncryptionService
}

func NewCircleHandler(db *sqlx.DB, encSvc *services.EncryptionService) *CircleHandler {
	return &CircleHandler{db: db, encSvc: encSvc}
}

type circleRequest struct {
	Name string `json:"name"`
}

// Create makes a new support circle with the creator as OWNER and a fresh
// invite code others can join with.
func (h *CircleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var req circleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	defer tx.Rollback()

	var circle models.SupportCircle
	err = tx.QueryRowx(`INSERT INTO support_circles (name, invite_code, created_by) VALUES ($1, $2, $3)
	                    RETURNING id, name, invite_code, created_by, created_at`,
		req.Name, uuid.NewString(), userID).StructScan(&circle)
	if err != nil {
		http.Error(w, "could not create circle", http.StatusInternalServerError)
		return
	}
	if _, err := tx.Exec(`INSERT INTO circle_members (circle_id, user_id, role) VALUES ($1, $2, 'OWNER')`, circle.ID, userID); err != nil {
		http.Error(w, "could not create circle", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(); err != nil {
		http.Error(w, "could not create circle", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(circle)
}

func (h *CircleHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	circles := []models.SupportCircle{}
	err := h.db.Select(&circles, `SELECT c.id, c.name, c.invite_code, c.created_by, c.created_at
	                              FROM support_circles c
	                              JOIN circle_members m ON m.circle_id = c.id
	                              WHERE m.user_id=$1 ORDER BY c.id`, userID)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(circles)
}

// Join adds the current user to the circle in the URL; joining twice is a
// no-op.
func (h *CircleHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	circleID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	h.join(w, userID, circleID)
}

type joinByCodeRequest struct {
	InviteCode string `json:"invite_code"`
}

// JoinByCode resolves an invite code to its circle and joins it.
func (h *CircleHandler) JoinByCode(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var req joinByCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.InviteCode == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	var circleID int
	err := h.db.Get(&circleID, `SELECT id FROM support_circles WHERE invite_code=$1`, req.InviteCode)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "circle not found", http.StatusNotFound)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	h.join(w, userID, circleID)
}

func (h *CircleHandler) join(w http.ResponseWriter, userID, circleID int) {
	var exists bool
	if err := h.db.Get(&exists, `SELECT EXISTS (SELECT 1 FROM support_circles WHERE id=$1)`, circleID); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if !exists {
		http.Error(w, "circle not found", http.StatusNotFound)
		return
	}

	res, err := h.db.Exec(`INSERT INTO circle_members (circle_id, user_id, role) VALUES ($1, $2, 'MEMBER')
	                       ON CONFLICT (circle_id, user_id) DO NOTHING`, circleID, userID)
	if err != nil {
		http.Error(w, "could not join", http.StatusInternalServerError)
		return
	}

	msg := "Joined successfully"
	if rows, _ := res.RowsAffected(); rows == 0 {
		msg = "Already a member"
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"message": msg, "circle_id": circleID})
}

type circleMembersResponse struct {
	ID        int                   `json:"id"`
	Name      string                `json:"name"`
	CreatedBy int                   `json:"created_by"`
	Members   []models.CircleMember `json:"members"`
}

func (h *CircleHandler) Members(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	circleID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if !h.requireMembership(w, circleID, userID) {
		return
	}

	var circle models.SupportCircle
	if err := h.db.Get(&circle, `SELECT id, name, invite_code, created_by, created_at FROM support_circles WHERE id=$1`, circleID); err != nil {
		http.Error(w, "circle not found", http.StatusNotFound)
		return
	}

	members := []models.CircleMember{}
	if err := h.db.Select(&members, `SELECT id, circle_id, user_id, role FROM circle_members WHERE circle_id=$1 ORDER BY id`, circleID); err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(circleMembersResponse{
		ID:        circle.ID,
		Name:      circle.Name,
		CreatedBy: circle.CreatedBy,
		Members:   members,
	})
}

type messageRequest struct {
	ReceiverID int    `json:"receiver_id"`
	Message    string `json:"message"`
}

type messageResponse struct {
	ID         int    `json:"id"`
	CircleID   int    `json:"circle_id"`
	SenderID   int    `json:"sender_id"`
	ReceiverID int    `json:"receiver_id"`
	Message    string `json:"message"`
	CreatedAt  string `json:"created_at"`
}

// SendMessage posts an encouragement message into a circle the sender belongs
// to. Message text is encrypted at rest.
func (h *CircleHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	circleID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" || req.ReceiverID == 0 {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if !h.requireMembership(w, circleID, userID) {
		return
	}

	msg := models.EncouragementMessage{Message: req.Message}
	if err := h.encSvc.EncryptMessage(&msg); err != nil {
		http.Error(w, "could not encrypt message", http.StatusInternalServerError)
		return
	}

	var id int
	var createdAt time.Time
	err = h.db.QueryRow(`INSERT INTO encouragement_messages (circle_id, sender_id, receiver_id, message)
	                     VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		circleID, userID, req.ReceiverID, msg.Message).Scan(&id, &createdAt)
	if err != nil {
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messageResponse{
		ID:         id,
		CircleID:   circleID,
		SenderID:   userID,
		ReceiverID: req.ReceiverID,
		Message:    req.Message,
		CreatedAt:  createdAt.Format(time.RFC3339),
	})
}

func (h *CircleHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	circleID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if !h.requireMembership(w, circleID, userID) {
		return
	}

	var msgs []models.EncouragementMessage
	err = h.db.Select(&msgs, `SELECT id, circle_id, sender_id, receiver_id, message, created_at
	                          FROM encouragement_messages WHERE circle_id=$1 ORDER BY created_at DESC LIMIT 100`, circleID)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	out := make([]messageResponse, 0, len(msgs))
	for i := range msgs {
		if err := h.encSvc.DecryptMessage(&msgs[i]); err != nil {
			continue
		}
		out = append(out, messageResponse{
			ID:         msgs[i].ID,
			CircleID:   msgs[i].CircleID,
			SenderID:   msgs[i].SenderID,
			ReceiverID: msgs[i].ReceiverID,
			Message:    msgs[i].Message,
			CreatedAt:  msgs[i].CreatedAt.Format(time.RFC3339),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// requireMembership writes a 403 and returns false when the user is not in
// the circle.
func (h *CircleHandler) requireMembership(w http.ResponseWriter, circleID, userID int) bool {
	var isMember bool
	if err := h.db.Get(&isMember, `SELECT EXISTS (SELECT 1 FROM circle_members WHERE circle_id=$1 AND user_id=$2)`, circleID, userID); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return false
	}
	if !isMember {
		http.Error(w, "not a member of this circle", http.StatusForbidden)
		return false
	}
	return true
}
