package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"mindtrack/internal/models"
)

type UserHandler struct {
	db *sqlx.DB
}

func NewUserHandler(db *sqlx.DB) *UserHandler {
	return &UserHandler{db: db}
}

var validGoals = map[string]bool{
	"MOOD":       true,
	"MEDICATION": true,
	"FITNESS":    true,
	"STRESS":     true,
}

type userDTO struct {
	ID          int     `json:"id"`
	Email       string  `json:"email"`
	Name        *string `json:"name,omitempty"`
	AgeRange    *string `json:"age_range,omitempty"`
	PrimaryGoal string  `json:"primary_goal"`
	CreatedAt   string  `json:"created_at"`
}

func toUserDTO(u models.User) userDTO {
	return userDTO{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		AgeRange:    u.AgeRange,
		PrimaryGoal: u.PrimaryGoal,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

// GetMe returns the current user's profile
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var u models.User
	if err := h.db.Get(&u, `SELECT id, email, password_hash, name, age_range, primary_goal, created_at FROM users WHERE id=$1`, userID); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toUserDTO(u))
}

// UpdateMe updates provided fields on the current user's profile
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var body struct {
		Name        *string `json:"name"`
		AgeRange    *string `json:"age_range"`
		PrimaryGoal *string `json:"primary_goal"`
		Password    *string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1
	if body.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name=$%d", argIdx))
		args = append(args, *body.Name)
		argIdx++
	}
	if body.AgeRange != nil {
		setClauses = append(setClauses, fmt.Sprintf("age_range=$%d", argIdx))
		args = append(args, *body.AgeRange)
		argIdx++
	}
	if body.PrimaryGoal != nil {
		if !validGoals[*body.PrimaryGoal] {
			http.Error(w, "invalid primary_goal", http.StatusBadRequest)
			return
		}
		setClauses = append(setClauses, fmt.Sprintf("primary_goal=$%d", argIdx))
		args = append(args, *body.PrimaryGoal)
		argIdx++
	}
	if body.Password != nil {
		if *body.Password == "" {
			http.Error(w, "password must not be empty", http.StatusBadRequest)
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "could not hash password", http.StatusInternalServerError)
			return
		}
		setClauses = append(setClauses, fmt.Sprintf("password_hash=$%d", argIdx))
		args = append(args, string(hashed))
		argIdx++
	}
	if len(setClauses) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	query := "UPDATE users SET " + strings.Join(setClauses, ", ") + fmt.Sprintf(" WHERE id=$%d", argIdx)
	args = append(args, userID)
	if _, err := h.db.Exec(query, args...); err != nil {
		http.Error(w, "could not update", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteMe removes the account and, through FK cascades, every record the
// user owns: journal entries, fitness logs, medications and their logs,
// circles they created, memberships, and messages.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	if _, err := h.db.Exec(`DELETE FROM users WHERE id=$1`, userID); err != nil {
		http.Error(w, "could not delete", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
