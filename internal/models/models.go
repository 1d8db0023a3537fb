package models

import "time"

type User struct {
	ID           int       `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         *string   `db:"name" json:"name,omitempty"`
	AgeRange     *string   `db:"age_range" json:"age_range,omitempty"`
	PrimaryGoal  string    `db:"primary_goal" json:"primary_goal"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type JournalEntry struct {
	ID             int       `db:"id" json:"id"`
	UserID         int       `db:"user_id" json:"user_id"`
	Content        string    `db:"content" json:"content"` // Encrypted in DB
	SentimentScore *float64  `db:"sentiment_score" json:"sentiment_score,omitempty"`
	EmotionLabel   *string   `db:"emotion_label" json:"emotion_label,omitempty"`
	RiskFlag       bool      `db:"risk_flag" json:"risk_flag"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type FitnessLog struct {
	ID                int       `db:"id" json:"id"`
	UserID            int       `db:"user_id" json:"user_id"`
	LogDate           time.Time `db:"log_date" json:"log_date"`
	ActivityCompleted bool      `db:"activity_completed" json:"activity_completed"`
	Steps             int       `db:"steps" json:"steps"`
	MinutesExercised  int       `db:"minutes_exercised" json:"minutes_exercised"`
	Intensity         string    `db:"intensity" json:"intensity"`
}

type Medication struct {
	ID              int     `db:"id" json:"id"`
	UserID          int     `db:"user_id" json:"user_id"`
	Name            string  `db:"name" json:"name"`
	Dosage          *string `db:"dosage" json:"dosage,omitempty"`
	FrequencyPerDay int     `db:"frequency_per_day" json:"frequency_per_day"`
	ReminderTime    *string `db:"reminder_time" json:"reminder_time,omitempty"`
}

type MedicationLog struct {
	ID           int       `db:"id" json:"id"`
	MedicationID int       `db:"medication_id" json:"medication_id"`
	UserID       int       `db:"user_id" json:"user_id"`
	TakenDate    time.Time `db:"taken_date" json:"taken_date"`
	Taken        bool      `db:"taken" json:"taken"`
}

type SupportCircle struct {
	ID         int       `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	InviteCode string    `db:"invite_code" json:"invite_code"`
	CreatedBy  int       `db:"created_by" json:"created_by"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type CircleMember struct {
	ID       int    `db:"id" json:"id"`
	CircleID int    `db:"circle_id" json:"circle_id"`
	UserID   int    `db:"user_id" json:"user_id"`
	Role     string `db:"role" json:"role"`
}

type EncouragementMessage struct {
	ID         int       `db:"id" json:"id"`
	CircleID   int       `db:"circle_id" json:"circle_id"`
	SenderID   int       `db:"sender_id" json:"sender_id"`
	ReceiverID int       `db:"receiver_id" json:"receiver_id"`
	Message    string    `db:"message" json:"message"` // Encrypted in DB
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
