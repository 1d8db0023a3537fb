package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

func RunMigrations(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    email TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    name TEXT,
    age_range TEXT,
    primary_goal TEXT NOT NULL DEFAULT 'MOOD' CHECK (primary_goal IN ('MOOD','MEDICATION','FITNESS','STRESS')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS journal_entries (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    content TEXT NOT NULL,
    sentiment_score DOUBLE PRECISION,
    emotion_label TEXT,
    risk_flag BOOLEAN NOT NULL DEFAULT false,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_journal_entries_user_created ON journal_entries (user_id, created_at);

CREATE TABLE IF NOT EXISTS fitness_logs (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    log_date DATE NOT NULL,
    activity_completed BOOLEAN NOT NULL DEFAULT false,
    steps INTEGER NOT NULL DEFAULT 0 CHECK (steps >= 0),
    minutes_exercised INTEGER NOT NULL DEFAULT 0 CHECK (minutes_exercised >= 0),
    intensity TEXT NOT NULL DEFAULT 'LOW' CHECK (intensity IN ('LOW','MEDIUM','HIGH')),
    UNIQUE(user_id, log_date)
);

CREATE TABLE IF NOT EXISTS medications (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    dosage TEXT,
    frequency_per_day INTEGER NOT NULL DEFAULT 1 CHECK (frequency_per_day >= 1),
    reminder_time TIME
);

CREATE TABLE IF NOT EXISTS medication_logs (
    id SERIAL PRIMARY KEY,
    medication_id INTEGER NOT NULL REFERENCES medications(id) ON DELETE CASCADE,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    taken_date DATE NOT NULL,
    taken BOOLEAN NOT NULL DEFAULT false,
    UNIQUE(medication_id, taken_date)
);
CREATE INDEX IF NOT EXISTS idx_medication_logs_user_date ON medication_logs (user_id, taken_date);

CREATE TABLE IF NOT EXISTS support_circles (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    invite_code TEXT UNIQUE NOT NULL,
    created_by INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS circle_members (
    id SERIAL PRIMARY KEY,
    circle_id INTEGER NOT NULL REFERENCES support_circles(id) ON DELETE CASCADE,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    role TEXT NOT NULL DEFAULT 'MEMBER' CHECK (role IN ('OWNER','MEMBER')),
    UNIQUE(circle_id, user_id)
);

CREATE TABLE IF NOT EXISTS encouragement_messages (
    id SERIAL PRIMARY KEY,
    circle_id INTEGER NOT NULL REFERENCES support_circles(id) ON DELETE CASCADE,
    sender_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    receiver_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    message TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	_, err := db.ExecContext(context.Background(), schema)
	return err
}
