package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/talentscout-ai/talentscout/internal/model"
)

// SQLiteStore persists completed screening sessions in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the sessions table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS sessions (
		id             TEXT PRIMARY KEY,
		submitted_at   DATETIME NOT NULL,
		full_name      TEXT NOT NULL,
		email          TEXT NOT NULL,
		desired_role   TEXT NOT NULL,
		profile_json   TEXT NOT NULL,
		questions_json TEXT NOT NULL,
		answers_json   TEXT NOT NULL
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sessions table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// SaveSession inserts a completed session. Session IDs are unique; saving
// the same ID twice is an error.
func (s *SQLiteStore) SaveSession(rec model.SessionRecord) error {
	profileJSON, err := json.Marshal(rec.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	questionsJSON, err := json.Marshal(rec.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	answersJSON, err := json.Marshal(rec.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO sessions (id, submitted_at, full_name, email, desired_role, profile_json, questions_json, answers_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SubmittedAt.UTC(), rec.Profile.FullName, rec.Profile.Email,
		rec.Profile.DesiredRole, string(profileJSON), string(questionsJSON), string(answersJSON),
	)
	if err != nil {
		return fmt.Errorf("saving session %s: %w", rec.ID, err)
	}
	return nil
}

// ListSessions returns summaries of all stored sessions, newest first.
func (s *SQLiteStore) ListSessions() ([]model.SessionSummary, error) {
	rows, err := s.db.Query(
		`SELECT id, submitted_at, full_name, email, desired_role
		 FROM sessions ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var summaries []model.SessionSummary
	for rows.Next() {
		var sum model.SessionSummary
		var submittedAt time.Time
		if err := rows.Scan(&sum.ID, &submittedAt, &sum.FullName, &sum.Email, &sum.DesiredRole); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		sum.SubmittedAt = submittedAt
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session rows: %w", err)
	}
	return summaries, nil
}

// GetSession loads the full record for a single session.
func (s *SQLiteStore) GetSession(id string) (model.SessionRecord, error) {
	var rec model.SessionRecord
	var profileJSON, questionsJSON, answersJSON string

	err := s.db.QueryRow(
		`SELECT id, submitted_at, profile_json, questions_json, answers_json
		 FROM sessions WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.SubmittedAt, &profileJSON, &questionsJSON, &answersJSON)
	if err == sql.ErrNoRows {
		return rec, fmt.Errorf("session %s not found", id)
	}
	if err != nil {
		return rec, fmt.Errorf("loading session %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(profileJSON), &rec.Profile); err != nil {
		return rec, fmt.Errorf("unmarshal profile for %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(questionsJSON), &rec.Questions); err != nil {
		return rec, fmt.Errorf("unmarshal questions for %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(answersJSON), &rec.Answers); err != nil {
		return rec, fmt.Errorf("unmarshal answers for %s: %w", id, err)
	}
	return rec, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
