package models

import (
	"database/sql"
	"time"
)

// DiagnosticTest maps to the diagnostic_tests table.
type DiagnosticTest struct {
	ID             string        `db:"id"`
	UserID         int64         `db:"user_id"`
	GradeMin       int           `db:"grade_min"`
	GradeMax       int           `db:"grade_max"`
	ProblemSetID   string        `db:"problem_set_id"`
	RuleSnapshot   JSONMap       `db:"rule_snapshot"`
	StartedAt      time.Time     `db:"started_at"`
	EndedAt        sql.NullTime  `db:"ended_at"`
	DurationSec    sql.NullInt64 `db:"duration_sec"`
	Completed      bool          `db:"completed"`
	TimedOut       bool          `db:"timed_out"`
	RestartCount   int           `db:"restart_count"`
	TimeoutMinutes int           `db:"timeout_minutes"`
	ShuffleSeed    int64         `db:"shuffle_seed"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
}

// AnswerAttempt maps to the answer_attempts table.
type AnswerAttempt struct {
	ID              string         `db:"id"`
	UserID          int64          `db:"user_id"`
	Mode            string         `db:"mode"`
	ProblemID       sql.NullString `db:"problem_id"`
	VocabID         sql.NullString `db:"vocab_id"`
	SetID           sql.NullString `db:"set_id"`
	TestID          sql.NullString `db:"test_id"`
	UnitID          sql.NullString `db:"unit_id"`
	UserAnswer      AnswerPayload  `db:"user_answer"`
	IsCorrect       sql.NullBool   `db:"is_correct"`
	DurationSeconds sql.NullInt64  `db:"duration_seconds"`
	ScoredAt        sql.NullTime   `db:"scored_at"`
	IdempotencyKey  sql.NullString `db:"idempotency_key"`
	CreatedAt       time.Time      `db:"created_at"`
}

// DiagnosticAnalysis maps to the diagnostic_analyses table.
type DiagnosticAnalysis struct {
	TestID          string          `db:"test_id"`
	UserID          int64           `db:"user_id"`
	AIComment       string          `db:"ai_comment"`
	RecommendedPath RecommendedPath `db:"recommended_path"`
	Class           string          `db:"class"`
	GeneratedAt     time.Time       `db:"generated_at"`
}
