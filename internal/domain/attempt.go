package domain

import "time"

// AttemptMode says which flow produced an answer attempt.
type AttemptMode string

const (
	ModePractice   AttemptMode = "practice"
	ModeVocabTest  AttemptMode = "vocab_test"
	ModeDiagnostic AttemptMode = "diagnostic"
)

func (m AttemptMode) Valid() bool {
	switch m {
	case ModePractice, ModeVocabTest, ModeDiagnostic:
		return true
	}
	return false
}

// AnswerAttempt is a stored submission. IsCorrect stays nil for diagnostic
// attempts until the session is completed and scored.
type AnswerAttempt struct {
	ID              string
	UserID          int64
	Mode            AttemptMode
	ProblemID       string
	VocabID         string
	SetID           string
	TestID          string
	UnitID          string
	UserAnswer      UserAnswer
	IsCorrect       *bool
	DurationSeconds *int
	ScoredAt        *time.Time
	IdempotencyKey  string
	CreatedAt       time.Time
}
