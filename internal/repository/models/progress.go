package models

import "time"

// UnitProgress maps to the unit_progress table. The frequent bucket is stored
// with an empty unit_id.
type UnitProgress struct {
	UserID          int64     `db:"user_id"`
	UnitID          string    `db:"unit_id"`
	Category        string    `db:"category"`
	ConceptProgress int       `db:"concept_progress"`
	ProblemProgress int       `db:"problem_progress"`
	VocabProgress   int       `db:"vocab_progress"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}
