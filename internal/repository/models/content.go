package models

import "database/sql"

type Unit struct {
	ID        string `db:"id"`
	Title     string `db:"title"`
	Chapter   string `db:"chapter"`
	SortOrder int    `db:"sort_order"`
	Status    string `db:"status"`
}

const (
	UnitStatusActive   = "active"
	UnitStatusInactive = "inactive"
)

type Problem struct {
	ID            string         `db:"id"`
	UnitID        string         `db:"unit_id"`
	Type          string         `db:"type"`
	Question      string         `db:"question"`
	Options       StringSlice    `db:"options"`
	CorrectAnswer string         `db:"correct_answer"`
	Explanation   sql.NullString `db:"explanation"`
}

type ProblemSet struct {
	ID             string         `db:"id"`
	Mode           string         `db:"mode"`
	DiagnosticUnit sql.NullString `db:"diagnostic_unit"`
	UnitID         sql.NullString `db:"unit_id"`
	ProblemIDs     StringSlice    `db:"problem_ids"`
}

type Vocabulary struct {
	ID        string         `db:"id"`
	UnitID    sql.NullString `db:"unit_id"`
	Category  string         `db:"category"`
	Word      string         `db:"word"`
	Meaning   string         `db:"meaning"`
	Etymology sql.NullString `db:"etymology"`
}

type Character struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	ImageURL    string `db:"image_url"`
	Gender      string `db:"gender"`
	Level       int    `db:"level"`
	Description string `db:"description"`
	IsDefault   bool   `db:"is_default"`
	IsActive    bool   `db:"is_active"`
}
