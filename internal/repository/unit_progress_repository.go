package repository

import (
	"context"
	"fmt"
	"time"

	"nerd-math/internal/domain"
	"nerd-math/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

type sqlxUnitProgressRepository struct {
	db *sqlx.DB
}

func NewSQLXUnitProgressRepository(db *sqlx.DB) domain.UnitProgressRepository {
	return &sqlxUnitProgressRepository{db: db}
}

var axisColumns = map[domain.ProgressAxis]string{
	domain.AxisConcept: "concept_progress",
	domain.AxisProblem: "problem_progress",
	domain.AxisVocab:   "vocab_progress",
}

const progressColumns = "user_id, unit_id, category, concept_progress, problem_progress, vocab_progress, created_at, updated_at"

func toDomainUnitProgress(m *models.UnitProgress) *domain.UnitProgress {
	if m == nil {
		return nil
	}
	return &domain.UnitProgress{
		UserID:          m.UserID,
		UnitID:          m.UnitID,
		Category:        domain.ProgressCategory(m.Category),
		ConceptProgress: m.ConceptProgress,
		ProblemProgress: m.ProblemProgress,
		VocabProgress:   m.VocabProgress,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// UpsertAxis is a single INSERT ... ON CONFLICT statement, so concurrent updates of
// different axes on the same row never overwrite each other.
func (r *sqlxUnitProgressRepository) UpsertAxis(ctx context.Context, userID int64, unitID string, category domain.ProgressCategory, axis domain.ProgressAxis, value int, keepHighest bool, now time.Time) (*domain.UnitProgress, error) {
	column, ok := axisColumns[axis]
	if !ok {
		return nil, fmt.Errorf("unknown progress axis %q", axis)
	}

	initial := map[domain.ProgressAxis]int{axis: value}
	assignment := fmt.Sprintf("%s = EXCLUDED.%s", column, column)
	if keepHighest {
		assignment = fmt.Sprintf("%s = GREATEST(unit_progress.%s, EXCLUDED.%s)", column, column, column)
	}

	query := `INSERT INTO unit_progress (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id, unit_id, category) DO UPDATE
		SET ` + assignment + `, updated_at = EXCLUDED.updated_at
		RETURNING ` + progressColumns

	var m models.UnitProgress
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query,
		userID, unitID, string(category),
		initial[domain.AxisConcept], initial[domain.AxisProblem], initial[domain.AxisVocab],
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert unit progress: %w", err)
	}
	return toDomainUnitProgress(&m), nil
}

func (r *sqlxUnitProgressRepository) Get(ctx context.Context, userID int64, unitID string, category domain.ProgressCategory) (*domain.UnitProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM unit_progress
		WHERE user_id = $1 AND unit_id = $2 AND category = $3`

	var m models.UnitProgress
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, userID, unitID, string(category)); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get unit progress: %w", err)
	}
	return toDomainUnitProgress(&m), nil
}

func (r *sqlxUnitProgressRepository) ListByUser(ctx context.Context, userID int64) ([]domain.UnitProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM unit_progress WHERE user_id = $1`

	var rows []models.UnitProgress
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list unit progress: %w", err)
	}
	progress := make([]domain.UnitProgress, 0, len(rows))
	for i := range rows {
		progress = append(progress, *toDomainUnitProgress(&rows[i]))
	}
	return progress, nil
}
