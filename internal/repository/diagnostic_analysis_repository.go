package repository

import (
	"context"
	"fmt"

	"nerd-math/internal/domain"
	"nerd-math/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

type sqlxDiagnosticAnalysisRepository struct {
	db *sqlx.DB
}

func NewSQLXDiagnosticAnalysisRepository(db *sqlx.DB) domain.DiagnosticAnalysisRepository {
	return &sqlxDiagnosticAnalysisRepository{db: db}
}

func (r *sqlxDiagnosticAnalysisRepository) GetByTestID(ctx context.Context, testID string) (*domain.DiagnosticAnalysis, error) {
	var m models.DiagnosticAnalysis
	query := `SELECT test_id, user_id, ai_comment, recommended_path, class, generated_at
		FROM diagnostic_analyses WHERE test_id = $1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, testID); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get diagnostic analysis: %w", err)
	}

	path := make([]domain.RecommendedUnit, 0, len(m.RecommendedPath))
	for _, step := range m.RecommendedPath {
		path = append(path, domain.RecommendedUnit{
			UnitID:    step.UnitID,
			UnitTitle: step.UnitTitle,
			Priority:  step.Priority,
			Reason:    step.Reason,
		})
	}
	return &domain.DiagnosticAnalysis{
		TestID:          m.TestID,
		UserID:          m.UserID,
		AIComment:       m.AIComment,
		RecommendedPath: path,
		Class:           m.Class,
		GeneratedAt:     m.GeneratedAt,
	}, nil
}

// Upsert replaces any earlier analysis of the same test.
func (r *sqlxDiagnosticAnalysisRepository) Upsert(ctx context.Context, analysis *domain.DiagnosticAnalysis) error {
	path := make(models.RecommendedPath, 0, len(analysis.RecommendedPath))
	for _, step := range analysis.RecommendedPath {
		path = append(path, models.RecommendedStep{
			UnitID:    step.UnitID,
			UnitTitle: step.UnitTitle,
			Priority:  step.Priority,
			Reason:    step.Reason,
		})
	}
	m := models.DiagnosticAnalysis{
		TestID:          analysis.TestID,
		UserID:          analysis.UserID,
		AIComment:       analysis.AIComment,
		RecommendedPath: path,
		Class:           analysis.Class,
		GeneratedAt:     analysis.GeneratedAt,
	}

	query := `INSERT INTO diagnostic_analyses (test_id, user_id, ai_comment, recommended_path, class, generated_at)
		VALUES (:test_id, :user_id, :ai_comment, :recommended_path, :class, :generated_at)
		ON CONFLICT (test_id) DO UPDATE SET ai_comment = EXCLUDED.ai_comment,
			recommended_path = EXCLUDED.recommended_path, class = EXCLUDED.class,
			generated_at = EXCLUDED.generated_at`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, &m); err != nil {
		return fmt.Errorf("failed to save diagnostic analysis: %w", err)
	}
	return nil
}
