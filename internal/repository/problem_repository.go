package repository

import (
	"context"
	"fmt"

	"nerd-math/internal/domain"
	"nerd-math/internal/repository/models"
	"nerd-math/internal/util"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type sqlxProblemRepository struct {
	db *sqlx.DB
}

func NewSQLXProblemRepository(db *sqlx.DB) domain.ProblemRepository {
	return &sqlxProblemRepository{db: db}
}

const problemColumns = "id, unit_id, type, question, options, correct_answer, explanation"

func toDomainProblem(m *models.Problem) *domain.Problem {
	if m == nil {
		return nil
	}
	return &domain.Problem{
		ID:            m.ID,
		UnitID:        m.UnitID,
		Type:          domain.ProblemType(m.Type),
		Question:      m.Question,
		Options:       []string(m.Options),
		CorrectAnswer: m.CorrectAnswer,
		Explanation:   m.Explanation.String,
	}
}

func fromDomainProblem(p *domain.Problem) *models.Problem {
	if p == nil {
		return nil
	}
	return &models.Problem{
		ID:            p.ID,
		UnitID:        p.UnitID,
		Type:          string(p.Type),
		Question:      p.Question,
		Options:       models.StringSlice(p.Options),
		CorrectAnswer: p.CorrectAnswer,
		Explanation:   util.StringToNullString(p.Explanation),
	}
}

func (r *sqlxProblemRepository) GetByID(ctx context.Context, id string) (*domain.Problem, error) {
	var m models.Problem
	query := `SELECT ` + problemColumns + ` FROM problems WHERE id = $1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	return toDomainProblem(&m), nil
}

// GetByIDs returns the problems found among ids, in no particular order.
func (r *sqlxProblemRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Problem, error) {
	if len(ids) == 0 {
		return []domain.Problem{}, nil
	}
	query, args, err := psql.Select(problemColumns).From("problems").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build problems query: %w", err)
	}

	var rows []models.Problem
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get problems: %w", err)
	}
	problems := make([]domain.Problem, 0, len(rows))
	for i := range rows {
		problems = append(problems, *toDomainProblem(&rows[i]))
	}
	return problems, nil
}

func (r *sqlxProblemRepository) CountByUnit(ctx context.Context, unitID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM problems WHERE unit_id = $1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &count, query, unitID); err != nil {
		return 0, fmt.Errorf("failed to count problems in unit: %w", err)
	}
	return count, nil
}

func (r *sqlxProblemRepository) Upsert(ctx context.Context, problem *domain.Problem) error {
	query := `INSERT INTO problems (` + problemColumns + `)
		VALUES (:id, :unit_id, :type, :question, :options, :correct_answer, :explanation)
		ON CONFLICT (id) DO UPDATE SET unit_id = EXCLUDED.unit_id, type = EXCLUDED.type,
			question = EXCLUDED.question, options = EXCLUDED.options,
			correct_answer = EXCLUDED.correct_answer, explanation = EXCLUDED.explanation`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainProblem(problem)); err != nil {
		return fmt.Errorf("failed to upsert problem %s: %w", problem.ID, err)
	}
	return nil
}

type sqlxProblemSetRepository struct {
	db *sqlx.DB
}

func NewSQLXProblemSetRepository(db *sqlx.DB) domain.ProblemSetRepository {
	return &sqlxProblemSetRepository{db: db}
}

const problemSetColumns = "id, mode, diagnostic_unit, unit_id, problem_ids"

func toDomainProblemSet(m *models.ProblemSet) *domain.ProblemSet {
	if m == nil {
		return nil
	}
	return &domain.ProblemSet{
		ID:             m.ID,
		Mode:           m.Mode,
		DiagnosticUnit: m.DiagnosticUnit.String,
		UnitID:         m.UnitID.String,
		ProblemIDs:     []string(m.ProblemIDs),
	}
}

func (r *sqlxProblemSetRepository) GetByID(ctx context.Context, id string) (*domain.ProblemSet, error) {
	var m models.ProblemSet
	query := `SELECT ` + problemSetColumns + ` FROM problem_sets WHERE id = $1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get problem set: %w", err)
	}
	return toDomainProblemSet(&m), nil
}

func (r *sqlxProblemSetRepository) FindDiagnostic(ctx context.Context, diagnosticUnit string) (*domain.ProblemSet, error) {
	var m models.ProblemSet
	query := `SELECT ` + problemSetColumns + ` FROM problem_sets
		WHERE mode = $1 AND diagnostic_unit = $2 ORDER BY id LIMIT 1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, domain.ProblemSetModeDiagnostic, diagnosticUnit); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find diagnostic problem set: %w", err)
	}
	return toDomainProblemSet(&m), nil
}

func (r *sqlxProblemSetRepository) Upsert(ctx context.Context, set *domain.ProblemSet) error {
	m := models.ProblemSet{
		ID:             set.ID,
		Mode:           set.Mode,
		DiagnosticUnit: util.StringToNullString(set.DiagnosticUnit),
		UnitID:         util.StringToNullString(set.UnitID),
		ProblemIDs:     models.StringSlice(set.ProblemIDs),
	}
	query := `INSERT INTO problem_sets (` + problemSetColumns + `)
		VALUES (:id, :mode, :diagnostic_unit, :unit_id, :problem_ids)
		ON CONFLICT (id) DO UPDATE SET mode = EXCLUDED.mode, diagnostic_unit = EXCLUDED.diagnostic_unit,
			unit_id = EXCLUDED.unit_id, problem_ids = EXCLUDED.problem_ids`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, &m); err != nil {
		return fmt.Errorf("failed to upsert problem set %s: %w", set.ID, err)
	}
	return nil
}
