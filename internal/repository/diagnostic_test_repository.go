package repository

import (
	"context"
	"fmt"
	"time"

	"nerd-math/internal/domain"
	"nerd-math/internal/repository/models"
	"nerd-math/internal/util"

	"github.com/jmoiron/sqlx"
)

type sqlxDiagnosticTestRepository struct {
	db *sqlx.DB
}

func NewSQLXDiagnosticTestRepository(db *sqlx.DB) domain.DiagnosticTestRepository {
	return &sqlxDiagnosticTestRepository{db: db}
}

const diagnosticColumns = "id, user_id, grade_min, grade_max, problem_set_id, rule_snapshot, started_at, ended_at, duration_sec, completed, timed_out, restart_count, timeout_minutes, shuffle_seed, created_at, updated_at"

func toDomainDiagnosticTest(m *models.DiagnosticTest) *domain.DiagnosticTest {
	if m == nil {
		return nil
	}
	return &domain.DiagnosticTest{
		ID:             m.ID,
		UserID:         m.UserID,
		GradeRange:     domain.GradeRange{Min: m.GradeMin, Max: m.GradeMax},
		ProblemSetID:   m.ProblemSetID,
		RuleSnapshot:   map[string]interface{}(m.RuleSnapshot),
		StartedAt:      m.StartedAt,
		EndedAt:        util.NullTimeToPtr(m.EndedAt),
		DurationSec:    util.NullInt64ToIntPtr(m.DurationSec),
		Completed:      m.Completed,
		TimedOut:       m.TimedOut,
		RestartCount:   m.RestartCount,
		TimeoutMinutes: m.TimeoutMinutes,
		ShuffleSeed:    m.ShuffleSeed,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func fromDomainDiagnosticTest(t *domain.DiagnosticTest) *models.DiagnosticTest {
	if t == nil {
		return nil
	}
	return &models.DiagnosticTest{
		ID:             t.ID,
		UserID:         t.UserID,
		GradeMin:       t.GradeRange.Min,
		GradeMax:       t.GradeRange.Max,
		ProblemSetID:   t.ProblemSetID,
		RuleSnapshot:   models.JSONMap(t.RuleSnapshot),
		StartedAt:      t.StartedAt,
		EndedAt:        util.TimePtrToNullTime(t.EndedAt),
		DurationSec:    util.IntPtrToNullInt64(t.DurationSec),
		Completed:      t.Completed,
		TimedOut:       t.TimedOut,
		RestartCount:   t.RestartCount,
		TimeoutMinutes: t.TimeoutMinutes,
		ShuffleSeed:    t.ShuffleSeed,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// Create returns a Conflict error when the user already holds an incomplete session.
func (r *sqlxDiagnosticTestRepository) Create(ctx context.Context, test *domain.DiagnosticTest) error {
	query := `INSERT INTO diagnostic_tests (` + diagnosticColumns + `)
		VALUES (:id, :user_id, :grade_min, :grade_max, :problem_set_id, :rule_snapshot, :started_at, :ended_at,
			:duration_sec, :completed, :timed_out, :restart_count, :timeout_minutes, :shuffle_seed, :created_at, :updated_at)`

	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainDiagnosticTest(test)); err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("an unfinished diagnostic test already exists").
				WithContext("userId", test.UserID)
		}
		return fmt.Errorf("failed to create diagnostic test: %w", err)
	}
	return nil
}

func (r *sqlxDiagnosticTestRepository) GetByID(ctx context.Context, id string) (*domain.DiagnosticTest, error) {
	var m models.DiagnosticTest
	query := `SELECT ` + diagnosticColumns + ` FROM diagnostic_tests WHERE id = $1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get diagnostic test: %w", err)
	}
	return toDomainDiagnosticTest(&m), nil
}

func (r *sqlxDiagnosticTestRepository) FindCompletedByUser(ctx context.Context, userID int64) (*domain.DiagnosticTest, error) {
	return r.findOneByUser(ctx, userID, true)
}

func (r *sqlxDiagnosticTestRepository) FindActiveByUser(ctx context.Context, userID int64) (*domain.DiagnosticTest, error) {
	return r.findOneByUser(ctx, userID, false)
}

func (r *sqlxDiagnosticTestRepository) findOneByUser(ctx context.Context, userID int64, completed bool) (*domain.DiagnosticTest, error) {
	var m models.DiagnosticTest
	query := `SELECT ` + diagnosticColumns + ` FROM diagnostic_tests
		WHERE user_id = $1 AND completed = $2 ORDER BY started_at DESC LIMIT 1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, userID, completed); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find diagnostic test for user: %w", err)
	}
	return toDomainDiagnosticTest(&m), nil
}

func (r *sqlxDiagnosticTestRepository) MarkCompleted(ctx context.Context, id string, endedAt time.Time, durationSec int, timedOut bool) (bool, error) {
	query := `UPDATE diagnostic_tests
		SET completed = TRUE, timed_out = $1, ended_at = $2, duration_sec = $3, updated_at = $2
		WHERE id = $4 AND completed = FALSE`
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, timedOut, endedAt, durationSec, id)
	if err != nil {
		return false, fmt.Errorf("failed to complete diagnostic test: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected == 1, nil
}

func (r *sqlxDiagnosticTestRepository) Restart(ctx context.Context, id string, expectedRestartCount int, startedAt time.Time, seed int64) (bool, error) {
	query := `UPDATE diagnostic_tests
		SET restart_count = restart_count + 1, started_at = $1, shuffle_seed = $2, updated_at = $1
		WHERE id = $3 AND completed = FALSE AND restart_count = $4`
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, startedAt, seed, id, expectedRestartCount)
	if err != nil {
		return false, fmt.Errorf("failed to restart diagnostic test: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected == 1, nil
}
