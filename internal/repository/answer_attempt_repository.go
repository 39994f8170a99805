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

type sqlxAnswerAttemptRepository struct {
	db *sqlx.DB
}

func NewSQLXAnswerAttemptRepository(db *sqlx.DB) domain.AnswerAttemptRepository {
	return &sqlxAnswerAttemptRepository{db: db}
}

const attemptColumns = "id, user_id, mode, problem_id, vocab_id, set_id, test_id, unit_id, user_answer, is_correct, duration_seconds, scored_at, idempotency_key, created_at"

func toDomainAnswerAttempt(m *models.AnswerAttempt) *domain.AnswerAttempt {
	if m == nil {
		return nil
	}
	return &domain.AnswerAttempt{
		ID:        m.ID,
		UserID:    m.UserID,
		Mode:      domain.AttemptMode(m.Mode),
		ProblemID: m.ProblemID.String,
		VocabID:   m.VocabID.String,
		SetID:     m.SetID.String,
		TestID:    m.TestID.String,
		UnitID:    m.UnitID.String,
		UserAnswer: domain.UserAnswer{
			Value:          m.UserAnswer.Text,
			SelectedOption: m.UserAnswer.SelectedOption,
		},
		IsCorrect:       util.NullBoolToPtr(m.IsCorrect),
		DurationSeconds: util.NullInt64ToIntPtr(m.DurationSeconds),
		ScoredAt:        util.NullTimeToPtr(m.ScoredAt),
		IdempotencyKey:  m.IdempotencyKey.String,
		CreatedAt:       m.CreatedAt,
	}
}

func fromDomainAnswerAttempt(a *domain.AnswerAttempt) *models.AnswerAttempt {
	if a == nil {
		return nil
	}
	return &models.AnswerAttempt{
		ID:        a.ID,
		UserID:    a.UserID,
		Mode:      string(a.Mode),
		ProblemID: util.StringToNullString(a.ProblemID),
		VocabID:   util.StringToNullString(a.VocabID),
		SetID:     util.StringToNullString(a.SetID),
		TestID:    util.StringToNullString(a.TestID),
		UnitID:    util.StringToNullString(a.UnitID),
		UserAnswer: models.AnswerPayload{
			Text:           a.UserAnswer.Value,
			SelectedOption: a.UserAnswer.SelectedOption,
		},
		IsCorrect:       util.BoolPtrToNullBool(a.IsCorrect),
		DurationSeconds: util.IntPtrToNullInt64(a.DurationSeconds),
		ScoredAt:        util.TimePtrToNullTime(a.ScoredAt),
		IdempotencyKey:  util.StringToNullString(a.IdempotencyKey),
		CreatedAt:       a.CreatedAt,
	}
}

func (r *sqlxAnswerAttemptRepository) Create(ctx context.Context, attempt *domain.AnswerAttempt) error {
	query := `INSERT INTO answer_attempts (` + attemptColumns + `)
		VALUES (:id, :user_id, :mode, :problem_id, :vocab_id, :set_id, :test_id, :unit_id, :user_answer,
			:is_correct, :duration_seconds, :scored_at, :idempotency_key, :created_at)`

	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainAnswerAttempt(attempt)); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateIdempotencyKey
		}
		return fmt.Errorf("failed to create answer attempt: %w", err)
	}
	return nil
}

func (r *sqlxAnswerAttemptRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.AnswerAttempt, error) {
	var m models.AnswerAttempt
	query := `SELECT ` + attemptColumns + ` FROM answer_attempts WHERE idempotency_key = $1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, key); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get answer attempt by idempotency key: %w", err)
	}
	return toDomainAnswerAttempt(&m), nil
}

func (r *sqlxAnswerAttemptRepository) HasPracticeAttempt(ctx context.Context, userID int64, problemID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM answer_attempts WHERE user_id = $1 AND problem_id = $2 AND mode = $3)`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &exists, query, userID, problemID, string(domain.ModePractice)); err != nil {
		return false, fmt.Errorf("failed to check practice attempt: %w", err)
	}
	return exists, nil
}

func (r *sqlxAnswerAttemptRepository) CountDistinctProblemsInUnit(ctx context.Context, userID int64, unitID string) (int, error) {
	var count int
	query := `SELECT COUNT(DISTINCT a.problem_id) FROM answer_attempts a
		JOIN problems p ON p.id = a.problem_id
		WHERE a.user_id = $1 AND a.mode = $2 AND p.unit_id = $3`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &count, query, userID, string(domain.ModePractice), unitID); err != nil {
		return 0, fmt.Errorf("failed to count answered problems: %w", err)
	}
	return count, nil
}

func (r *sqlxAnswerAttemptRepository) CountDistinctVocabInUnit(ctx context.Context, userID int64, unitID string) (int, error) {
	return r.countDistinctVocab(ctx, userID, unitID, domain.VocabMathTerm)
}

func (r *sqlxAnswerAttemptRepository) CountDistinctVocabByCategory(ctx context.Context, userID int64, category domain.VocabCategory) (int, error) {
	return r.countDistinctVocab(ctx, userID, "", category)
}

// countDistinctVocab counts the vocabulary the user has answered in vocab tests.
// An empty unitID counts across all units.
func (r *sqlxAnswerAttemptRepository) countDistinctVocab(ctx context.Context, userID int64, unitID string, category domain.VocabCategory) (int, error) {
	query := psql.Select("COUNT(DISTINCT a.vocab_id)").
		From("answer_attempts a").
		Join("vocabularies v ON v.id = a.vocab_id").
		Where("a.user_id = ?", userID).
		Where("a.mode = ?", string(domain.ModeVocabTest))
	if unitID != "" {
		query = query.Where("v.unit_id = ?", unitID)
	}
	query = query.Where("v.category = ?", string(category))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build vocabulary count query: %w", err)
	}
	var count int
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &count, sqlStr, args...); err != nil {
		return 0, fmt.Errorf("failed to count answered vocabulary: %w", err)
	}
	return count, nil
}

func (r *sqlxAnswerAttemptRepository) CountByTest(ctx context.Context, testID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM answer_attempts WHERE test_id = $1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &count, query, testID); err != nil {
		return 0, fmt.Errorf("failed to count test answers: %w", err)
	}
	return count, nil
}

// ListByTest returns the session's answers in submission order.
func (r *sqlxAnswerAttemptRepository) ListByTest(ctx context.Context, testID string) ([]domain.AnswerAttempt, error) {
	var rows []models.AnswerAttempt
	query := `SELECT ` + attemptColumns + ` FROM answer_attempts WHERE test_id = $1 ORDER BY created_at ASC, id ASC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, testID); err != nil {
		return nil, fmt.Errorf("failed to list test answers: %w", err)
	}
	attempts := make([]domain.AnswerAttempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, *toDomainAnswerAttempt(&rows[i]))
	}
	return attempts, nil
}

func (r *sqlxAnswerAttemptRepository) MarkScored(ctx context.Context, id string, isCorrect bool, scoredAt time.Time) error {
	query := `UPDATE answer_attempts SET is_correct = $1, scored_at = $2 WHERE id = $3`
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, isCorrect, scoredAt, id); err != nil {
		return fmt.Errorf("failed to score answer attempt: %w", err)
	}
	return nil
}

func (r *sqlxAnswerAttemptRepository) DeleteByTest(ctx context.Context, testID string) (int64, error) {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM answer_attempts WHERE test_id = $1`, testID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete test answers: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return deleted, nil
}
