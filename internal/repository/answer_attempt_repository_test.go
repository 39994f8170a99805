package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"nerd-math/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var attemptRowColumns = []string{"id", "user_id", "mode", "problem_id", "vocab_id", "set_id", "test_id", "unit_id", "user_answer", "is_correct", "duration_seconds", "scored_at", "idempotency_key", "created_at"}

func TestAnswerAttemptRepository_Create(t *testing.T) {
	option := 2
	attempt := &domain.AnswerAttempt{
		ID:         "att-1",
		UserID:     7,
		Mode:       domain.ModeDiagnostic,
		ProblemID:  "p-1",
		TestID:     "test-1",
		UserAnswer: domain.UserAnswer{SelectedOption: &option},
		CreatedAt:  time.Now(),
	}

	t.Run("stores the answer payload as json", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewSQLXAnswerAttemptRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO answer_attempts")).
			WithArgs("att-1", int64(7), "diagnostic", "p-1", nil, nil, "test-1", nil,
				`{"value":"","selectedOption":2}`, nil, nil, nil, nil, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.Create(context.Background(), attempt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second answer for the same problem", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewSQLXAnswerAttemptRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO answer_attempts")).WillReturnError(uniqueViolation())

		assert.ErrorIs(t, repo.Create(context.Background(), attempt), domain.ErrDuplicateIdempotencyKey)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAnswerAttemptRepository_ListByTest(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXAnswerAttemptRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM answer_attempts WHERE test_id = $1 ORDER BY created_at ASC")).
		WithArgs("test-1").
		WillReturnRows(sqlmock.NewRows(attemptRowColumns).
			AddRow("att-1", int64(7), "diagnostic", "p-1", nil, nil, "test-1", nil, `{"value":"4"}`, nil, int64(30), nil, nil, now).
			AddRow("att-2", int64(7), "diagnostic", "p-2", nil, nil, "test-1", nil, `{"value":"","selectedOption":1}`, true, nil, now, nil, now))

	attempts, err := repo.ListByTest(context.Background(), "test-1")
	require.NoError(t, err)
	require.Len(t, attempts, 2)

	assert.Equal(t, "4", attempts[0].UserAnswer.Value)
	assert.Nil(t, attempts[0].IsCorrect)
	require.NotNil(t, attempts[0].DurationSeconds)
	assert.Equal(t, 30, *attempts[0].DurationSeconds)

	require.NotNil(t, attempts[1].UserAnswer.SelectedOption)
	assert.Equal(t, 1, *attempts[1].UserAnswer.SelectedOption)
	require.NotNil(t, attempts[1].IsCorrect)
	assert.True(t, *attempts[1].IsCorrect)
	assert.NotNil(t, attempts[1].ScoredAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerAttemptRepository_Counts(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXAnswerAttemptRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(int64(7), "p-1", "practice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	exists, err := repo.HasPracticeAttempt(ctx, 7, "p-1")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN problems p ON p.id = a.problem_id")).
		WithArgs(int64(7), "practice", "unit-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	n, err := repo.CountDistinctProblemsInUnit(ctx, 7, "unit-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN vocabularies v ON v.id = a.vocab_id")).
		WithArgs(int64(7), "vocab_test", "unit-1", "math_term").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	n, err = repo.CountDistinctVocabInUnit(ctx, 7, "unit-1")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN vocabularies v ON v.id = a.vocab_id")).
		WithArgs(int64(7), "vocab_test", "sat_act").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))
	n, err = repo.CountDistinctVocabByCategory(ctx, 7, domain.VocabFrequent)
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM answer_attempts WHERE test_id = $1")).
		WithArgs("test-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	n, err = repo.CountByTest(ctx, "test-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerAttemptRepository_ScoreAndDelete(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXAnswerAttemptRepository(db)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE answer_attempts SET is_correct = $1, scored_at = $2 WHERE id = $3")).
		WithArgs(true, sqlmock.AnyArg(), "att-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.MarkScored(context.Background(), "att-1", true, now))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM answer_attempts WHERE test_id = $1")).
		WithArgs("test-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	deleted, err := repo.DeleteByTest(context.Background(), "test-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}
