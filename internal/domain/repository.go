package domain

import (
	"context"
	"time"
)

// Repositories return (nil, nil) when a single record is not found.

// XPLedgerRepository is the append-only store of XP grants.
type XPLedgerRepository interface {
	// Insert returns ErrDuplicateIdempotencyKey when the key was used before.
	Insert(ctx context.Context, entry *XPLedgerEntry) error
	GetByIdempotencyKey(ctx context.Context, key string) (*XPLedgerEntry, error)
	ListByUser(ctx context.Context, userID int64, filter XPHistoryFilter) ([]XPLedgerEntry, int, error)
}

type GamificationStateRepository interface {
	// GetOrCreate returns the stored state, inserting initial first when none exists.
	GetOrCreate(ctx context.Context, initial *GamificationState) (*GamificationState, error)
	// CompareAndSwap writes state when the stored version equals expectedVersion and
	// bumps the version; it returns ErrConcurrentUpdate otherwise.
	CompareAndSwap(ctx context.Context, state *GamificationState, expectedVersion int64) error
	InsertLevelUps(ctx context.Context, levelUps []LevelUp) error
	ListLevelUps(ctx context.Context, userID int64) ([]LevelUp, error)
}

type UnitProgressRepository interface {
	// UpsertAxis creates the row on first touch and otherwise sets only axis.
	// With keepHighest the stored value never decreases.
	UpsertAxis(ctx context.Context, userID int64, unitID string, category ProgressCategory, axis ProgressAxis, value int, keepHighest bool, now time.Time) (*UnitProgress, error)
	Get(ctx context.Context, userID int64, unitID string, category ProgressCategory) (*UnitProgress, error)
	ListByUser(ctx context.Context, userID int64) ([]UnitProgress, error)
}

type UnitRepository interface {
	GetByID(ctx context.Context, id string) (*Unit, error)
	ListActive(ctx context.Context) ([]Unit, error)
	Upsert(ctx context.Context, unit *Unit) error
}

type ProblemRepository interface {
	GetByID(ctx context.Context, id string) (*Problem, error)
	GetByIDs(ctx context.Context, ids []string) ([]Problem, error)
	CountByUnit(ctx context.Context, unitID string) (int, error)
	Upsert(ctx context.Context, problem *Problem) error
}

type ProblemSetRepository interface {
	GetByID(ctx context.Context, id string) (*ProblemSet, error)
	FindDiagnostic(ctx context.Context, diagnosticUnit string) (*ProblemSet, error)
	Upsert(ctx context.Context, set *ProblemSet) error
}

type VocabularyRepository interface {
	GetByID(ctx context.Context, id string) (*Vocabulary, error)
	CountByUnit(ctx context.Context, unitID string, category VocabCategory) (int, error)
	CountByCategory(ctx context.Context, category VocabCategory) (int, error)
	Upsert(ctx context.Context, vocab *Vocabulary) error
}

type AnswerAttemptRepository interface {
	// Create returns ErrDuplicateIdempotencyKey when the idempotency key, or the
	// (test, problem) pair of a diagnostic attempt, was stored before.
	Create(ctx context.Context, attempt *AnswerAttempt) error
	GetByIdempotencyKey(ctx context.Context, key string) (*AnswerAttempt, error)
	HasPracticeAttempt(ctx context.Context, userID int64, problemID string) (bool, error)
	CountDistinctProblemsInUnit(ctx context.Context, userID int64, unitID string) (int, error)
	CountDistinctVocabInUnit(ctx context.Context, userID int64, unitID string) (int, error)
	CountDistinctVocabByCategory(ctx context.Context, userID int64, category VocabCategory) (int, error)
	CountByTest(ctx context.Context, testID string) (int, error)
	ListByTest(ctx context.Context, testID string) ([]AnswerAttempt, error)
	MarkScored(ctx context.Context, id string, isCorrect bool, scoredAt time.Time) error
	DeleteByTest(ctx context.Context, testID string) (int64, error)
}

type DiagnosticTestRepository interface {
	Create(ctx context.Context, test *DiagnosticTest) error
	GetByID(ctx context.Context, id string) (*DiagnosticTest, error)
	FindCompletedByUser(ctx context.Context, userID int64) (*DiagnosticTest, error)
	FindActiveByUser(ctx context.Context, userID int64) (*DiagnosticTest, error)
	// MarkCompleted transitions an incomplete session; it reports false when the
	// session was already completed.
	MarkCompleted(ctx context.Context, id string, endedAt time.Time, durationSec int, timedOut bool) (bool, error)
	// Restart applies when the session is incomplete and its restart count still
	// equals expectedRestartCount; it reports false otherwise.
	Restart(ctx context.Context, id string, expectedRestartCount int, startedAt time.Time, seed int64) (bool, error)
}

type DiagnosticAnalysisRepository interface {
	GetByTestID(ctx context.Context, testID string) (*DiagnosticAnalysis, error)
	Upsert(ctx context.Context, analysis *DiagnosticAnalysis) error
}

// AnalysisClient hands a completed transcript to the external analysis service.
type AnalysisClient interface {
	RequestAnalysis(ctx context.Context, req *AnalysisRequest) error
}

// TransactionManager runs fn inside one storage transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CharacterRepository interface {
	GetByID(ctx context.Context, id string) (*Character, error)
	// ListDefault returns the active default characters of gender by level.
	ListDefault(ctx context.Context, gender string) ([]Character, error)
	Upsert(ctx context.Context, character *Character) error
}
