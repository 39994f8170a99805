package service

import (
	"testing"
	"time"

	"nerd-math/internal/config"
	"nerd-math/internal/domain"
)

const testUserID int64 = 1001

// testEnv wires every service onto one in-memory store and a shared clock.
type testEnv struct {
	store    *memStore
	tx       *memTxManager
	clock    *fakeClock
	cache    *memCache
	analysis *MockAnalysisClient

	gamification *gamificationServiceImpl
	progress     *progressServiceImpl
	answers      *answerServiceImpl
	diagnostics  *diagnosticServiceImpl

	seeds []int64
}

type envOption func(*envConfig)

type envConfig struct {
	gamification config.GamificationConfig
	progress     config.ProgressConfig
	diagnostic   config.DiagnosticConfig
	analysis     config.AnalysisConfig
}

func withCascade(cascade bool) envOption {
	return func(c *envConfig) { c.gamification.CascadeLevelUps = cascade }
}

func withMonotonicProgress() envOption {
	return func(c *envConfig) { c.progress.Monotonic = true }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	cfg := envConfig{
		gamification: config.GamificationConfig{CascadeLevelUps: true, MaxAwardRetries: 3},
		progress:     config.ProgressConfig{TotalUnits: 2, SummaryTTL: time.Minute},
		diagnostic:   config.DiagnosticConfig{TimeoutMinutes: 60, MaxRestarts: 2},
		analysis: config.AnalysisConfig{
			EstimatedDelay:     5 * time.Minute,
			EstimatedTimeLabel: "5-10 minutes",
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	env := &testEnv{
		store:    newMemStore(),
		clock:    newFakeClock(),
		cache:    newMemCache(),
		analysis: new(MockAnalysisClient),
		seeds:    []int64{12345, 424242, 999},
	}
	env.tx = &memTxManager{store: env.store}
	s := env.store

	env.gamification = NewGamificationService(memLedgerRepo{s}, memStateRepo{s}, memCharacterRepo{s}, env.tx, cfg.gamification).(*gamificationServiceImpl)
	env.gamification.now = env.clock.Now

	summaries := NewProgressSummaryCache(env.cache, cfg.progress.SummaryTTL)
	env.progress = NewProgressService(memProgressRepo{s}, memUnitRepo{s}, summaries, cfg.progress).(*progressServiceImpl)
	env.progress.now = env.clock.Now

	env.answers = NewAnswerService(
		memProblemRepo{s}, memProblemSetRepo{s}, memVocabRepo{s}, memUnitRepo{s}, memAttemptRepo{s},
		env.progress, env.gamification,
	).(*answerServiceImpl)
	env.answers.now = env.clock.Now

	env.diagnostics = NewDiagnosticService(
		memDiagnosticRepo{s}, memAttemptRepo{s}, memProblemRepo{s}, memProblemSetRepo{s}, memAnalysisRepo{s},
		env.analysis, NewAnalysisTracker(env.cache, time.Hour), env.tx,
		cfg.diagnostic, cfg.analysis,
	).(*diagnosticServiceImpl)
	env.diagnostics.now = env.clock.Now
	env.diagnostics.newSeed = func() int64 {
		seed := env.seeds[0]
		env.seeds = append(env.seeds[1:], seed)
		return seed
	}
	return env
}

func intPtr(v int) *int { return &v }

// seedCatalog stores two units, each with two problems, two unit terms and one
// shared frequent-vocabulary word, plus a four-problem diagnostic set.
func (e *testEnv) seedCatalog() {
	s := e.store
	s.units["unit_1"] = domain.Unit{ID: "unit_1", Title: "Integers", SortOrder: 1, Active: true}
	s.units["unit_2"] = domain.Unit{ID: "unit_2", Title: "Fractions", SortOrder: 2, Active: true}

	s.problems["p1"] = domain.Problem{ID: "p1", UnitID: "unit_1", Type: domain.ProblemMultipleChoice,
		Options: []string{"1", "2", "3", "4"}, CorrectAnswer: "3", Explanation: "1 + 2 = 3"}
	s.problems["p2"] = domain.Problem{ID: "p2", UnitID: "unit_1", Type: domain.ProblemShortAnswer, CorrectAnswer: "-5"}
	s.problems["p3"] = domain.Problem{ID: "p3", UnitID: "unit_2", Type: domain.ProblemShortAnswer, CorrectAnswer: "1/2"}
	s.problems["p4"] = domain.Problem{ID: "p4", UnitID: "unit_2", Type: domain.ProblemMultipleChoice,
		Options: []string{"a", "b"}, CorrectAnswer: "1"}

	s.sets["set_practice_1"] = domain.ProblemSet{ID: "set_practice_1", Mode: domain.ProblemSetModePractice,
		UnitID: "unit_1", ProblemIDs: []string{"p1", "p2"}}
	s.sets["set_diag"] = domain.ProblemSet{ID: "set_diag", Mode: domain.ProblemSetModeDiagnostic,
		DiagnosticUnit: "middle_1_3", ProblemIDs: []string{"p1", "p2", "p3", "p4"}}

	s.vocab["v1"] = domain.Vocabulary{ID: "v1", UnitID: "unit_1", Category: domain.VocabMathTerm, Word: "integer", Meaning: "whole number"}
	s.vocab["v2"] = domain.Vocabulary{ID: "v2", UnitID: "unit_1", Category: domain.VocabMathTerm, Word: "absolute value", Meaning: "distance from zero"}
	s.vocab["v3"] = domain.Vocabulary{ID: "v3", UnitID: "unit_2", Category: domain.VocabMathTerm, Word: "numerator", Meaning: "top number"}
	s.vocab["v4"] = domain.Vocabulary{ID: "v4", Category: domain.VocabFrequent, Word: "estimate", Meaning: "approximate value"}
}
