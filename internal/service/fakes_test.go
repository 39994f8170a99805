package service

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"nerd-math/internal/domain"
)

// memStore backs the in-memory repositories used by the scenario tests. It mirrors
// the uniqueness and conditional-update rules of the SQL schema.
type memStore struct {
	mu sync.Mutex

	ledger   []domain.XPLedgerEntry
	states   map[int64]domain.GamificationState
	levelUps []domain.LevelUp
	progress map[progressKey]domain.UnitProgress
	units    map[string]domain.Unit
	problems map[string]domain.Problem
	sets     map[string]domain.ProblemSet
	vocab    map[string]domain.Vocabulary
	attempts []domain.AnswerAttempt
	tests    map[string]domain.DiagnosticTest
	analyses map[string]domain.DiagnosticAnalysis
	chars    map[string]domain.Character

	// casFailures makes the next n CompareAndSwap calls report a conflict.
	casFailures int
}

type progressKey struct {
	userID   int64
	unitID   string
	category domain.ProgressCategory
}

func newMemStore() *memStore {
	return &memStore{
		states:   map[int64]domain.GamificationState{},
		progress: map[progressKey]domain.UnitProgress{},
		units:    map[string]domain.Unit{},
		problems: map[string]domain.Problem{},
		sets:     map[string]domain.ProblemSet{},
		vocab:    map[string]domain.Vocabulary{},
		tests:    map[string]domain.DiagnosticTest{},
		analyses: map[string]domain.DiagnosticAnalysis{},
		chars:    map[string]domain.Character{},
	}
}

type memSnapshot struct {
	ledger   []domain.XPLedgerEntry
	states   map[int64]domain.GamificationState
	levelUps []domain.LevelUp
	progress map[progressKey]domain.UnitProgress
	attempts []domain.AnswerAttempt
	tests    map[string]domain.DiagnosticTest
	analyses map[string]domain.DiagnosticAnalysis
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memSnapshot{
		ledger:   append([]domain.XPLedgerEntry(nil), s.ledger...),
		states:   copyMap(s.states),
		levelUps: append([]domain.LevelUp(nil), s.levelUps...),
		progress: copyMap(s.progress),
		attempts: append([]domain.AnswerAttempt(nil), s.attempts...),
		tests:    copyMap(s.tests),
		analyses: copyMap(s.analyses),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = snap.ledger
	s.states = snap.states
	s.levelUps = snap.levelUps
	s.progress = snap.progress
	s.attempts = snap.attempts
	s.tests = snap.tests
	s.analyses = snap.analyses
}

type memTxKey struct{}

// memTxManager rolls the store back when fn fails. Nested calls join.
type memTxManager struct {
	store   *memStore
	commits int
}

func (m *memTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}
	snap := m.store.snapshot()
	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		m.store.restore(snap)
		return err
	}
	m.commits++
	return nil
}

// --- gamification ---

type memLedgerRepo struct{ s *memStore }

func (r memLedgerRepo) Insert(_ context.Context, entry *domain.XPLedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.ledger {
		if e.IdempotencyKey == entry.IdempotencyKey {
			return domain.ErrDuplicateIdempotencyKey
		}
	}
	r.s.ledger = append(r.s.ledger, *entry)
	return nil
}

func (r memLedgerRepo) GetByIdempotencyKey(_ context.Context, key string) (*domain.XPLedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.ledger {
		if e.IdempotencyKey == key {
			entry := e
			return &entry, nil
		}
	}
	return nil, nil
}

func (r memLedgerRepo) ListByUser(_ context.Context, userID int64, filter domain.XPHistoryFilter) ([]domain.XPLedgerEntry, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []domain.XPLedgerEntry
	for _, e := range r.s.ledger {
		if e.UserID == userID && (filter.Reason == "" || e.Reason == filter.Reason) {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].OccurredAt.Equal(matched[j].OccurredAt) {
			return matched[i].OccurredAt.After(matched[j].OccurredAt)
		}
		return matched[i].TransactionID > matched[j].TransactionID
	})
	total := len(matched)
	start := filter.Offset
	if start > total {
		start = total
	}
	end := total
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}
	return matched[start:end], total, nil
}

type memStateRepo struct{ s *memStore }

func (r memStateRepo) GetOrCreate(_ context.Context, initial *domain.GamificationState) (*domain.GamificationState, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	state, ok := r.s.states[initial.UserID]
	if !ok {
		state = *initial
		r.s.states[initial.UserID] = state
	}
	return &state, nil
}

func (r memStateRepo) CompareAndSwap(_ context.Context, state *domain.GamificationState, expectedVersion int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.casFailures > 0 {
		r.s.casFailures--
		return domain.ErrConcurrentUpdate
	}
	stored, ok := r.s.states[state.UserID]
	if !ok || stored.Version != expectedVersion {
		return domain.ErrConcurrentUpdate
	}
	next := *state
	next.Version = expectedVersion + 1
	r.s.states[state.UserID] = next
	state.Version = next.Version
	return nil
}

func (r memStateRepo) InsertLevelUps(_ context.Context, levelUps []domain.LevelUp) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.levelUps = append(r.s.levelUps, levelUps...)
	return nil
}

func (r memStateRepo) ListLevelUps(_ context.Context, userID int64) ([]domain.LevelUp, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.LevelUp
	for _, l := range r.s.levelUps {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level > out[j].Level })
	return out, nil
}

// --- progress ---

type memProgressRepo struct{ s *memStore }

func (r memProgressRepo) UpsertAxis(_ context.Context, userID int64, unitID string, category domain.ProgressCategory, axis domain.ProgressAxis, value int, keepHighest bool, now time.Time) (*domain.UnitProgress, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := progressKey{userID: userID, unitID: unitID, category: category}
	row, ok := r.s.progress[key]
	if !ok {
		row = domain.UnitProgress{UserID: userID, UnitID: unitID, Category: category, CreatedAt: now}
	}
	set := func(current *int) {
		if !keepHighest || value > *current {
			*current = value
		}
	}
	switch axis {
	case domain.AxisConcept:
		set(&row.ConceptProgress)
	case domain.AxisProblem:
		set(&row.ProblemProgress)
	case domain.AxisVocab:
		set(&row.VocabProgress)
	}
	row.UpdatedAt = now
	r.s.progress[key] = row
	return &row, nil
}

func (r memProgressRepo) Get(_ context.Context, userID int64, unitID string, category domain.ProgressCategory) (*domain.UnitProgress, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.progress[progressKey{userID: userID, unitID: unitID, category: category}]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r memProgressRepo) ListByUser(_ context.Context, userID int64) ([]domain.UnitProgress, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.UnitProgress
	for key, row := range r.s.progress {
		if key.userID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

// --- catalog ---

type memUnitRepo struct{ s *memStore }

func (r memUnitRepo) GetByID(_ context.Context, id string) (*domain.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.units[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r memUnitRepo) ListActive(_ context.Context) ([]domain.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Unit
	for _, u := range r.s.units {
		if u.Active {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r memUnitRepo) Upsert(_ context.Context, unit *domain.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.units[unit.ID] = *unit
	return nil
}

type memCharacterRepo struct{ s *memStore }

func (r memCharacterRepo) GetByID(_ context.Context, id string) (*domain.Character, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.chars[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r memCharacterRepo) ListDefault(_ context.Context, gender string) ([]domain.Character, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Character
	for _, c := range r.s.chars {
		if c.Gender == gender && c.IsDefault && c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r memCharacterRepo) Upsert(_ context.Context, character *domain.Character) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.chars[character.ID] = *character
	return nil
}

type memProblemRepo struct{ s *memStore }

func (r memProblemRepo) GetByID(_ context.Context, id string) (*domain.Problem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.problems[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProblemRepo) GetByIDs(_ context.Context, ids []string) ([]domain.Problem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Problem, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.s.problems[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memProblemRepo) CountByUnit(_ context.Context, unitID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, p := range r.s.problems {
		if p.UnitID == unitID {
			n++
		}
	}
	return n, nil
}

func (r memProblemRepo) Upsert(_ context.Context, problem *domain.Problem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.problems[problem.ID] = *problem
	return nil
}

type memProblemSetRepo struct{ s *memStore }

func (r memProblemSetRepo) GetByID(_ context.Context, id string) (*domain.ProblemSet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	set, ok := r.s.sets[id]
	if !ok {
		return nil, nil
	}
	return &set, nil
}

func (r memProblemSetRepo) FindDiagnostic(_ context.Context, diagnosticUnit string) (*domain.ProblemSet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, set := range r.s.sets {
		if set.Mode == domain.ProblemSetModeDiagnostic && set.DiagnosticUnit == diagnosticUnit {
			found := set
			return &found, nil
		}
	}
	return nil, nil
}

func (r memProblemSetRepo) Upsert(_ context.Context, set *domain.ProblemSet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sets[set.ID] = *set
	return nil
}

type memVocabRepo struct{ s *memStore }

func (r memVocabRepo) GetByID(_ context.Context, id string) (*domain.Vocabulary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.vocab[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r memVocabRepo) CountByUnit(_ context.Context, unitID string, category domain.VocabCategory) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, v := range r.s.vocab {
		if v.UnitID == unitID && v.Category == category {
			n++
		}
	}
	return n, nil
}

func (r memVocabRepo) CountByCategory(_ context.Context, category domain.VocabCategory) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, v := range r.s.vocab {
		if v.Category == category {
			n++
		}
	}
	return n, nil
}

func (r memVocabRepo) Upsert(_ context.Context, vocab *domain.Vocabulary) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.vocab[vocab.ID] = *vocab
	return nil
}

// --- attempts ---

type memAttemptRepo struct{ s *memStore }

func (r memAttemptRepo) Create(_ context.Context, attempt *domain.AnswerAttempt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.attempts {
		if attempt.IdempotencyKey != "" && a.IdempotencyKey == attempt.IdempotencyKey {
			return domain.ErrDuplicateIdempotencyKey
		}
		if attempt.TestID != "" && a.TestID == attempt.TestID && a.ProblemID == attempt.ProblemID {
			return domain.ErrDuplicateIdempotencyKey
		}
	}
	r.s.attempts = append(r.s.attempts, *attempt)
	return nil
}

func (r memAttemptRepo) GetByIdempotencyKey(_ context.Context, key string) (*domain.AnswerAttempt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.attempts {
		if a.IdempotencyKey == key {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (r memAttemptRepo) HasPracticeAttempt(_ context.Context, userID int64, problemID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.attempts {
		if a.UserID == userID && a.ProblemID == problemID && a.Mode == domain.ModePractice {
			return true, nil
		}
	}
	return false, nil
}

func (r memAttemptRepo) countDistinct(match func(a domain.AnswerAttempt) (string, bool)) int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := map[string]struct{}{}
	for _, a := range r.s.attempts {
		if id, ok := match(a); ok {
			seen[id] = struct{}{}
		}
	}
	return len(seen)
}

func (r memAttemptRepo) CountDistinctProblemsInUnit(_ context.Context, userID int64, unitID string) (int, error) {
	return r.countDistinct(func(a domain.AnswerAttempt) (string, bool) {
		p, ok := r.s.problems[a.ProblemID]
		return a.ProblemID, ok && a.UserID == userID && a.Mode == domain.ModePractice && p.UnitID == unitID
	}), nil
}

func (r memAttemptRepo) CountDistinctVocabInUnit(_ context.Context, userID int64, unitID string) (int, error) {
	return r.countDistinct(func(a domain.AnswerAttempt) (string, bool) {
		v, ok := r.s.vocab[a.VocabID]
		return a.VocabID, ok && a.UserID == userID && a.Mode == domain.ModeVocabTest &&
			v.UnitID == unitID && v.Category == domain.VocabMathTerm
	}), nil
}

func (r memAttemptRepo) CountDistinctVocabByCategory(_ context.Context, userID int64, category domain.VocabCategory) (int, error) {
	return r.countDistinct(func(a domain.AnswerAttempt) (string, bool) {
		v, ok := r.s.vocab[a.VocabID]
		return a.VocabID, ok && a.UserID == userID && a.Mode == domain.ModeVocabTest && v.Category == category
	}), nil
}

func (r memAttemptRepo) CountByTest(_ context.Context, testID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, a := range r.s.attempts {
		if a.TestID == testID {
			n++
		}
	}
	return n, nil
}

func (r memAttemptRepo) ListByTest(_ context.Context, testID string) ([]domain.AnswerAttempt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.AnswerAttempt
	for _, a := range r.s.attempts {
		if a.TestID == testID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memAttemptRepo) MarkScored(_ context.Context, id string, isCorrect bool, scoredAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.attempts {
		if r.s.attempts[i].ID == id {
			correct := isCorrect
			at := scoredAt
			r.s.attempts[i].IsCorrect = &correct
			r.s.attempts[i].ScoredAt = &at
		}
	}
	return nil
}

func (r memAttemptRepo) DeleteByTest(_ context.Context, testID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.attempts[:0:0]
	var deleted int64
	for _, a := range r.s.attempts {
		if a.TestID == testID {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	r.s.attempts = kept
	return deleted, nil
}

// --- diagnostics ---

type memDiagnosticRepo struct{ s *memStore }

func (r memDiagnosticRepo) Create(_ context.Context, test *domain.DiagnosticTest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tests {
		if t.UserID == test.UserID && !t.Completed {
			return domain.NewConflictError("an open diagnostic test already exists").WithContext("userId", test.UserID)
		}
	}
	r.s.tests[test.ID] = *test
	return nil
}

func (r memDiagnosticRepo) GetByID(_ context.Context, id string) (*domain.DiagnosticTest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tests[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r memDiagnosticRepo) findByUser(userID int64, completed bool) *domain.DiagnosticTest {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var found *domain.DiagnosticTest
	for _, t := range r.s.tests {
		if t.UserID != userID || t.Completed != completed {
			continue
		}
		if found == nil || t.StartedAt.After(found.StartedAt) {
			candidate := t
			found = &candidate
		}
	}
	return found
}

func (r memDiagnosticRepo) FindCompletedByUser(_ context.Context, userID int64) (*domain.DiagnosticTest, error) {
	return r.findByUser(userID, true), nil
}

func (r memDiagnosticRepo) FindActiveByUser(_ context.Context, userID int64) (*domain.DiagnosticTest, error) {
	return r.findByUser(userID, false), nil
}

func (r memDiagnosticRepo) MarkCompleted(_ context.Context, id string, endedAt time.Time, durationSec int, timedOut bool) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tests[id]
	if !ok || t.Completed {
		return false, nil
	}
	ended := endedAt
	d := durationSec
	t.Completed = true
	t.TimedOut = timedOut
	t.EndedAt = &ended
	t.DurationSec = &d
	t.UpdatedAt = endedAt
	r.s.tests[id] = t
	return true, nil
}

func (r memDiagnosticRepo) Restart(_ context.Context, id string, expectedRestartCount int, startedAt time.Time, seed int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tests[id]
	if !ok || t.Completed || t.RestartCount != expectedRestartCount {
		return false, nil
	}
	t.RestartCount++
	t.StartedAt = startedAt
	t.ShuffleSeed = seed
	t.UpdatedAt = startedAt
	r.s.tests[id] = t
	return true, nil
}

type memAnalysisRepo struct{ s *memStore }

func (r memAnalysisRepo) GetByTestID(_ context.Context, testID string) (*domain.DiagnosticAnalysis, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.analyses[testID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r memAnalysisRepo) Upsert(_ context.Context, analysis *domain.DiagnosticAnalysis) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.analyses[analysis.TestID] = *analysis
	return nil
}

// memCache is a map-backed domain.Cache; expirations are recorded, not enforced.
type memCache struct {
	mu      sync.Mutex
	values  map[string]string
	hashes  map[string]map[string]string
	expires map[string]time.Duration
}

func newMemCache() *memCache {
	return &memCache{
		values:  map[string]string{},
		hashes:  map[string]map[string]string{},
		expires: map[string]time.Duration{},
	}
}

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, key string, value string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	c.expires[key] = expiration
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	delete(c.hashes, key)
	return nil
}

func (c *memCache) Ping(context.Context) error { return nil }

func (c *memCache) HGet(_ context.Context, key, field string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.hashes[key][field]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (c *memCache) HSet(_ context.Context, key string, field string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hashes[key] == nil {
		c.hashes[key] = map[string]string{}
	}
	c.hashes[key][field] = value
	return nil
}

func (c *memCache) Expire(_ context.Context, key string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expires[key] = expiration
	return nil
}

func (c *memCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, err := strconv.ParseInt(c.values[key], 10, 64)
	if c.values[key] != "" && err != nil {
		return 0, err
	}
	n++
	c.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

// fakeClock is a settable time source for services under test.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
