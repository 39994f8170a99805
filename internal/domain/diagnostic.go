package domain

import (
	"fmt"
	"math"
	"time"
)

// GradeRange is the school-grade span a diagnostic covers.
type GradeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

var diagnosticUnits = map[GradeRange]string{
	{Min: 1, Max: 1}: "middle_1",
	{Min: 1, Max: 2}: "middle_1_2",
	{Min: 1, Max: 3}: "middle_1_3",
}

// DefaultDiagnosticUnit is used for grade ranges without a dedicated set.
const DefaultDiagnosticUnit = "middle_1_3"

// DiagnosticUnit maps the range to the problem-set key it is served from.
func (g GradeRange) DiagnosticUnit() string {
	if unit, ok := diagnosticUnits[g]; ok {
		return unit
	}
	return DefaultDiagnosticUnit
}

func (g GradeRange) String() string {
	return fmt.Sprintf("%d-%d", g.Min, g.Max)
}

type DiagnosticState string

const (
	DiagnosticInProgress DiagnosticState = "in_progress"
	DiagnosticCompleted  DiagnosticState = "completed"
	DiagnosticTimedOut   DiagnosticState = "timed_out"
)

// DiagnosticTest is one user's diagnostic session.
type DiagnosticTest struct {
	ID             string
	UserID         int64
	GradeRange     GradeRange
	ProblemSetID   string
	RuleSnapshot   map[string]interface{}
	StartedAt      time.Time
	EndedAt        *time.Time
	DurationSec    *int
	Completed      bool
	TimedOut       bool
	RestartCount   int
	TimeoutMinutes int
	ShuffleSeed    int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (t *DiagnosticTest) State() DiagnosticState {
	switch {
	case t.TimedOut:
		return DiagnosticTimedOut
	case t.Completed:
		return DiagnosticCompleted
	default:
		return DiagnosticInProgress
	}
}

// Expired reports whether more than TimeoutMinutes have elapsed since StartedAt.
func (t *DiagnosticTest) Expired(now time.Time) bool {
	return now.Sub(t.StartedAt).Minutes() > float64(t.TimeoutMinutes)
}

// RemainingMinutes is the whole number of minutes left before the session expires.
func (t *DiagnosticTest) RemainingMinutes(now time.Time) int {
	remaining := float64(t.TimeoutMinutes) - now.Sub(t.StartedAt).Minutes()
	if remaining <= 0 {
		return 0
	}
	return int(math.Floor(remaining))
}

// ElapsedSeconds is the session duration truncated to seconds.
func (t *DiagnosticTest) ElapsedSeconds(now time.Time) int {
	d := int(now.Sub(t.StartedAt) / time.Second)
	if d < 0 {
		return 0
	}
	return d
}

const (
	shuffleMultiplier = 9301
	shuffleIncrement  = 49297
	shuffleModulus    = 233280

	// MaxShuffleSeed bounds freshly drawn seeds to [0, MaxShuffleSeed).
	MaxShuffleSeed = 1000000
)

// Shuffle returns a permutation of ids driven by a linear congruential generator.
// The same ids and seed always produce the same order, so the current item of a
// session can be derived from the number of answers alone.
func Shuffle(ids []string, seed int64) []string {
	shuffled := make([]string, len(ids))
	copy(shuffled, ids)

	current := seed
	for i := len(shuffled) - 1; i > 0; i-- {
		current = (current*shuffleMultiplier + shuffleIncrement) % shuffleModulus
		if current < 0 {
			current += shuffleModulus
		}
		j := int(math.Floor(float64(current) / shuffleModulus * float64(i+1)))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// NextProblemID returns the id following current in order, or "" when current is
// the last one or is not part of the order.
func NextProblemID(order []string, current string) string {
	for i, id := range order {
		if id == current {
			if i+1 < len(order) {
				return order[i+1]
			}
			return ""
		}
	}
	return ""
}

// ScorePercent is the integer-rounded share of correct answers, 0 with no answers.
func ScorePercent(correct, total int) int {
	return RatioPercent(correct, total)
}

// RecommendedUnit is one step of the learning path suggested by the analysis service.
type RecommendedUnit struct {
	UnitID    string `json:"unitId"`
	UnitTitle string `json:"unitTitle"`
	Priority  int    `json:"priority"`
	Reason    string `json:"reason"`
}

// DiagnosticAnalysis is the record produced asynchronously by the analysis service.
type DiagnosticAnalysis struct {
	TestID          string            `json:"testId"`
	UserID          int64             `json:"userId"`
	AIComment       string            `json:"aiComment"`
	RecommendedPath []RecommendedUnit `json:"recommendedPath"`
	Class           string            `json:"class"`
	GeneratedAt     time.Time         `json:"generatedAt"`
}

// AnalysisAnswer is one scored answer in the analysis hand-off payload.
type AnalysisAnswer struct {
	ProblemID       string     `json:"problemId"`
	UserAnswer      UserAnswer `json:"userAnswer"`
	IsCorrect       bool       `json:"isCorrect"`
	DurationSeconds int        `json:"durationSeconds"`
}

// AnalysisRequest is the transcript sent to the analysis service on completion.
type AnalysisRequest struct {
	TestID        string           `json:"testId"`
	UserID        int64            `json:"userId"`
	GradeRange    GradeRange       `json:"gradeRange"`
	Answers       []AnalysisAnswer `json:"answers"`
	TotalProblems int              `json:"totalProblems"`
	DurationSec   int              `json:"durationSec"`
}
