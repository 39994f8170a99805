package dto

import "time"

type GradeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// EligibilityResponse says whether the user may take the diagnostic test.
type EligibilityResponse struct {
	Eligible       bool   `json:"eligible"`
	Reason         string `json:"reason"`
	ExistingTestID string `json:"existingTestId,omitempty"`
}

// StartDiagnosticRequest opens a session.
// @Description Request body for starting a diagnostic test
type StartDiagnosticRequest struct {
	GradeRange GradeRange             `json:"gradeRange"`
	Rule       map[string]interface{} `json:"rule,omitempty"`
}

type StartDiagnosticResponse struct {
	TestID         string     `json:"testId"`
	UserID         int64      `json:"userId"`
	GradeRange     GradeRange `json:"gradeRange"`
	StartedAt      time.Time  `json:"startedAt"`
	FirstProblemID *string    `json:"firstProblemId"`
	TotalProblems  int        `json:"totalProblems"`
	TimeoutMinutes int        `json:"timeoutMinutes"`
	IsRestart      bool       `json:"isRestart"`
	RestartCount   int        `json:"restartCount"`
	ShuffleSeed    int64      `json:"shuffleSeed"`
}

type DiagnosticStatusResponse struct {
	TestID           string    `json:"testId"`
	UserID           int64     `json:"userId"`
	Completed        bool      `json:"completed"`
	TimedOut         bool      `json:"timedOut"`
	AnsweredCount    int       `json:"answeredCount"`
	RemainingCount   int       `json:"remainingCount"`
	CurrentProblemID *string   `json:"currentProblemId"`
	StartedAt        time.Time `json:"startedAt"`
	TimeoutMinutes   int       `json:"timeoutMinutes"`
}

// SubmitAnswerRequest stores one unscored diagnostic answer.
// @Description Request body for submitting a diagnostic answer
type SubmitAnswerRequest struct {
	ProblemID       string            `json:"problemId"`
	UserAnswer      UserAnswerPayload `json:"userAnswer"`
	DurationSeconds *int              `json:"durationSeconds,omitempty"`
	IdempotencyKey  string            `json:"idempotencyKey,omitempty"`
}

type SubmitAnswerResponse struct {
	AnswerID       string  `json:"answerId"`
	IsCorrect      *bool   `json:"isCorrect"`
	NextProblemID  *string `json:"nextProblemId"`
	AnsweredCount  int     `json:"answeredCount"`
	RemainingCount int     `json:"remainingCount"`
}

type CompleteDiagnosticResponse struct {
	TestID                string `json:"testId"`
	Completed             bool   `json:"completed"`
	DurationSec           int    `json:"durationSec"`
	TotalProblems         int    `json:"totalProblems"`
	AnsweredProblems      int    `json:"answeredProblems"`
	Score                 int    `json:"score"`
	CorrectCount          int    `json:"correctCount"`
	AnalysisRequested     bool   `json:"analysisRequested"`
	EstimatedAnalysisTime string `json:"estimatedAnalysisTime"`
}

type RestartDiagnosticResponse struct {
	TestID         string    `json:"testId"`
	RestartCount   int       `json:"restartCount"`
	StartedAt      time.Time `json:"startedAt"`
	FirstProblemID *string   `json:"firstProblemId"`
	TotalProblems  int       `json:"totalProblems"`
	ShuffleSeed    int64     `json:"shuffleSeed"`
	DeletedAnswers int64     `json:"deletedAnswers"`
}

type TimeoutStatusResponse struct {
	TestID              string    `json:"testId"`
	TimedOut            bool      `json:"timedOut"`
	RemainingMinutes    int       `json:"remainingMinutes"`
	TotalTimeoutMinutes int       `json:"totalTimeoutMinutes"`
	StartedAt           time.Time `json:"startedAt"`
	DurationSec         *int      `json:"durationSec,omitempty"`
}

type RecommendedUnit struct {
	UnitID    string `json:"unitId"`
	UnitTitle string `json:"unitTitle"`
	Priority  int    `json:"priority"`
	Reason    string `json:"reason"`
}

// AnalysisResponse is either the finished analysis or, while the analysis
// service is still working, the processing status.
type AnalysisResponse struct {
	TestID                  string            `json:"testId"`
	Status                  string            `json:"status"`
	AIComment               string            `json:"aiComment,omitempty"`
	RecommendedPath         []RecommendedUnit `json:"recommendedPath,omitempty"`
	Class                   string            `json:"class,omitempty"`
	GeneratedAt             *time.Time        `json:"generatedAt,omitempty"`
	EstimatedCompletionTime *time.Time        `json:"estimatedCompletionTime,omitempty"`
}

// AnalysisStatus values of AnalysisResponse.
const (
	AnalysisStatusAnalyzing = "analyzing"
	AnalysisStatusCompleted = "completed"
)

// IngestAnalysisRequest is the analysis service callback body.
// @Description Analysis record delivered by the analysis service
type IngestAnalysisRequest struct {
	TestID          string            `json:"testId"`
	UserID          int64             `json:"userId"`
	AIComment       string            `json:"aiComment"`
	RecommendedPath []RecommendedUnit `json:"recommendedPath"`
	Class           string            `json:"class"`
	GeneratedAt     *time.Time        `json:"generatedAt,omitempty"`
}
