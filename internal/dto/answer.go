package dto

// UserAnswerPayload is the submitted answer: free text or a selected option index.
type UserAnswerPayload struct {
	Value          string `json:"value"`
	SelectedOption *int   `json:"selectedOption,omitempty"`
}

// CheckAnswerRequest scores a practice or vocabulary answer.
// @Description Request body for checking an answer
type CheckAnswerRequest struct {
	Mode            string            `json:"mode"`
	ProblemID       string            `json:"problemId,omitempty"`
	VocabID         string            `json:"vocabId,omitempty"`
	SetID           string            `json:"setId,omitempty"`
	Direction       string            `json:"direction,omitempty"`
	UserAnswer      UserAnswerPayload `json:"userAnswer"`
	DurationSeconds *int              `json:"durationSeconds,omitempty"`
	IdempotencyKey  string            `json:"idempotencyKey,omitempty"`
}

// CheckAnswerResponse is the scoring outcome of one answer.
type CheckAnswerResponse struct {
	AnswerID           string                `json:"answerId"`
	IsCorrect          bool                  `json:"isCorrect"`
	CorrectAnswer      string                `json:"correctAnswer"`
	Explanation        string                `json:"explanation,omitempty"`
	UpdatedProgress    *UnitProgressResponse `json:"updatedProgress,omitempty"`
	XPGained           int                   `json:"xpGained,omitempty"`
	GamificationUpdate *GamificationUpdate   `json:"gamificationUpdate,omitempty"`
}

// ConceptCompleteResponse is returned after a concept is marked complete.
type ConceptCompleteResponse struct {
	UnitID             string                `json:"unitId"`
	UpdatedProgress    *UnitProgressResponse `json:"updatedProgress"`
	XPGained           int                   `json:"xpGained"`
	Duplicate          bool                  `json:"duplicate,omitempty"`
	GamificationUpdate *GamificationUpdate   `json:"gamificationUpdate,omitempty"`
}
