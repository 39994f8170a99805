package domain

import (
	"strconv"
	"strings"
)

// Unit is one entry of the curriculum catalog.
type Unit struct {
	ID        string
	Title     string
	Chapter   string
	SortOrder int
	Active    bool
}

type ProblemType string

const (
	ProblemMultipleChoice ProblemType = "multiple_choice"
	ProblemShortAnswer    ProblemType = "short_answer"
)

type Problem struct {
	ID            string
	UnitID        string
	Type          ProblemType
	Question      string
	Options       []string
	CorrectAnswer string
	Explanation   string
}

// CorrectOptionIndex resolves the index of the correct option. The answer key is
// matched against the option texts first; a key that matches no option but parses
// as an integer is taken as the index itself.
func (p Problem) CorrectOptionIndex() int {
	want := NormalizeAnswer(p.CorrectAnswer)
	for i, option := range p.Options {
		if NormalizeAnswer(option) == want {
			return i
		}
	}
	if idx, err := strconv.Atoi(want); err == nil {
		return idx
	}
	return -1
}

// IsCorrect scores answer against the problem's canonical answer.
func (p Problem) IsCorrect(answer UserAnswer) bool {
	if p.Type == ProblemMultipleChoice {
		if answer.SelectedOption == nil {
			return false
		}
		return *answer.SelectedOption == p.CorrectOptionIndex()
	}
	return NormalizeAnswer(answer.Value) == NormalizeAnswer(p.CorrectAnswer)
}

// NormalizeAnswer trims and lower-cases free-text answers.
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

const (
	ProblemSetModePractice   = "practice"
	ProblemSetModeDiagnostic = "diagnostic"
)

// ProblemSet is an ordered list of problems, used for practice or diagnostics.
type ProblemSet struct {
	ID             string
	Mode           string
	DiagnosticUnit string
	UnitID         string
	ProblemIDs     []string
}

func (s ProblemSet) Contains(problemID string) bool {
	for _, id := range s.ProblemIDs {
		if id == problemID {
			return true
		}
	}
	return false
}

type VocabCategory string

const (
	VocabMathTerm VocabCategory = "math_term"
	VocabFrequent VocabCategory = "sat_act"
)

type Vocabulary struct {
	ID        string
	UnitID    string
	Category  VocabCategory
	Word      string
	Meaning   string
	Etymology string
}

// VocabDirection tells which side of a vocabulary card is being asked.
type VocabDirection string

const (
	WordToMeaning VocabDirection = "word_to_meaning"
	MeaningToWord VocabDirection = "meaning_to_word"
)

func (d VocabDirection) Valid() bool {
	return d == WordToMeaning || d == MeaningToWord
}

// Check scores a vocabulary answer. Meanings are compared after trimming only,
// words case-insensitively.
func (v Vocabulary) Check(direction VocabDirection, answer string) (bool, string) {
	if direction == MeaningToWord {
		return NormalizeAnswer(answer) == NormalizeAnswer(v.Word), v.Word
	}
	return strings.TrimSpace(answer) == strings.TrimSpace(v.Meaning), v.Meaning
}

// UserAnswer is the canonical submitted answer shape.
type UserAnswer struct {
	Value          string `json:"value"`
	SelectedOption *int   `json:"selectedOption,omitempty"`
}
