package domain

import (
	"math"
	"time"

	"nerd-math/internal/util"
)

// ProgressAxis names one of the three completion dimensions of a unit.
type ProgressAxis string

const (
	AxisConcept ProgressAxis = "concept"
	AxisProblem ProgressAxis = "problem"
	AxisVocab   ProgressAxis = "vocab"
)

func (a ProgressAxis) Valid() bool {
	switch a {
	case AxisConcept, AxisProblem, AxisVocab:
		return true
	}
	return false
}

// ProgressCategory separates unit-scoped rows from the single frequent-vocabulary bucket.
type ProgressCategory string

const (
	CategoryUnit     ProgressCategory = "unit"
	CategoryFrequent ProgressCategory = "frequent"
)

func (c ProgressCategory) Valid() bool {
	return c == CategoryUnit || c == CategoryFrequent
}

// FrequentVocabUnitID is the pseudo unit id reported for the frequent bucket.
const FrequentVocabUnitID = "frequent_vocab"

type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "not_started"
	StatusInProgress ProgressStatus = "in_progress"
	StatusCompleted  ProgressStatus = "completed"
)

const (
	MinProgress = 0
	MaxProgress = 100
)

func StatusOf(value int) ProgressStatus {
	switch {
	case value >= MaxProgress:
		return StatusCompleted
	case value > MinProgress:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}

func ClampProgress(value int) int {
	return util.ClampInt(value, MinProgress, MaxProgress)
}

// RatioPercent returns part/whole as a rounded percentage, 0 when whole is 0.
func RatioPercent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return ClampProgress(int(math.Round(float64(part) / float64(whole) * 100)))
}

// UnitProgress holds one user's completion for a unit (or the frequent bucket,
// which has an empty UnitID).
type UnitProgress struct {
	UserID          int64
	UnitID          string
	Category        ProgressCategory
	ConceptProgress int
	ProblemProgress int
	VocabProgress   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p UnitProgress) Value(axis ProgressAxis) int {
	switch axis {
	case AxisConcept:
		return p.ConceptProgress
	case AxisProblem:
		return p.ProblemProgress
	case AxisVocab:
		return p.VocabProgress
	}
	return 0
}

func (p UnitProgress) FullyCompleted() bool {
	return p.ConceptProgress == MaxProgress &&
		p.ProblemProgress == MaxProgress &&
		p.VocabProgress == MaxProgress
}

// OverallProgress holds catalog-wide completion percentages, each with two decimals.
type OverallProgress struct {
	TotalConceptProgress   float64 `json:"totalConceptProgress"`
	TotalProblemProgress   float64 `json:"totalProblemProgress"`
	TotalVocabProgress     float64 `json:"totalVocabProgress"`
	CompletedAllUnitsRatio float64 `json:"completedAllUnitsRatio"`
}

// ComputeOverall aggregates stored rows against a catalog of totalUnits units.
// The frequent bucket counts as one extra vocabulary slot.
func ComputeOverall(rows []UnitProgress, totalUnits int) OverallProgress {
	var concepts, problems, vocabs, complete, frequent int
	for _, row := range rows {
		if row.Category == CategoryFrequent {
			if row.VocabProgress == MaxProgress {
				frequent = 1
			}
			continue
		}
		if row.ConceptProgress == MaxProgress {
			concepts++
		}
		if row.ProblemProgress == MaxProgress {
			problems++
		}
		if row.VocabProgress == MaxProgress {
			vocabs++
		}
		if row.FullyCompleted() {
			complete++
		}
	}

	return OverallProgress{
		TotalConceptProgress:   percent(concepts, totalUnits),
		TotalProblemProgress:   percent(problems, totalUnits),
		TotalVocabProgress:     percent(vocabs+frequent, totalUnits+1),
		CompletedAllUnitsRatio: percent(complete, totalUnits),
	}
}

func percent(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return util.RoundTo(float64(count)/float64(total)*100, 2)
}
