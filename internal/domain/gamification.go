package domain

import (
	"fmt"
	"strings"
	"time"
)

// XPReason identifies the event that granted experience points.
type XPReason string

const (
	ReasonConceptCompleted XPReason = "concept_completed"
	ReasonProblemSolved    XPReason = "problem_solved"
	ReasonVocabSolved      XPReason = "vocab_solved"
	ReasonUnitCompleted    XPReason = "unit_completed"
	ReasonCorrectAnswer    XPReason = "correct_answer"
	ReasonStreakBonus      XPReason = "streak_bonus"
)

var validReasons = map[XPReason]struct{}{
	ReasonConceptCompleted: {},
	ReasonProblemSolved:    {},
	ReasonVocabSolved:      {},
	ReasonUnitCompleted:    {},
	ReasonCorrectAnswer:    {},
	ReasonStreakBonus:      {},
}

func (r XPReason) Valid() bool {
	_, ok := validReasons[r]
	return ok
}

type reward struct {
	correct   int
	incorrect int
}

// correct_answer is a recognised ledger reason that carries no reward.
var rewardTable = map[XPReason]reward{
	ReasonConceptCompleted: {correct: 20, incorrect: 20},
	ReasonProblemSolved:    {correct: 15, incorrect: 10},
	ReasonVocabSolved:      {correct: 5, incorrect: 3},
	ReasonUnitCompleted:    {correct: 10, incorrect: 10},
	ReasonStreakBonus:      {correct: 10, incorrect: 10},
}

// XPFor returns the reward for reason. Unknown or unrewarded reasons yield 0.
func XPFor(reason XPReason, isCorrect bool) int {
	r, ok := rewardTable[reason]
	if !ok {
		return 0
	}
	if isCorrect {
		return r.correct
	}
	return r.incorrect
}

// levelRequirements[i] is the XP needed to leave level i+1.
var levelRequirements = [...]int{50, 100, 175, 275, 400, 550, 725, 925, 1150, 1400}

// MaxDefinedLevel is the last level with its own threshold; higher levels reuse it.
const MaxDefinedLevel = len(levelRequirements)

// RequiredXP returns the XP needed to advance from level to level+1.
func RequiredXP(level int) int {
	if level < 1 {
		level = 1
	}
	if level > MaxDefinedLevel {
		level = MaxDefinedLevel
	}
	return levelRequirements[level-1]
}

const (
	TrackMale      = "male"
	TrackFemale    = "female"
	DefaultTierID  = "char_default_male_lv1"
	tierNameFormat = "char_default_%s_lv%d"
)

// TrackFromTier extracts the character track from a tier id. "female" is checked
// first because it contains "male".
func TrackFromTier(tierID string) string {
	if strings.Contains(tierID, TrackFemale) {
		return TrackFemale
	}
	return TrackMale
}

func TierID(track string, level int) string {
	return fmt.Sprintf(tierNameFormat, track, level)
}

// XPLedgerEntry is an immutable record of one XP grant.
type XPLedgerEntry struct {
	TransactionID  string
	UserID         int64
	Amount         int
	Reason         XPReason
	ReasonRef      string
	IdempotencyKey string
	OccurredAt     time.Time
}

// GamificationState is the per-user leveling aggregate. Version increases on every
// successful write and guards concurrent updates.
type GamificationState struct {
	UserID          int64
	Level           int
	XP              int
	TotalXP         int
	NextLevelXP     int
	EquippedTierID  string
	LastLeveledUpAt *time.Time
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewGamificationState(userID int64, now time.Time) *GamificationState {
	return &GamificationState{
		UserID:         userID,
		Level:          1,
		XP:             0,
		TotalXP:        0,
		NextLevelXP:    RequiredXP(1),
		EquippedTierID: DefaultTierID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// ApplyXP returns the state after adding amount, together with every level reached.
// With cascade the level-up check repeats until xp falls below the threshold,
// otherwise at most one transition is made.
func (s GamificationState) ApplyXP(amount int, cascade bool, now time.Time) (GamificationState, []int) {
	next := s
	next.TotalXP += amount
	next.XP += amount
	next.UpdatedAt = now

	var reached []int
	for next.XP >= RequiredXP(next.Level) {
		next.XP -= RequiredXP(next.Level)
		next.Level++
		reached = append(reached, next.Level)
		if !cascade {
			break
		}
	}

	next.NextLevelXP = RequiredXP(next.Level)
	if len(reached) > 0 {
		leveledAt := now
		next.LastLeveledUpAt = &leveledAt
		next.EquippedTierID = TierID(TrackFromTier(s.EquippedTierID), next.Level)
	}
	return next, reached
}

// LevelUp records a single level transition.
type LevelUp struct {
	ID            string
	UserID        int64
	Level         int
	TotalXP       int
	TransactionID string
	LeveledUpAt   time.Time
}

// AwardResult reports the outcome of an award attempt.
type AwardResult struct {
	Awarded       bool
	Duplicate     bool
	Message       string
	TransactionID string
	XPGained      int
	TotalXP       int
	Level         int
	XP            int
	NextLevelXP   int
	LeveledUp     bool
	LevelsGained  int
}

// XPHistoryFilter selects a page of ledger entries, newest first.
type XPHistoryFilter struct {
	Reason XPReason
	Limit  int
	Offset int
}
