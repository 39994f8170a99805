package models

import (
	"database/sql"
	"time"
)

// XPLedgerEntry maps to the xp_ledger table.
type XPLedgerEntry struct {
	TransactionID  string         `db:"transaction_id"`
	UserID         int64          `db:"user_id"`
	Amount         int            `db:"amount"`
	Reason         string         `db:"reason"`
	ReasonRef      sql.NullString `db:"reason_ref"`
	IdempotencyKey string         `db:"idempotency_key"`
	OccurredAt     time.Time      `db:"occurred_at"`
}

// GamificationState maps to the gamification_states table.
type GamificationState struct {
	UserID          int64        `db:"user_id"`
	Level           int          `db:"level"`
	XP              int          `db:"xp"`
	TotalXP         int          `db:"total_xp"`
	NextLevelXP     int          `db:"next_level_xp"`
	EquippedTierID  string       `db:"equipped_tier_id"`
	LastLeveledUpAt sql.NullTime `db:"last_leveled_up_at"`
	Version         int64        `db:"version"`
	CreatedAt       time.Time    `db:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at"`
}

// LevelUp maps to the level_ups table.
type LevelUp struct {
	ID            string    `db:"id"`
	UserID        int64     `db:"user_id"`
	Level         int       `db:"level"`
	TotalXP       int       `db:"total_xp"`
	TransactionID string    `db:"transaction_id"`
	LeveledUpAt   time.Time `db:"leveled_up_at"`
}
