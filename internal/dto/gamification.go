package dto

import "time"

// GamificationStateResponse is the user's current leveling state.
// @Description Current level, XP and equipped character tier
type GamificationStateResponse struct {
	UserID          int64      `json:"userId"`
	Level           int        `json:"level"`
	XP              int        `json:"xp"`
	TotalXP         int        `json:"totalXp"`
	NextLevelXP     int        `json:"nextLevelXp"`
	EquippedTierID  string     `json:"equippedTierId"`
	LastLeveledUpAt *time.Time `json:"lastLeveledUpAt"`
}

// XPTransactionItem is one ledger entry.
type XPTransactionItem struct {
	TransactionID string    `json:"transactionId"`
	Amount        int       `json:"amount"`
	Reason        string    `json:"reason"`
	ReasonRef     string    `json:"reasonRef,omitempty"`
	At            time.Time `json:"at"`
}

// XPHistoryResponse is a page of the XP ledger, newest first.
type XPHistoryResponse struct {
	Transactions []XPTransactionItem `json:"transactions"`
	Pagination   PaginationInfo      `json:"pagination"`
}

// LevelHistoryItem is one recorded level transition.
type LevelHistoryItem struct {
	Level       int       `json:"level"`
	LeveledUpAt time.Time `json:"leveledUpAt"`
	TotalXP     int       `json:"totalXp"`
}

type LevelHistoryResponse struct {
	LevelHistory []LevelHistoryItem `json:"levelHistory"`
}

// GamificationUpdate summarizes the state change caused by an award.
type GamificationUpdate struct {
	Level        int  `json:"level"`
	XP           int  `json:"xp"`
	TotalXP      int  `json:"totalXp"`
	NextLevelXP  int  `json:"nextLevelXp"`
	LeveledUp    bool `json:"leveledUp"`
	LevelsGained int  `json:"levelsGained,omitempty"`
}

// CharacterResponse is one catalog character.
type CharacterResponse struct {
	CharacterID string `json:"characterId"`
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl"`
	Gender      string `json:"gender"`
	Level       int    `json:"level"`
	Description string `json:"description"`
	IsDefault   bool   `json:"isDefault"`
	IsActive    bool   `json:"isActive"`
}

type DefaultCharactersResponse struct {
	Characters []CharacterResponse `json:"characters"`
}

// MyCharacterResponse is the leveling state plus the equipped character, null when unresolved.
type MyCharacterResponse struct {
	GamificationStateResponse
	EquippedCharacter *CharacterResponse `json:"equippedCharacter"`
}
