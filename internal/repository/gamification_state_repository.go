package repository

import (
	"context"
	"fmt"

	"nerd-math/internal/domain"
	"nerd-math/internal/repository/models"
	"nerd-math/internal/util"

	"github.com/jmoiron/sqlx"
)

type sqlxGamificationStateRepository struct {
	db *sqlx.DB
}

func NewSQLXGamificationStateRepository(db *sqlx.DB) domain.GamificationStateRepository {
	return &sqlxGamificationStateRepository{db: db}
}

func toDomainGamificationState(m *models.GamificationState) *domain.GamificationState {
	if m == nil {
		return nil
	}
	return &domain.GamificationState{
		UserID:          m.UserID,
		Level:           m.Level,
		XP:              m.XP,
		TotalXP:         m.TotalXP,
		NextLevelXP:     m.NextLevelXP,
		EquippedTierID:  m.EquippedTierID,
		LastLeveledUpAt: util.NullTimeToPtr(m.LastLeveledUpAt),
		Version:         m.Version,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func fromDomainGamificationState(s *domain.GamificationState) *models.GamificationState {
	if s == nil {
		return nil
	}
	return &models.GamificationState{
		UserID:          s.UserID,
		Level:           s.Level,
		XP:              s.XP,
		TotalXP:         s.TotalXP,
		NextLevelXP:     s.NextLevelXP,
		EquippedTierID:  s.EquippedTierID,
		LastLeveledUpAt: util.TimePtrToNullTime(s.LastLeveledUpAt),
		Version:         s.Version,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

const stateColumns = "user_id, level, xp, total_xp, next_level_xp, equipped_tier_id, last_leveled_up_at, version, created_at, updated_at"

// GetOrCreate inserts initial unless a row exists, then reads the stored row.
// Concurrent first calls converge on a single row.
func (r *sqlxGamificationStateRepository) GetOrCreate(ctx context.Context, initial *domain.GamificationState) (*domain.GamificationState, error) {
	exec := GetExecutor(ctx, r.db)

	insert := `INSERT INTO gamification_states (` + stateColumns + `)
		VALUES (:user_id, :level, :xp, :total_xp, :next_level_xp, :equipped_tier_id, :last_leveled_up_at, :version, :created_at, :updated_at)
		ON CONFLICT (user_id) DO NOTHING`
	if _, err := exec.NamedExecContext(ctx, insert, fromDomainGamificationState(initial)); err != nil {
		return nil, fmt.Errorf("failed to initialize gamification state: %w", err)
	}

	var m models.GamificationState
	query := `SELECT ` + stateColumns + ` FROM gamification_states WHERE user_id = $1`
	if err := exec.GetContext(ctx, &m, query, initial.UserID); err != nil {
		return nil, fmt.Errorf("failed to get gamification state: %w", err)
	}
	return toDomainGamificationState(&m), nil
}

// CompareAndSwap is a conditional update on version; zero affected rows means
// another writer got there first.
func (r *sqlxGamificationStateRepository) CompareAndSwap(ctx context.Context, state *domain.GamificationState, expectedVersion int64) error {
	query := `UPDATE gamification_states
		SET level = $1, xp = $2, total_xp = $3, next_level_xp = $4, equipped_tier_id = $5,
			last_leveled_up_at = $6, updated_at = $7, version = version + 1
		WHERE user_id = $8 AND version = $9`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		state.Level, state.XP, state.TotalXP, state.NextLevelXP, state.EquippedTierID,
		util.TimePtrToNullTime(state.LastLeveledUpAt), state.UpdatedAt,
		state.UserID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update gamification state: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrConcurrentUpdate
	}
	state.Version = expectedVersion + 1
	return nil
}

func (r *sqlxGamificationStateRepository) InsertLevelUps(ctx context.Context, levelUps []domain.LevelUp) error {
	if len(levelUps) == 0 {
		return nil
	}
	rows := make([]models.LevelUp, 0, len(levelUps))
	for _, l := range levelUps {
		rows = append(rows, models.LevelUp{
			ID:            l.ID,
			UserID:        l.UserID,
			Level:         l.Level,
			TotalXP:       l.TotalXP,
			TransactionID: l.TransactionID,
			LeveledUpAt:   l.LeveledUpAt,
		})
	}

	query := `INSERT INTO level_ups (id, user_id, level, total_xp, transaction_id, leveled_up_at)
		VALUES (:id, :user_id, :level, :total_xp, :transaction_id, :leveled_up_at)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("failed to insert level ups: %w", err)
	}
	return nil
}

func (r *sqlxGamificationStateRepository) ListLevelUps(ctx context.Context, userID int64) ([]domain.LevelUp, error) {
	query := `SELECT id, user_id, level, total_xp, transaction_id, leveled_up_at
		FROM level_ups WHERE user_id = $1 ORDER BY level DESC`

	var rows []models.LevelUp
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list level ups: %w", err)
	}
	levelUps := make([]domain.LevelUp, 0, len(rows))
	for _, m := range rows {
		levelUps = append(levelUps, domain.LevelUp{
			ID:            m.ID,
			UserID:        m.UserID,
			Level:         m.Level,
			TotalXP:       m.TotalXP,
			TransactionID: m.TransactionID,
			LeveledUpAt:   m.LeveledUpAt,
		})
	}
	return levelUps, nil
}
