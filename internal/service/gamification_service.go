package service

import (
	"context"
	"errors"
	"time"

	"nerd-math/internal/config"
	"nerd-math/internal/domain"
	"nerd-math/internal/dto"
	"nerd-math/internal/logger"
	"nerd-math/internal/util"

	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// AwardXPInput describes one XP grant. IdempotencyKey makes the grant at-most-once.
type AwardXPInput struct {
	UserID         int64
	Reason         domain.XPReason
	ReasonRef      string
	IdempotencyKey string
	IsCorrect      bool
}

// GamificationService owns the XP ledger and the per-user leveling state.
type GamificationService interface {
	AwardXP(ctx context.Context, in AwardXPInput) (*domain.AwardResult, error)
	GetState(ctx context.Context, userID int64) (*dto.GamificationStateResponse, error)
	GetXPHistory(ctx context.Context, userID int64, page, limit int, reason string) (*dto.XPHistoryResponse, error)
	GetLevelHistory(ctx context.Context, userID int64) (*dto.LevelHistoryResponse, error)
	ListDefaultCharacters(ctx context.Context, gender string) (*dto.DefaultCharactersResponse, error)
	GetMyCharacter(ctx context.Context, userID int64) (*dto.MyCharacterResponse, error)
}

type gamificationServiceImpl struct {
	ledgerRepo domain.XPLedgerRepository
	stateRepo  domain.GamificationStateRepository
	charRepo   domain.CharacterRepository
	txManager  domain.TransactionManager
	cfg        config.GamificationConfig
	now        func() time.Time
}

func NewGamificationService(
	ledgerRepo domain.XPLedgerRepository,
	stateRepo domain.GamificationStateRepository,
	charRepo domain.CharacterRepository,
	txManager domain.TransactionManager,
	cfg config.GamificationConfig,
) GamificationService {
	if cfg.MaxAwardRetries < 1 {
		cfg.MaxAwardRetries = 1
	}
	return &gamificationServiceImpl{
		ledgerRepo: ledgerRepo,
		stateRepo:  stateRepo,
		charRepo:   charRepo,
		txManager:  txManager,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *gamificationServiceImpl) AwardXP(ctx context.Context, in AwardXPInput) (*domain.AwardResult, error) {
	if in.UserID <= 0 {
		return nil, domain.NewValidationError("userId must be a positive integer")
	}
	if in.IdempotencyKey == "" {
		return nil, domain.NewValidationError("idempotency key is required")
	}

	// Unknown reasons carry no reward and fall through to the zero-award result.
	amount := domain.XPFor(in.Reason, in.IsCorrect)
	if amount == 0 {
		return &domain.AwardResult{Awarded: false, Message: "no experience is granted for this reason"}, nil
	}

	for attempt := 1; attempt <= s.cfg.MaxAwardRetries; attempt++ {
		var result *domain.AwardResult
		err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			var txErr error
			result, txErr = s.applyAward(txCtx, in, amount)
			return txErr
		})

		switch {
		case err == nil:
			if result.LeveledUp {
				logger.Get().Info("User leveled up",
					zap.Int64("userID", in.UserID),
					zap.Int("level", result.Level),
					zap.Int("levelsGained", result.LevelsGained))
			}
			return result, nil
		case errors.Is(err, domain.ErrDuplicateIdempotencyKey):
			return s.duplicateResult(ctx, in)
		case errors.Is(err, domain.ErrConcurrentUpdate):
			logger.Get().Debug("Gamification state changed concurrently, retrying award",
				zap.Int64("userID", in.UserID),
				zap.Int("attempt", attempt))
			continue
		default:
			return nil, domain.NewInternalError("failed to award experience", err)
		}
	}

	return nil, domain.NewConflictError("gamification state is being updated concurrently, try again").
		WithContext("userId", in.UserID)
}

// applyAward runs inside the award transaction: ledger insert first, so a reused
// key aborts before the state is touched.
func (s *gamificationServiceImpl) applyAward(ctx context.Context, in AwardXPInput, amount int) (*domain.AwardResult, error) {
	now := s.now()

	state, err := s.stateRepo.GetOrCreate(ctx, domain.NewGamificationState(in.UserID, now))
	if err != nil {
		return nil, err
	}

	entry := &domain.XPLedgerEntry{
		TransactionID:  util.NewULIDAt(now),
		UserID:         in.UserID,
		Amount:         amount,
		Reason:         in.Reason,
		ReasonRef:      in.ReasonRef,
		IdempotencyKey: in.IdempotencyKey,
		OccurredAt:     now,
	}
	if err := s.ledgerRepo.Insert(ctx, entry); err != nil {
		return nil, err
	}

	next, reached := state.ApplyXP(amount, s.cfg.CascadeLevelUps, now)
	if err := s.stateRepo.CompareAndSwap(ctx, &next, state.Version); err != nil {
		return nil, err
	}

	if len(reached) > 0 {
		levelUps := make([]domain.LevelUp, 0, len(reached))
		for _, level := range reached {
			levelUps = append(levelUps, domain.LevelUp{
				ID:            util.NewULIDAt(now),
				UserID:        in.UserID,
				Level:         level,
				TotalXP:       next.TotalXP,
				TransactionID: entry.TransactionID,
				LeveledUpAt:   now,
			})
		}
		if err := s.stateRepo.InsertLevelUps(ctx, levelUps); err != nil {
			return nil, err
		}
	}

	return &domain.AwardResult{
		Awarded:       true,
		TransactionID: entry.TransactionID,
		XPGained:      amount,
		TotalXP:       next.TotalXP,
		Level:         next.Level,
		XP:            next.XP,
		NextLevelXP:   next.NextLevelXP,
		LeveledUp:     len(reached) > 0,
		LevelsGained:  len(reached),
	}, nil
}

func (s *gamificationServiceImpl) duplicateResult(ctx context.Context, in AwardXPInput) (*domain.AwardResult, error) {
	prior, err := s.ledgerRepo.GetByIdempotencyKey(ctx, in.IdempotencyKey)
	if err != nil {
		return nil, domain.NewInternalError("failed to load prior award", err)
	}
	state, err := s.stateRepo.GetOrCreate(ctx, domain.NewGamificationState(in.UserID, s.now()))
	if err != nil {
		return nil, domain.NewInternalError("failed to load gamification state", err)
	}

	result := &domain.AwardResult{
		Awarded:     false,
		Duplicate:   true,
		Message:     "experience was already granted for this key",
		TotalXP:     state.TotalXP,
		Level:       state.Level,
		XP:          state.XP,
		NextLevelXP: state.NextLevelXP,
	}
	if prior != nil {
		result.TransactionID = prior.TransactionID
		result.XPGained = prior.Amount
	}
	logger.Get().Debug("Duplicate XP award ignored",
		zap.Int64("userID", in.UserID),
		zap.String("idempotencyKey", in.IdempotencyKey))
	return result, nil
}

func (s *gamificationServiceImpl) GetState(ctx context.Context, userID int64) (*dto.GamificationStateResponse, error) {
	state, err := s.stateRepo.GetOrCreate(ctx, domain.NewGamificationState(userID, s.now()))
	if err != nil {
		return nil, domain.NewInternalError("failed to load gamification state", err)
	}
	return toStateResponse(state), nil
}

func toStateResponse(state *domain.GamificationState) *dto.GamificationStateResponse {
	return &dto.GamificationStateResponse{
		UserID:          state.UserID,
		Level:           state.Level,
		XP:              state.XP,
		TotalXP:         state.TotalXP,
		NextLevelXP:     state.NextLevelXP,
		EquippedTierID:  state.EquippedTierID,
		LastLeveledUpAt: state.LastLeveledUpAt,
	}
}

func (s *gamificationServiceImpl) GetXPHistory(ctx context.Context, userID int64, page, limit int, reason string) (*dto.XPHistoryResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	filter := domain.XPHistoryFilter{Limit: limit, Offset: (page - 1) * limit}
	if reason != "" {
		filter.Reason = domain.XPReason(reason)
		if !filter.Reason.Valid() {
			return nil, domain.NewValidationError("unknown xp reason").WithContext("reason", reason)
		}
	}

	entries, total, err := s.ledgerRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, domain.NewInternalError("failed to load xp history", err)
	}

	items := make([]dto.XPTransactionItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.XPTransactionItem{
			TransactionID: e.TransactionID,
			Amount:        e.Amount,
			Reason:        string(e.Reason),
			ReasonRef:     e.ReasonRef,
			At:            e.OccurredAt,
		})
	}
	return &dto.XPHistoryResponse{
		Transactions: items,
		Pagination:   dto.NewPaginationInfo(page, limit, total),
	}, nil
}

func (s *gamificationServiceImpl) GetLevelHistory(ctx context.Context, userID int64) (*dto.LevelHistoryResponse, error) {
	levelUps, err := s.stateRepo.ListLevelUps(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load level history", err)
	}
	items := make([]dto.LevelHistoryItem, 0, len(levelUps))
	for _, l := range levelUps {
		items = append(items, dto.LevelHistoryItem{
			Level:       l.Level,
			LeveledUpAt: l.LeveledUpAt,
			TotalXP:     l.TotalXP,
		})
	}
	return &dto.LevelHistoryResponse{LevelHistory: items}, nil
}

// toGamificationUpdate renders an award for API responses; nil when nothing was granted.
func toGamificationUpdate(result *domain.AwardResult) *dto.GamificationUpdate {
	if result == nil || !result.Awarded {
		return nil
	}
	return &dto.GamificationUpdate{
		Level:        result.Level,
		XP:           result.XP,
		TotalXP:      result.TotalXP,
		NextLevelXP:  result.NextLevelXP,
		LeveledUp:    result.LeveledUp,
		LevelsGained: result.LevelsGained,
	}
}

func toCharacterResponse(c *domain.Character) dto.CharacterResponse {
	return dto.CharacterResponse{
		CharacterID: c.ID,
		Name:        c.Name,
		ImageURL:    c.ImageURL,
		Gender:      c.Gender,
		Level:       c.Level,
		Description: c.Description,
		IsDefault:   c.IsDefault,
		IsActive:    c.IsActive,
	}
}

// ListDefaultCharacters returns the active default characters of one track, lowest level first.
func (s *gamificationServiceImpl) ListDefaultCharacters(ctx context.Context, gender string) (*dto.DefaultCharactersResponse, error) {
	if !domain.ValidGender(gender) {
		return nil, domain.NewValidationError("gender must be male or female").WithContext("gender", gender)
	}
	characters, err := s.charRepo.ListDefault(ctx, gender)
	if err != nil {
		return nil, domain.NewInternalError("failed to load characters", err)
	}
	items := make([]dto.CharacterResponse, 0, len(characters))
	for i := range characters {
		items = append(items, toCharacterResponse(&characters[i]))
	}
	return &dto.DefaultCharactersResponse{Characters: items}, nil
}

// GetMyCharacter returns the leveling state with the equipped character resolved.
// A tier id with no catalog row yields a nil character.
func (s *gamificationServiceImpl) GetMyCharacter(ctx context.Context, userID int64) (*dto.MyCharacterResponse, error) {
	state, err := s.stateRepo.GetOrCreate(ctx, domain.NewGamificationState(userID, s.now()))
	if err != nil {
		return nil, domain.NewInternalError("failed to load gamification state", err)
	}
	resp := &dto.MyCharacterResponse{GamificationStateResponse: *toStateResponse(state)}
	if state.EquippedTierID == "" {
		return resp, nil
	}

	character, err := s.charRepo.GetByID(ctx, state.EquippedTierID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load equipped character", err)
	}
	if character == nil {
		logger.Get().Warn("Equipped character is missing from the catalog",
			zap.Int64("userID", userID),
			zap.String("tierID", state.EquippedTierID))
		return resp, nil
	}
	c := toCharacterResponse(character)
	resp.EquippedCharacter = &c
	return resp, nil
}
