package repository

import (
	"context"
	"fmt"

	"nerd-math/internal/domain"
	"nerd-math/internal/repository/models"
	"nerd-math/internal/util"

	"github.com/jmoiron/sqlx"
)

type sqlxXPLedgerRepository struct {
	db *sqlx.DB
}

func NewSQLXXPLedgerRepository(db *sqlx.DB) domain.XPLedgerRepository {
	return &sqlxXPLedgerRepository{db: db}
}

func toDomainLedgerEntry(m *models.XPLedgerEntry) *domain.XPLedgerEntry {
	if m == nil {
		return nil
	}
	return &domain.XPLedgerEntry{
		TransactionID:  m.TransactionID,
		UserID:         m.UserID,
		Amount:         m.Amount,
		Reason:         domain.XPReason(m.Reason),
		ReasonRef:      m.ReasonRef.String,
		IdempotencyKey: m.IdempotencyKey,
		OccurredAt:     m.OccurredAt,
	}
}

func fromDomainLedgerEntry(e *domain.XPLedgerEntry) *models.XPLedgerEntry {
	if e == nil {
		return nil
	}
	return &models.XPLedgerEntry{
		TransactionID:  e.TransactionID,
		UserID:         e.UserID,
		Amount:         e.Amount,
		Reason:         string(e.Reason),
		ReasonRef:      util.StringToNullString(e.ReasonRef),
		IdempotencyKey: e.IdempotencyKey,
		OccurredAt:     e.OccurredAt,
	}
}

const ledgerColumns = "transaction_id, user_id, amount, reason, reason_ref, idempotency_key, occurred_at"

// Insert relies on the unique index over idempotency_key for at-most-once semantics.
func (r *sqlxXPLedgerRepository) Insert(ctx context.Context, entry *domain.XPLedgerEntry) error {
	query := `INSERT INTO xp_ledger (` + ledgerColumns + `)
		VALUES (:transaction_id, :user_id, :amount, :reason, :reason_ref, :idempotency_key, :occurred_at)`

	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainLedgerEntry(entry)); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateIdempotencyKey
		}
		return fmt.Errorf("failed to insert xp ledger entry: %w", err)
	}
	return nil
}

func (r *sqlxXPLedgerRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.XPLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM xp_ledger WHERE idempotency_key = $1`

	var m models.XPLedgerEntry
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, key); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get xp ledger entry by idempotency key: %w", err)
	}
	return toDomainLedgerEntry(&m), nil
}

// ListByUser returns one page of entries, newest first, and the total match count.
func (r *sqlxXPLedgerRepository) ListByUser(ctx context.Context, userID int64, filter domain.XPHistoryFilter) ([]domain.XPLedgerEntry, int, error) {
	exec := GetExecutor(ctx, r.db)

	countQuery := psql.Select("COUNT(*)").From("xp_ledger").Where("user_id = ?", userID)
	listQuery := psql.Select(ledgerColumns).From("xp_ledger").Where("user_id = ?", userID)
	if filter.Reason != "" {
		countQuery = countQuery.Where("reason = ?", string(filter.Reason))
		listQuery = listQuery.Where("reason = ?", string(filter.Reason))
	}
	listQuery = listQuery.OrderBy("occurred_at DESC", "transaction_id DESC")
	if filter.Limit > 0 {
		listQuery = listQuery.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		listQuery = listQuery.Offset(uint64(filter.Offset))
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build xp history count query: %w", err)
	}
	var total int
	if err := exec.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count xp history: %w", err)
	}

	listSQL, listArgs, err := listQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build xp history query: %w", err)
	}
	var rows []models.XPLedgerEntry
	if err := exec.SelectContext(ctx, &rows, listSQL, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to list xp history: %w", err)
	}

	entries := make([]domain.XPLedgerEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, *toDomainLedgerEntry(&rows[i]))
	}
	return entries, total, nil
}
