package repository

import (
	"context"
	"fmt"

	"nerd-math/internal/domain"
	"nerd-math/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

type sqlxUnitRepository struct {
	db *sqlx.DB
}

func NewSQLXUnitRepository(db *sqlx.DB) domain.UnitRepository {
	return &sqlxUnitRepository{db: db}
}

func toDomainUnit(m *models.Unit) *domain.Unit {
	if m == nil {
		return nil
	}
	return &domain.Unit{
		ID:        m.ID,
		Title:     m.Title,
		Chapter:   m.Chapter,
		SortOrder: m.SortOrder,
		Active:    m.Status == models.UnitStatusActive,
	}
}

func fromDomainUnit(u *domain.Unit) *models.Unit {
	if u == nil {
		return nil
	}
	status := models.UnitStatusInactive
	if u.Active {
		status = models.UnitStatusActive
	}
	return &models.Unit{
		ID:        u.ID,
		Title:     u.Title,
		Chapter:   u.Chapter,
		SortOrder: u.SortOrder,
		Status:    status,
	}
}

func (r *sqlxUnitRepository) GetByID(ctx context.Context, id string) (*domain.Unit, error) {
	var m models.Unit
	query := `SELECT id, title, chapter, sort_order, status FROM units WHERE id = $1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	return toDomainUnit(&m), nil
}

// ListActive returns the active catalog in curriculum order.
func (r *sqlxUnitRepository) ListActive(ctx context.Context) ([]domain.Unit, error) {
	var rows []models.Unit
	query := `SELECT id, title, chapter, sort_order, status FROM units
		WHERE status = $1 ORDER BY sort_order ASC, id ASC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, models.UnitStatusActive); err != nil {
		return nil, fmt.Errorf("failed to list active units: %w", err)
	}
	units := make([]domain.Unit, 0, len(rows))
	for i := range rows {
		units = append(units, *toDomainUnit(&rows[i]))
	}
	return units, nil
}

func (r *sqlxUnitRepository) Upsert(ctx context.Context, unit *domain.Unit) error {
	query := `INSERT INTO units (id, title, chapter, sort_order, status)
		VALUES (:id, :title, :chapter, :sort_order, :status)
		ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, chapter = EXCLUDED.chapter,
			sort_order = EXCLUDED.sort_order, status = EXCLUDED.status`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainUnit(unit)); err != nil {
		return fmt.Errorf("failed to upsert unit %s: %w", unit.ID, err)
	}
	return nil
}
