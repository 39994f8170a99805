package repository

import (
	"context"
	"fmt"

	"nerd-math/internal/domain"
	"nerd-math/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

type sqlxCharacterRepository struct {
	db *sqlx.DB
}

func NewSQLXCharacterRepository(db *sqlx.DB) domain.CharacterRepository {
	return &sqlxCharacterRepository{db: db}
}

const characterColumns = "id, name, image_url, gender, level, description, is_default, is_active"

func toDomainCharacter(m *models.Character) *domain.Character {
	if m == nil {
		return nil
	}
	return &domain.Character{
		ID:          m.ID,
		Name:        m.Name,
		ImageURL:    m.ImageURL,
		Gender:      m.Gender,
		Level:       m.Level,
		Description: m.Description,
		IsDefault:   m.IsDefault,
		IsActive:    m.IsActive,
	}
}

func (r *sqlxCharacterRepository) GetByID(ctx context.Context, id string) (*domain.Character, error) {
	var m models.Character
	query := `SELECT ` + characterColumns + ` FROM characters WHERE id = $1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return toDomainCharacter(&m), nil
}

func (r *sqlxCharacterRepository) ListDefault(ctx context.Context, gender string) ([]domain.Character, error) {
	query, args, err := psql.Select(characterColumns).
		From("characters").
		Where("gender = ?", gender).
		Where("is_default = ?", true).
		Where("is_active = ?", true).
		OrderBy("level ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build character query: %w", err)
	}

	var rows []models.Character
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list default characters: %w", err)
	}
	characters := make([]domain.Character, 0, len(rows))
	for i := range rows {
		characters = append(characters, *toDomainCharacter(&rows[i]))
	}
	return characters, nil
}

func (r *sqlxCharacterRepository) Upsert(ctx context.Context, character *domain.Character) error {
	m := models.Character{
		ID:          character.ID,
		Name:        character.Name,
		ImageURL:    character.ImageURL,
		Gender:      character.Gender,
		Level:       character.Level,
		Description: character.Description,
		IsDefault:   character.IsDefault,
		IsActive:    character.IsActive,
	}
	query := `INSERT INTO characters (` + characterColumns + `)
		VALUES (:id, :name, :image_url, :gender, :level, :description, :is_default, :is_active)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, image_url = EXCLUDED.image_url,
			gender = EXCLUDED.gender, level = EXCLUDED.level, description = EXCLUDED.description,
			is_default = EXCLUDED.is_default, is_active = EXCLUDED.is_active`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, &m); err != nil {
		return fmt.Errorf("failed to upsert character %s: %w", character.ID, err)
	}
	return nil
}
