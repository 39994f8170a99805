package repository

import (
	"context"
	"fmt"

	"nerd-math/internal/domain"
	"nerd-math/internal/repository/models"
	"nerd-math/internal/util"

	"github.com/jmoiron/sqlx"
)

type sqlxVocabularyRepository struct {
	db *sqlx.DB
}

func NewSQLXVocabularyRepository(db *sqlx.DB) domain.VocabularyRepository {
	return &sqlxVocabularyRepository{db: db}
}

const vocabularyColumns = "id, unit_id, category, word, meaning, etymology"

func toDomainVocabulary(m *models.Vocabulary) *domain.Vocabulary {
	if m == nil {
		return nil
	}
	return &domain.Vocabulary{
		ID:        m.ID,
		UnitID:    m.UnitID.String,
		Category:  domain.VocabCategory(m.Category),
		Word:      m.Word,
		Meaning:   m.Meaning,
		Etymology: m.Etymology.String,
	}
}

func (r *sqlxVocabularyRepository) GetByID(ctx context.Context, id string) (*domain.Vocabulary, error) {
	var m models.Vocabulary
	query := `SELECT ` + vocabularyColumns + ` FROM vocabularies WHERE id = $1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vocabulary: %w", err)
	}
	return toDomainVocabulary(&m), nil
}

func (r *sqlxVocabularyRepository) CountByUnit(ctx context.Context, unitID string, category domain.VocabCategory) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM vocabularies WHERE unit_id = $1 AND category = $2`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &count, query, unitID, string(category)); err != nil {
		return 0, fmt.Errorf("failed to count vocabulary in unit: %w", err)
	}
	return count, nil
}

func (r *sqlxVocabularyRepository) CountByCategory(ctx context.Context, category domain.VocabCategory) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM vocabularies WHERE category = $1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &count, query, string(category)); err != nil {
		return 0, fmt.Errorf("failed to count vocabulary by category: %w", err)
	}
	return count, nil
}

func (r *sqlxVocabularyRepository) Upsert(ctx context.Context, vocab *domain.Vocabulary) error {
	m := models.Vocabulary{
		ID:        vocab.ID,
		UnitID:    util.StringToNullString(vocab.UnitID),
		Category:  string(vocab.Category),
		Word:      vocab.Word,
		Meaning:   vocab.Meaning,
		Etymology: util.StringToNullString(vocab.Etymology),
	}
	query := `INSERT INTO vocabularies (` + vocabularyColumns + `)
		VALUES (:id, :unit_id, :category, :word, :meaning, :etymology)
		ON CONFLICT (id) DO UPDATE SET unit_id = EXCLUDED.unit_id, category = EXCLUDED.category,
			word = EXCLUDED.word, meaning = EXCLUDED.meaning, etymology = EXCLUDED.etymology`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, &m); err != nil {
		return fmt.Errorf("failed to upsert vocabulary %s: %w", vocab.ID, err)
	}
	return nil
}
