package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"nerd-math/cmd/seed_catalog/internal/catalog"
	"nerd-math/internal/config"
	"nerd-math/internal/database"
	"nerd-math/internal/domain"
	"nerd-math/internal/logger"
	"nerd-math/internal/repository"

	"go.uber.org/zap"
)

const defaultCatalogPath = "configs/seed_data/catalog.yaml"

type seeder struct {
	units    domain.UnitRepository
	problems domain.ProblemRepository
	sets     domain.ProblemSetRepository
	vocab    domain.VocabularyRepository
	chars    domain.CharacterRepository
	tx       domain.TransactionManager
	log      *zap.Logger
}

func main() {
	path := flag.String("file", defaultCatalogPath, "catalog YAML file to load")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	l := logger.Get()

	c, err := catalog.Load(*path)
	if err != nil {
		l.Fatal("Failed to load catalog", zap.String("path", *path), zap.Error(err))
	}
	l.Info("Catalog loaded",
		zap.Int("units", len(c.Units)),
		zap.Int("problem_sets", len(c.ProblemSets)),
		zap.Int("characters", len(c.Characters)))

	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg.DB, cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	s := &seeder{
		units:    repository.NewSQLXUnitRepository(db),
		problems: repository.NewSQLXProblemRepository(db),
		sets:     repository.NewSQLXProblemSetRepository(db),
		vocab:    repository.NewSQLXVocabularyRepository(db),
		chars:    repository.NewSQLXCharacterRepository(db),
		tx:       repository.NewTransactionManagerAdapter(db),
		log:      l,
	}
	if err := s.seed(ctx, c); err != nil {
		l.Fatal("Catalog seeding failed, transaction rolled back", zap.Error(err))
	}
	l.Info("Catalog seeding completed")
}

// seed upserts the whole catalog in one transaction. Units go first so the
// problem and vocabulary foreign keys resolve.
func (s *seeder) seed(ctx context.Context, c *catalog.Catalog) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for _, u := range c.DomainUnits() {
			if err := s.units.Upsert(ctx, &u); err != nil {
				return fmt.Errorf("unit %s: %w", u.ID, err)
			}
		}
		problems := c.DomainProblems()
		for _, p := range problems {
			if err := s.problems.Upsert(ctx, &p); err != nil {
				return fmt.Errorf("problem %s: %w", p.ID, err)
			}
		}
		vocab := c.DomainVocabulary()
		for _, v := range vocab {
			if err := s.vocab.Upsert(ctx, &v); err != nil {
				return fmt.Errorf("vocabulary %s: %w", v.ID, err)
			}
		}
		for _, set := range c.DomainProblemSets() {
			if err := s.sets.Upsert(ctx, &set); err != nil {
				return fmt.Errorf("problem set %s: %w", set.ID, err)
			}
		}
		for _, ch := range c.DomainCharacters() {
			if err := s.chars.Upsert(ctx, &ch); err != nil {
				return fmt.Errorf("character %s: %w", ch.ID, err)
			}
		}
		s.log.Info("Catalog upserted",
			zap.Int("problems", len(problems)),
			zap.Int("vocabulary", len(vocab)))
		return nil
	})
}
