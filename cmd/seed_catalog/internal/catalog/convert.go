package catalog

import "nerd-math/internal/domain"

// DomainUnits returns the catalog units as domain values, in file order.
func (c *Catalog) DomainUnits() []domain.Unit {
	units := make([]domain.Unit, 0, len(c.Units))
	for _, u := range c.Units {
		units = append(units, domain.Unit{
			ID:        u.ID,
			Title:     u.Title,
			Chapter:   u.Chapter,
			SortOrder: u.SortOrder,
			Active:    !u.Inactive,
		})
	}
	return units
}

func (c *Catalog) DomainProblems() []domain.Problem {
	var problems []domain.Problem
	for _, u := range c.Units {
		for _, p := range u.Problems {
			problems = append(problems, domain.Problem{
				ID:            p.ID,
				UnitID:        u.ID,
				Type:          domain.ProblemType(p.Type),
				Question:      p.Question,
				Options:       p.Options,
				CorrectAnswer: p.CorrectAnswer,
				Explanation:   p.Explanation,
			})
		}
	}
	return problems
}

// DomainVocabulary returns unit vocabulary followed by the unit-less frequent words.
func (c *Catalog) DomainVocabulary() []domain.Vocabulary {
	var vocab []domain.Vocabulary
	for _, u := range c.Units {
		for _, v := range u.Vocabulary {
			vocab = append(vocab, toDomainVocabulary(u.ID, v, domain.VocabMathTerm))
		}
	}
	for _, v := range c.FrequentVocab {
		vocab = append(vocab, toDomainVocabulary("", v, domain.VocabFrequent))
	}
	return vocab
}

func toDomainVocabulary(unitID string, v Vocabulary, fallback domain.VocabCategory) domain.Vocabulary {
	category := domain.VocabCategory(v.Category)
	if category == "" {
		category = fallback
	}
	return domain.Vocabulary{
		ID:        v.ID,
		UnitID:    unitID,
		Category:  category,
		Word:      v.Word,
		Meaning:   v.Meaning,
		Etymology: v.Etymology,
	}
}

func (c *Catalog) DomainProblemSets() []domain.ProblemSet {
	sets := make([]domain.ProblemSet, 0, len(c.ProblemSets))
	for _, s := range c.ProblemSets {
		sets = append(sets, domain.ProblemSet{
			ID:             s.ID,
			Mode:           s.Mode,
			DiagnosticUnit: s.DiagnosticUnit,
			UnitID:         s.UnitID,
			ProblemIDs:     s.ProblemIDs,
		})
	}
	return sets
}

func (c *Catalog) DomainCharacters() []domain.Character {
	characters := make([]domain.Character, 0, len(c.Characters))
	for _, ch := range c.Characters {
		characters = append(characters, domain.Character{
			ID:          ch.ID,
			Name:        ch.Name,
			ImageURL:    ch.ImageURL,
			Gender:      ch.Gender,
			Level:       ch.Level,
			Description: ch.Description,
			IsDefault:   !ch.NonDefault,
			IsActive:    !ch.Inactive,
		})
	}
	return characters
}
