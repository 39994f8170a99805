package catalog

import (
	"fmt"
	"os"

	"nerd-math/internal/domain"

	"gopkg.in/yaml.v3"
)

// Problem is a problem entry in the catalog file.
type Problem struct {
	ID            string   `yaml:"id"`
	Type          string   `yaml:"type"`
	Question      string   `yaml:"question"`
	Options       []string `yaml:"options"`
	CorrectAnswer string   `yaml:"correct_answer"`
	Explanation   string   `yaml:"explanation"`
}

type Vocabulary struct {
	ID        string `yaml:"id"`
	Category  string `yaml:"category"`
	Word      string `yaml:"word"`
	Meaning   string `yaml:"meaning"`
	Etymology string `yaml:"etymology"`
}

// Unit groups the problems and vocabulary that belong to one curriculum unit.
type Unit struct {
	ID         string       `yaml:"id"`
	Title      string       `yaml:"title"`
	Chapter    string       `yaml:"chapter"`
	SortOrder  int          `yaml:"sort_order"`
	Inactive   bool         `yaml:"inactive"`
	Problems   []Problem    `yaml:"problems"`
	Vocabulary []Vocabulary `yaml:"vocabulary"`
}

type ProblemSet struct {
	ID             string   `yaml:"id"`
	Mode           string   `yaml:"mode"`
	DiagnosticUnit string   `yaml:"diagnostic_unit"`
	UnitID         string   `yaml:"unit_id"`
	ProblemIDs     []string `yaml:"problem_ids"`
}

// Character is one avatar of the character catalog. Entries are default and
// active unless marked otherwise.
type Character struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	ImageURL    string `yaml:"image_url"`
	Gender      string `yaml:"gender"`
	Level       int    `yaml:"level"`
	Description string `yaml:"description"`
	NonDefault  bool   `yaml:"non_default"`
	Inactive    bool   `yaml:"inactive"`
}

// Catalog is the top-level document of a catalog seed file.
type Catalog struct {
	Units         []Unit       `yaml:"units"`
	FrequentVocab []Vocabulary `yaml:"frequent_vocabulary"`
	ProblemSets   []ProblemSet `yaml:"problem_sets"`
	Characters    []Character  `yaml:"characters"`
}

// Load reads and checks the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Check(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Check verifies that ids are unique, that every problem set references
// problems and units that exist in the catalog and that characters sit on a
// known track.
func (c *Catalog) Check() error {
	units := make(map[string]bool, len(c.Units))
	problems := make(map[string]bool)
	for _, u := range c.Units {
		if u.ID == "" {
			return fmt.Errorf("unit without id")
		}
		if units[u.ID] {
			return fmt.Errorf("duplicate unit id %q", u.ID)
		}
		units[u.ID] = true
		for _, p := range u.Problems {
			if p.ID == "" {
				return fmt.Errorf("unit %q: problem without id", u.ID)
			}
			if problems[p.ID] {
				return fmt.Errorf("duplicate problem id %q", p.ID)
			}
			if p.Type == "multiple_choice" && len(p.Options) < 2 {
				return fmt.Errorf("problem %q: multiple choice needs at least two options", p.ID)
			}
			problems[p.ID] = true
		}
	}

	for _, s := range c.ProblemSets {
		switch s.Mode {
		case "diagnostic":
			if s.DiagnosticUnit == "" {
				return fmt.Errorf("problem set %q: diagnostic_unit is required", s.ID)
			}
		case "practice":
			if !units[s.UnitID] {
				return fmt.Errorf("problem set %q: unknown unit %q", s.ID, s.UnitID)
			}
		default:
			return fmt.Errorf("problem set %q: unknown mode %q", s.ID, s.Mode)
		}
		if len(s.ProblemIDs) == 0 {
			return fmt.Errorf("problem set %q is empty", s.ID)
		}
		for _, id := range s.ProblemIDs {
			if !problems[id] {
				return fmt.Errorf("problem set %q: unknown problem %q", s.ID, id)
			}
		}
	}

	characters := make(map[string]bool, len(c.Characters))
	for _, ch := range c.Characters {
		if ch.ID == "" {
			return fmt.Errorf("character without id")
		}
		if characters[ch.ID] {
			return fmt.Errorf("duplicate character id %q", ch.ID)
		}
		characters[ch.ID] = true
		if !domain.ValidGender(ch.Gender) {
			return fmt.Errorf("character %q: unknown gender %q", ch.ID, ch.Gender)
		}
		if ch.Level < 1 {
			return fmt.Errorf("character %q: level must be at least 1", ch.ID)
		}
	}
	return nil
}
