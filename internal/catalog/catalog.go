package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"time"
)

//go:embed data/*.json
var contentFS embed.FS

// Catalog owns the fixed set of activities shipped with the binary.
// It is a leaf component: no dependencies, read-only after Load.
type Catalog struct {
	quizzes []Quiz
	puzzles []Puzzle
	teasers []Teaser

	quizByID   map[string]Quiz
	puzzleByID map[string]Puzzle
}

// Load decodes and validates the embedded content files. Content is
// compiled in, so a load failure means a broken build; this is the only
// non-degradable error in the engine.
func Load() (*Catalog, error) {
	c := &Catalog{
		quizByID:   make(map[string]Quiz),
		puzzleByID: make(map[string]Puzzle),
	}

	if err := loadFile("quizzes", quizzesSchema, &c.quizzes); err != nil {
		return nil, err
	}
	if err := loadFile("puzzles", puzzlesSchema, &c.puzzles); err != nil {
		return nil, err
	}
	if err := loadFile("teasers", teasersSchema, &c.teasers); err != nil {
		return nil, err
	}

	// Cross-field invariants the schemas cannot express.
	for _, q := range c.quizzes {
		if err := q.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.quizByID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate quiz id %q", q.ID)
		}
		c.quizByID[q.ID] = q
	}
	for _, p := range c.puzzles {
		if err := p.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.puzzleByID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate puzzle id %q", p.ID)
		}
		c.puzzleByID[p.ID] = p
	}
	if len(c.quizzes) == 0 || len(c.puzzles) == 0 || len(c.teasers) == 0 {
		return nil, fmt.Errorf("empty content catalog")
	}

	return c, nil
}

func loadFile(name string, schema map[string]any, out any) error {
	raw, err := contentFS.ReadFile("data/" + name + ".json")
	if err != nil {
		return fmt.Errorf("read embedded %s: %w", name, err)
	}
	if err := validateAgainst(name, schema, raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Quizzes returns the quizzes matching the filter, in catalog order.
// An empty result is not an error.
func (c *Catalog) Quizzes(f QuizFilter) []Quiz {
	var out []Quiz
	for _, q := range c.quizzes {
		if f.Category != "" && q.Category != f.Category {
			continue
		}
		if f.Difficulty != DifficultyUnspecified && q.Difficulty != f.Difficulty {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Puzzles returns the puzzles matching the filter, in catalog order.
func (c *Catalog) Puzzles(f PuzzleFilter) []Puzzle {
	var out []Puzzle
	for _, p := range c.puzzles {
		if f.Kind != "" && p.Kind != f.Kind {
			continue
		}
		if f.Difficulty != DifficultyUnspecified && p.Difficulty != f.Difficulty {
			continue
		}
		out = append(out, p)
	}
	return out
}

// QuizByID looks up a quiz by identifier.
func (c *Catalog) QuizByID(id string) (Quiz, bool) {
	q, ok := c.quizByID[id]
	return q, ok
}

// PuzzleByID looks up a puzzle by identifier.
func (c *Catalog) PuzzleByID(id string) (Puzzle, bool) {
	p, ok := c.puzzleByID[id]
	return p, ok
}

// Categories returns the distinct quiz categories in catalog order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range c.quizzes {
		if !seen[q.Category] {
			seen[q.Category] = true
			out = append(out, q.Category)
		}
	}
	return out
}

// TeaserFor returns the brain teaser for the given date. Rotation is
// deterministic: the same date always yields the same teaser.
func (c *Catalog) TeaserFor(date time.Time) Teaser {
	day := date.Year()*366 + date.YearDay()
	return c.teasers[day%len(c.teasers)]
}
