package catalog

import "fmt"

// Question is a single multiple-choice quiz question.
type Question struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Answer      int      `json:"answer"` // index into Options
	Points      int      `json:"points"`
	Explanation string   `json:"explanation,omitempty"`
}

// Quiz is an immutable catalog entry for the multiple-choice mode.
// Constructed once at load, never mutated.
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	Description string     `json:"description,omitempty"`
	TimeLimit   int        `json:"time_limit,omitempty"` // seconds, 0 = untimed
	Questions   []Question `json:"questions"`
}

// MaxPoints returns the total points available across all questions.
func (q Quiz) MaxPoints() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}

// PuzzleKind classifies the puzzle catalog entries.
type PuzzleKind string

const (
	KindRiddle   PuzzleKind = "riddle"
	KindLogic    PuzzleKind = "logic"
	KindScramble PuzzleKind = "scramble"
	KindMemory   PuzzleKind = "memory"
)

// AllPuzzleKinds returns the kinds in display order.
func AllPuzzleKinds() []PuzzleKind {
	return []PuzzleKind{KindRiddle, KindLogic, KindScramble, KindMemory}
}

// Valid reports whether k names a known puzzle kind.
func (k PuzzleKind) Valid() bool {
	switch k {
	case KindRiddle, KindLogic, KindScramble, KindMemory:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the kind.
func (k PuzzleKind) DisplayName() string {
	switch k {
	case KindRiddle:
		return "Riddle"
	case KindLogic:
		return "Logic"
	case KindScramble:
		return "Word Scramble"
	case KindMemory:
		return "Memory"
	default:
		return string(k)
	}
}

// Puzzle is an immutable catalog entry for the single-player puzzle mode:
// one prompt, an ordered hint list, and a canonical solution string.
type Puzzle struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Kind        PuzzleKind `json:"kind"`
	Difficulty  Difficulty `json:"difficulty"`
	Description string     `json:"description,omitempty"`
	TimeLimit   int        `json:"time_limit,omitempty"` // seconds, 0 = untimed
	Prompt      string     `json:"prompt"`
	Hints       []string   `json:"hints,omitempty"`
	Solution    string     `json:"solution"`
	Points      int        `json:"points"`
	// Letters is the letter-token multiset for scramble puzzles.
	Letters []string `json:"letters,omitempty"`
	// Sequence is the target token sequence for memory puzzles.
	Sequence []string `json:"sequence,omitempty"`
}

/// Teaser is a one-a-day brain teaser shown on the home screen. Stateless:
// no progress is tracked against teasers.
type Teaser struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizFilter narrows a quiz catalog query. Zero-value fields match all.
type QuizFilter struct {
	Category   string
	Difficulty Difficulty
}

// PuzzleFilter narrows a puzzle catalog query. Zero-value fields match all.
type PuzzleFilter struct {
	Kind       PuzzleKind
	Difficulty Difficulty
}

func (q Quiz) validate() error {
	if len(q.Questions) == 0 {
		return fmt.Errorf("quiz %q: no questions", q.ID)
	}
	for i, question := range q.Questions {
		if len(question.Options) < 2 || len(question.Options) > 4 {
			return fmt.Errorf("quiz %q question %d: want 2-4 options, got %d", q.ID, i, len(question.Options))
		}
		if question.Answer < 0 || question.Answer >= len(question.Options) {
			return fmt.Errorf("quiz %q question %d: answer index %d out of range", q.ID, i, question.Answer)
		}
		if question.Points <= 0 {
			return fmt.Errorf("quiz %q question %d: non-positive points", q.ID, i)
		}
	}
	return nil
}

func (p Puzzle) validate() error {
	if !p.Kind.Valid() {
		return fmt.Errorf("puzzle %q: unknown kind %q", p.ID, p.Kind)
	}
	if p.Solution == "" {
		return fmt.Errorf("puzzle %q: empty solution", p.ID)
	}
	if p.Points <= 0 {
		return fmt.Errorf("puzzle %q: non-positive points", p.ID)
	}
	if p.Kind == KindScramble && len(p.Letters) == 0 {
		return fmt.Errorf("puzzle %q: scramble without letters", p.ID)
	}
	if p.Kind == KindMemory && len(p.Sequence) == 0 {
		return fmt.Errorf("puzzle %q: memory without sequence", p.ID)
	}
	return nil
}
