package attempt

import (
	"strconv"
	"strings"

	"github.com/nmehta/noggin/internal/catalog"
)

// Mode tags which content mode a source serves.
type Mode string

const (
	ModeQuiz   Mode = "quiz"
	ModePuzzle Mode = "puzzle"
)

// Meta describes the activity backing a source: everything the
// controller and the presentation layer need that is not per-item.
type Meta struct {
	ID         string
	Title      string
	Mode       Mode
	Bucket     string // quiz category or puzzle kind
	Difficulty catalog.Difficulty
	TimeLimit  int // seconds, 0 = untimed
	Hints      []string
	Letters    []string // scramble letter multiset
	Sequence   []string // memory target sequence
}

// Item is one thing to answer within an attempt.
type Item struct {
	Prompt      string
	Options     []string // quiz only
	Solution    string   // shown after reveal
	Explanation string
	Points      int
}

// Source is the capability a controller is parameterized by: an
// item provider plus an answer checker. Quiz and puzzle are the two
// implementations.
type Source interface {
	Meta() Meta
	Len() int
	Item(i int) Item
	Check(i int, answer string) bool
	Points(i int) int
}

// Sink consumes the immutable Result of a completed attempt, folding it
// into durable progress.
type Sink interface {
	Submit(r Result)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(r Result)

func (f SinkFunc) Submit(r Result) { f(r) }

// AnswersEqual implements the canonical free-text comparison: exact
// match after trimming surrounding whitespace, case-insensitively.
func AnswersEqual(user, canonical string) bool {
	return strings.EqualFold(strings.TrimSpace(user), strings.TrimSpace(canonical))
}

// quizSource serves a quiz's ordered question list. Answers are option
// indices carried as decimal strings; checking is index equality.
type quizSource struct {
	quiz catalog.Quiz
}

// NewQuizSource wraps a quiz catalog entry as a controller source.
func NewQuizSource(q catalog.Quiz) Source {
	return &quizSource{quiz: q}
}

func (s *quizSource) Meta() Meta {
	return Meta{
		ID:         s.quiz.ID,
		Title:      s.quiz.Title,
		Mode:       ModeQuiz,
		Bucket:     s.quiz.Category,
		Difficulty: s.quiz.Difficulty,
		TimeLimit:  s.quiz.TimeLimit,
	}
}

func (s *quizSource) Len() int { return len(s.quiz.Questions) }

func (s *quizSource) Item(i int) Item {
	q := s.quiz.Questions[i]
	return Item{
		Prompt:      q.Prompt,
		Options:     q.Options,
		Solution:    q.Options[q.Answer],
		Explanation: q.Explanation,
		Points:      q.Points,
	}
}

func (s *quizSource) Check(i int, answer string) bool {
	idx, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return false
	}
	return idx == s.quiz.Questions[i].Answer
}

func (s *quizSource) Points(i int) int { return s.quiz.Questions[i].Points }

// puzzleSource serves a puzzle's single prompt. Checking is the
// whitespace-trimmed, case-insensitive comparison against the canonical
// solution string.
type puzzleSource struct {
	puzzle catalog.Puzzle
}

// NewPuzzleSource wraps a puzzle catalog entry as a controller source.
func NewPuzzleSource(p catalog.Puzzle) Source {
	return &puzzleSource{puzzle: p}
}

func (s *puzzleSource) Meta() Meta {
	return Meta{
		ID:         s.puzzle.ID,
		Title:      s.puzzle.Title,
		Mode:       ModePuzzle,
		Bucket:     string(s.puzzle.Kind),
		Difficulty: s.puzzle.Difficulty,
		TimeLimit:  s.puzzle.TimeLimit,
		Hints:      s.puzzle.Hints,
		Letters:    s.puzzle.Letters,
		Sequence:   s.puzzle.Sequence,
	}
}

func (s *puzzleSource) Len() int { return 1 }

func (s *puzzleSource) Item(int) Item {
	return Item{
		Prompt:   s.puzzle.Prompt,
		Solution: s.puzzle.Solution,
		Points:   s.puzzle.Points,
	}
}

func (s *puzzleSource) Check(_ int, answer string) bool {
	return AnswersEqual(answer, s.puzzle.Solution)
}

func (s *puzzleSource) Points(int) int { return s.puzzle.Points }
