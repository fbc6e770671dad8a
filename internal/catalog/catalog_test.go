package catalog

import (
	"testing"
	"time"
)

func TestLoadEmbeddedContent(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(c.Quizzes(QuizFilter{})) == 0 {
		t.Error("no quizzes loaded")
	}
	if len(c.Puzzles(PuzzleFilter{})) == 0 {
		t.Error("no puzzles loaded")
	}
}

func TestQuizzesFilter(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	for _, q := range c.Quizzes(QuizFilter{Category: "science"}) {
		if q.Category != "science" {
			t.Errorf("quiz %s: category %q, want science", q.ID, q.Category)
		}
	}

	for _, q := range c.Quizzes(QuizFilter{Difficulty: Beginner}) {
		if q.Difficulty != Beginner {
			t.Errorf("quiz %s: difficulty %v, want beginner", q.ID, q.Difficulty)
		}
	}

	if got := c.Quizzes(QuizFilter{Category: "no-such-category"}); len(got) != 0 {
		t.Errorf("expected empty result for unknown category, got %d", len(got))
	}
}

func TestPuzzlesFilter(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	for _, kind := range AllPuzzleKinds() {
		ps := c.Puzzles(PuzzleFilter{Kind: kind})
		if len(ps) == 0 {
			t.Errorf("no puzzles of kind %s", kind)
		}
		for _, p := range ps {
			if p.Kind != kind {
				t.Errorf("puzzle %s: kind %q, want %q", p.ID, p.Kind, kind)
			}
		}
	}
}

func TestByIDLookup(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	q, ok := c.QuizByID("quiz-science-101")
	if !ok || q.Title != "Science Starters" {
		t.Errorf("QuizByID(quiz-science-101) = %+v, %v", q, ok)
	}
	if _, ok := c.QuizByID("nope"); ok {
		t.Error("QuizByID(nope) should not be found")
	}

	p, ok := c.PuzzleByID("puzzle-riddle-echo")
	if !ok || p.Solution != "Echo" {
		t.Errorf("PuzzleByID(puzzle-riddle-echo) = %+v, %v", p, ok)
	}
}

func TestScrambleLettersMatchSolution(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	for _, p := range c.Puzzles(PuzzleFilter{Kind: KindScramble}) {
		counts := make(map[string]int)
		for _, l := range p.Letters {
			counts[l]++
		}
		for _, r := range p.Solution {
			counts[string(r)]--
		}
		for l, n := range counts {
			if n != 0 {
				t.Errorf("puzzle %s: letter %q count off by %d vs solution", p.ID, l, n)
			}
		}
	}
}

func TestTeaserForDeterministic(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	day := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	first := c.TeaserFor(day)
	second := c.TeaserFor(day.Add(5 * time.Hour))
	if first.ID != second.ID {
		t.Errorf("same day yielded different teasers: %s vs %s", first.ID, second.ID)
	}

	nextWeekSame := c.TeaserFor(day.AddDate(0, 0, len(c.teasers)))
	if nextWeekSame.ID != first.ID {
		t.Errorf("rotation period broken: %s vs %s", nextWeekSame.ID, first.ID)
	}
}

func TestDifficultyRoundTrip(t *testing.T) {
	for _, d := range AllDifficulties() {
		parsed, err := ParseDifficulty(d.String())
		if err != nil {
			t.Errorf("ParseDifficulty(%q) error: %v", d.String(), err)
		}
		if parsed != d {
			t.Errorf("ParseDifficulty(%q) = %v, want %v", d.String(), parsed, d)
		}
	}
	if _, err := ParseDifficulty("impossible"); err == nil {
		t.Error("ParseDifficulty(impossible) should fail")
	}
}

func TestDifficultyNextSaturates(t *testing.T) {
	if got := Beginner.Next(); got != Intermediate {
		t.Errorf("Beginner.Next() = %v", got)
	}
	if got := Expert.Next(); got != Expert {
		t.Errorf("Expert.Next() = %v, want Expert", got)
	}
}
