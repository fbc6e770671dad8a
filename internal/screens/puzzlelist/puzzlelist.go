package puzzlelist

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/nmehta/noggin/internal/catalog"
	"github.com/nmehta/noggin/internal/daily"
	"github.com/nmehta/noggin/internal/nav"
	"github.com/nmehta/noggin/internal/puzzle"
	"github.com/nmehta/noggin/internal/quiz"
	"github.com/nmehta/noggin/internal/screen"
	"github.com/nmehta/noggin/internal/screens/play"
	"github.com/nmehta/noggin/internal/ui/layout"
	"github.com/nmehta/noggin/internal/ui/theme"
)

// PuzzleListScreen lists the puzzle catalog, filterable by kind (tab)
// and difficulty (d), with the recommended row on top.
type PuzzleListScreen struct {
	cat        *catalog.Catalog
	quizProv   *quiz.Provider
	puzzleProv *puzzle.Provider
	dailySvc   *daily.Service
	log        *zap.Logger

	recommended []catalog.Puzzle
	kinds       []catalog.PuzzleKind // "" first = all
	kindIdx     int
	diff        catalog.Difficulty
	selected    int
}

var _ screen.Screen = (*PuzzleListScreen)(nil)

// New creates the puzzle list screen.
func New(cat *catalog.Catalog, quizProv *quiz.Provider, puzzleProv *puzzle.Provider, dailySvc *daily.Service, log *zap.Logger) *PuzzleListScreen {
	return &PuzzleListScreen{
		cat:         cat,
		quizProv:    quizProv,
		puzzleProv:  puzzleProv,
		dailySvc:    dailySvc,
		log:         log,
		recommended: puzzleProv.Recommend(),
		kinds:       append([]catalog.PuzzleKind{""}, catalog.AllPuzzleKinds()...),
	}
}

func (s *PuzzleListScreen) filtered() []catalog.Puzzle {
	return s.cat.Puzzles(catalog.PuzzleFilter{
		Kind:       s.kinds[s.kindIdx],
		Difficulty: s.diff,
	})
}

func (s *PuzzleListScreen) Init() tea.Cmd {
	return nil
}

func (s *PuzzleListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	list := s.filtered()

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(list)-1 {
			s.selected++
		}
	case "tab":
		s.kindIdx = (s.kindIdx + 1) % len(s.kinds)
		s.selected = 0
	case "d":
		if s.diff == catalog.Expert {
			s.diff = catalog.DifficultyUnspecified
		} else {
			s.diff++
		}
		s.selected = 0
	case "enter":
		if s.selected < len(list) {
			p := list[s.selected]
			return s, nav.Push(play.NewPuzzle(p, play.Deps{
				Quiz:   s.quizProv,
				Puzzle: s.puzzleProv,
				Daily:  s.dailySvc,
				Log:    s.log,
			}))
		}
	}
	return s, nil
}

func (s *PuzzleListScreen) View(width, height int) string {
	var parts []string
	parts = append(parts, "")

	if len(s.recommended) > 0 {
		parts = append(parts, theme.Hint.Render(fmt.Sprintf(
			"  Recommended for you (%s):", s.puzzleProv.RecommendedDifficulty().DisplayName())))
		for _, p := range s.recommended {
			parts = append(parts, theme.Body.Render(
				fmt.Sprintf("    ◦ %s — %s", p.Title, p.Kind.DisplayName())))
		}
		parts = append(parts, "")
	}

	kindLabel := "all"
	if k := s.kinds[s.kindIdx]; k != "" {
		kindLabel = k.DisplayName()
	}
	parts = append(parts, theme.Hint.Render(fmt.Sprintf(
		"  Kind: %s (tab)  ·  Difficulty: %s (d)", kindLabel, s.diff.DisplayName())))
	parts = append(parts, "")

	list := s.filtered()
	if len(list) == 0 {
		parts = append(parts, theme.Hint.Render("  Nothing matches this filter."))
	}
	for i, p := range list {
		line := fmt.Sprintf("%s  %s · %s · %d pts",
			p.Title, p.Kind.DisplayName(), p.Difficulty.DisplayName(), p.Points)
		if p.TimeLimit > 0 {
			line += fmt.Sprintf(" · %ds", p.TimeLimit)
		}
		if i == s.selected {
			parts = append(parts, theme.Selected.Render("  ▸ "+line))
		} else {
			parts = append(parts, theme.Unselected.Render("    "+line))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *PuzzleListScreen) Title() string {
	return "Puzzles"
}

// KeyHints implements screen.KeyHintProvider.
func (s *PuzzleListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Kind"},
		{Key: "d", Description: "Difficulty"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}
