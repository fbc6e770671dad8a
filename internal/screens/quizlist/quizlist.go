package quizlist

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

// QuizListScreen lists the quiz catalog: a recommended row on top, the
// filtered catalog below. Tab cycles the category filter, d cycles the
// difficulty filter.
type QuizListScreen struct {
	cat        *catalog.Catalog
	quizProv   *quiz.Provider
	puzzleProv *puzzle.Provider
	dailySvc   *daily.Service
	log        *zap.Logger

	recommended []catalog.Quiz
	categories  []string // "" first = all
	catIdx      int
	diff        catalog.Difficulty // DifficultyUnspecified = all
	selected    int
}

var _ screen.Screen = (*QuizListScreen)(nil)

// New creates the quiz list screen.
func New(cat *catalog.Catalog, quizProv *quiz.Provider, puzzleProv *puzzle.Provider, dailySvc *daily.Service, log *zap.Logger) *QuizListScreen {
	return &QuizListScreen{
		cat:         cat,
		quizProv:    quizProv,
		puzzleProv:  puzzleProv,
		dailySvc:    dailySvc,
		log:         log,
		recommended: quizProv.Recommend(),
		categories:  append([]string{""}, cat.Categories()...),
	}
}

func (s *QuizListScreen) filtered() []catalog.Quiz {
	return s.cat.Quizzes(catalog.QuizFilter{
		Category:   s.categories[s.catIdx],
		Difficulty: s.diff,
	})
}

func (s *QuizListScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
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
		s.catIdx = (s.catIdx + 1) % len(s.categories)
		s.selected = 0
	case "d":
		s.diff = cycleDifficulty(s.diff)
		s.selected = 0
	case "enter":
		if s.selected < len(list) {
			q := list[s.selected]
			return s, nav.Push(play.NewQuiz(q, play.Deps{
				Quiz:   s.quizProv,
				Puzzle: s.puzzleProv,
				Daily:  s.dailySvc,
				Log:    s.log,
			}))
		}
	}
	return s, nil
}

func cycleDifficulty(d catalog.Difficulty) catalog.Difficulty {
	if d == catalog.Expert {
		return catalog.DifficultyUnspecified
	}
	return d + 1
}

func (s *QuizListScreen) View(width, height int) string {
	var parts []string
	parts = append(parts, "")

	if len(s.recommended) > 0 {
		parts = append(parts, theme.Hint.Render(fmt.Sprintf(
			"  Recommended for you (%s):", s.quizProv.RecommendedDifficulty().DisplayName())))
		for _, q := range s.recommended {
			parts = append(parts, theme.Body.Render(
				fmt.Sprintf("    ◦ %s — %s", q.Title, q.Category)))
		}
		parts = append(parts, "")
	}

	catLabel := s.categories[s.catIdx]
	if catLabel == "" {
		catLabel = "all"
	}
	parts = append(parts, theme.Hint.Render(fmt.Sprintf(
		"  Category: %s (tab)  ·  Difficulty: %s (d)", catLabel, s.diff.DisplayName())))
	parts = append(parts, "")

	list := s.filtered()
	if len(list) == 0 {
		parts = append(parts, theme.Hint.Render("  Nothing matches this filter."))
	}
	for i, q := range list {
		line := fmt.Sprintf("%s  %s · %s · %d questions",
			q.Title, q.Category, q.Difficulty.DisplayName(), len(q.Questions))
		if q.TimeLimit > 0 {
			line += fmt.Sprintf(" · %ds", q.TimeLimit)
		}
		if i == s.selected {
			parts = append(parts, theme.Selected.Render("  ▸ "+line))
		} else {
			parts = append(parts, theme.Unselected.Render("    "+line))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *QuizListScreen) Title() string {
	return "Quizzes"
}

// KeyHints implements screen.KeyHintProvider.
func (s *QuizListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Category"},
		{Key: "d", Description: "Difficulty"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}
