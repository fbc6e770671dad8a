package dailychallenge

import (
	"fmt"
	"time"

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
	"github.com/nmehta/noggin/internal/ui/components"
	"github.com/nmehta/noggin/internal/ui/layout"
	"github.com/nmehta/noggin/internal/ui/theme"
)

// DailyChallengeScreen shows today's quiz/puzzle pairing with its bonus
// multiplier and completion state, and launches either half with the
// bonus applied.
type DailyChallengeScreen struct {
	menu      components.Menu
	challenge daily.Challenge
	dailySvc  *daily.Service
	quizTitle string
	puzzTitle string
}

var _ screen.Screen = (*DailyChallengeScreen)(nil)

// New creates the daily challenge screen for the current calendar day.
func New(cat *catalog.Catalog, quizProv *quiz.Provider, puzzleProv *puzzle.Provider, dailySvc *daily.Service, log *zap.Logger) *DailyChallengeScreen {
	ch := dailySvc.Today(time.Now())

	s := &DailyChallengeScreen{
		challenge: ch,
		dailySvc:  dailySvc,
	}

	deps := play.Deps{
		Quiz:   quizProv,
		Puzzle: puzzleProv,
		Daily:  dailySvc,
		Log:    log,
		Bonus:  ch.Multiplier,
	}

	var items []components.MenuItem

	if q, ok := cat.QuizByID(ch.QuizID); ok {
		s.quizTitle = q.Title
		items = append(items, components.MenuItem{
			Label:    "Quiz: " + q.Title,
			Detail:   doneLabel(ch.QuizDone),
			Disabled: ch.QuizDone,
			Action: func() tea.Cmd {
				return nav.Push(play.NewQuiz(q, deps))
			},
		})
	}

	if p, ok := cat.PuzzleByID(ch.PuzzleID); ok {
		s.puzzTitle = p.Title
		items = append(items, components.MenuItem{
			Label:    "Puzzle: " + p.Title,
			Detail:   doneLabel(ch.PuzzleDone),
			Disabled: ch.PuzzleDone,
			Action: func() tea.Cmd {
				return nav.Push(play.NewPuzzle(p, deps))
			},
		})
	}

	s.menu = components.NewMenu(items)
	return s
}

func doneLabel(done bool) string {
	if done {
		return "completed today"
	}
	return "not yet played"
}

func (s *DailyChallengeScreen) Init() tea.Cmd {
	return nil
}

func (s *DailyChallengeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *DailyChallengeScreen) View(width, height int) string {
	header := theme.Subtitle.Render(fmt.Sprintf("  Challenge for %s", s.challenge.Date))
	bonus := theme.Hint.Render(fmt.Sprintf("  Bonus multiplier: ×%.1f on all points earned today here",
		s.challenge.Multiplier))

	var status string
	if s.challenge.QuizDone && s.challenge.PuzzleDone {
		status = theme.Correct.Render("  Both halves done. See you tomorrow!")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		header,
		bonus,
		"",
		s.menu.View(),
		"",
		status,
	)
}

func (s *DailyChallengeScreen) Title() string {
	return "Daily Challenge"
}

// KeyHints implements screen.KeyHintProvider.
func (s *DailyChallengeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}
