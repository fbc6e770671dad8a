package home

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nmehta/noggin/internal/catalog"
	"github.com/nmehta/noggin/internal/daily"
	"github.com/nmehta/noggin/internal/nav"
	"github.com/nmehta/noggin/internal/notify"
	"github.com/nmehta/noggin/internal/puzzle"
	"github.com/nmehta/noggin/internal/quiz"
	"github.com/nmehta/noggin/internal/screen"
	"github.com/nmehta/noggin/internal/screens/dailychallenge"
	"github.com/nmehta/noggin/internal/screens/puzzlelist"
	"github.com/nmehta/noggin/internal/screens/quizlist"
	"github.com/nmehta/noggin/internal/screens/stats"
	"github.com/nmehta/noggin/internal/ui/components"
	"github.com/nmehta/noggin/internal/ui/layout"
	"github.com/nmehta/noggin/internal/ui/theme"
	"go.uber.org/zap"
)

// HomeScreen is the main menu: daily challenge, the two content modes,
// statistics, plus the teaser of the day and any due reminders.
type HomeScreen struct {
	menu       components.Menu
	teaser     catalog.Teaser
	showAnswer bool
	reminders  []notify.Reminder
	quizProv   *quiz.Provider
	puzzleProv *puzzle.Provider
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen and drains due reminders into its banner.
func New(cat *catalog.Catalog, quizProv *quiz.Provider, puzzleProv *puzzle.Provider, dailySvc *daily.Service, sched notify.Scheduler, log *zap.Logger) *HomeScreen {
	now := time.Now()

	due, err := sched.Due(context.Background(), now)
	if err != nil {
		log.Warn("drain due reminders failed", zap.Error(err))
	}

	h := &HomeScreen{
		teaser:     cat.TeaserFor(now),
		reminders:  due,
		quizProv:   quizProv,
		puzzleProv: puzzleProv,
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Daily Challenge", Action: func() tea.Cmd {
			return nav.Push(dailychallenge.New(cat, quizProv, puzzleProv, dailySvc, log))
		}},
		{Label: "Quizzes", Action: func() tea.Cmd {
			return nav.Push(quizlist.New(cat, quizProv, puzzleProv, dailySvc, log))
		}},
		{Label: "Puzzles", Action: func() tea.Cmd {
			return nav.Push(puzzlelist.New(cat, quizProv, puzzleProv, dailySvc, log))
		}},
		{Label: "Statistics", Action: func() tea.Cmd {
			return nav.Push(stats.New(quizProv, puzzleProv))
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})

	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "t" {
			h.showAnswer = !h.showAnswer
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := theme.Title.Width(width).Render("N O G G I N")
	subtitle := theme.Subtitle.Width(width).Render("quizzes and brain puzzles, one day at a time")

	var banner string
	if len(h.reminders) > 0 {
		var lines string
		for _, r := range h.reminders {
			lines += "  ⏰ " + r.Message + "\n"
		}
		banner = lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render(lines)
	}

	teaserTitle := theme.Hint.Render("Teaser of the day")
	teaserBody := theme.Body.Render("  " + h.teaser.Question)
	teaserAnswer := theme.Hint.Render("  press t to reveal the answer")
	if h.showAnswer {
		teaserAnswer = theme.Correct.Render("  " + h.teaser.Answer)
	}
	teaserCard := theme.Card.Width(width - 8).Render(
		teaserTitle + "\n" + teaserBody + "\n\n" + teaserAnswer,
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		"",
		title,
		subtitle,
		"",
		banner,
		h.menu.View(),
		"",
		lipgloss.NewStyle().MarginLeft(4).Render(teaserCard),
	)

	return content
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// KeyHints implements screen.KeyHintProvider.
func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "t", Description: "Teaser answer"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
