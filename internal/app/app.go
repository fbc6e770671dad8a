package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/nmehta/noggin/internal/catalog"
	"github.com/nmehta/noggin/internal/daily"
	"github.com/nmehta/noggin/internal/nav"
	"github.com/nmehta/noggin/internal/notify"
	"github.com/nmehta/noggin/internal/puzzle"
	"github.com/nmehta/noggin/internal/quiz"
	"github.com/nmehta/noggin/internal/screen"
	"github.com/nmehta/noggin/internal/screens/home"
	"github.com/nmehta/noggin/internal/ui/layout"
)

// Options carry the wired services into the TUI.
type Options struct {
	Catalog *catalog.Catalog
	Quiz    *quiz.Provider
	Puzzle  *puzzle.Provider
	Daily   *daily.Service
	Notify  notify.Scheduler
	Log     *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	stack  *nav.Stack
	opts   Options
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Catalog, opts.Quiz, opts.Puzzle, opts.Daily, opts.Notify, opts.Log)
	return AppModel{
		stack: nav.New(homeScreen),
		opts:  opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.stack.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.stack.Active().(screen.EscHandler); ok {
				if handled, cmd := h.HandleEsc(); handled {
					return m, cmd
				}
			}
			if m.stack.Depth() > 1 {
				return m, nav.Pop()
			}
			return m, nil
		}
	}

	cmd := m.stack.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.stack.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.streak(), m.points(), m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.stack.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// streak shown in the header is the better of the two mode streaks.
func (m AppModel) streak() int {
	q := m.opts.Quiz.ProgressView().Streak
	p := m.opts.Puzzle.ProgressView().Streak
	if p > q {
		return p
	}
	return q
}

func (m AppModel) points() int {
	return m.opts.Quiz.ProgressView().TotalPoints + m.opts.Puzzle.ProgressView().TotalPoints
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
