package play

import (
	"math/rand"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/nmehta/noggin/internal/attempt"
	"github.com/nmehta/noggin/internal/catalog"
	"github.com/nmehta/noggin/internal/daily"
	"github.com/nmehta/noggin/internal/nav"
	"github.com/nmehta/noggin/internal/puzzle"
	"github.com/nmehta/noggin/internal/quiz"
	"github.com/nmehta/noggin/internal/screen"
	"github.com/nmehta/noggin/internal/screens/summary"
	"github.com/nmehta/noggin/internal/ui/components"
	"github.com/nmehta/noggin/internal/ui/layout"
)

// Deps bundles everything a play screen needs beyond its source.
type Deps struct {
	Quiz   *quiz.Provider
	Puzzle *puzzle.Provider
	Daily  *daily.Service
	Log    *zap.Logger
	// Bonus is the daily challenge multiplier, 0 outside a challenge.
	Bonus float64
}

// PlayScreen hosts the generic attempt controller for both content
// modes. All game rules live in the controller; this screen only
// renders exported state and forwards user intents.
type PlayScreen struct {
	ctrl *attempt.Controller
	deps Deps
	mode attempt.Mode
	kind catalog.PuzzleKind

	// selected is the highlighted quiz option index.
	selected int
	// input holds free-text puzzle answers.
	input components.TextInput
	// board and cursor drive the word-scramble letter board.
	board  *attempt.Board
	cursor int
	rng    *rand.Rand

	startedAt   time.Time
	confirmQuit bool
	done        bool
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.EscHandler = (*PlayScreen)(nil)

// NewQuiz creates a play screen over a quiz attempt.
func NewQuiz(q catalog.Quiz, deps Deps) *PlayScreen {
	src := attempt.NewQuizSource(q)
	return newScreen(src, deps, deps.Quiz)
}

// NewPuzzle creates a play screen over a puzzle attempt.
func NewPuzzle(p catalog.Puzzle, deps Deps) *PlayScreen {
	src := attempt.NewPuzzleSource(p)
	s := newScreen(src, deps, deps.Puzzle)
	s.kind = p.Kind
	if p.Kind == catalog.KindScramble {
		s.board = attempt.NewBoard(p.Letters)
	}
	return s
}

func newScreen(src attempt.Source, deps Deps, sink attempt.Sink) *PlayScreen {
	ctrl := attempt.New(src, sink, deps.Log)
	if deps.Bonus > 0 {
		ctrl.SetBonus(deps.Bonus)
	}
	return &PlayScreen{
		ctrl:  ctrl,
		deps:  deps,
		mode:  src.Meta().Mode,
		input: components.NewTextInput("your answer", 64),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *PlayScreen) Init() tea.Cmd {
	s.startedAt = time.Now()
	s.ctrl.Start(s.startedAt)
	return tea.Batch(s.input.Init(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if s.done {
			return s, nil
		}
		before := s.ctrl.Index()
		s.ctrl.Tick(time.Time(msg))
		if s.ctrl.Index() != before {
			// Auto-advance moved to the next question.
			s.selected = 0
		}
		if cmd := s.finishIfCompleted(); cmd != nil {
			return s, cmd
		}
		return s, tick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.confirmQuit {
		switch msg.String() {
		case "y", "enter":
			s.ctrl.Reset()
			s.done = true
			return s, nav.Pop()
		case "n", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.ctrl.State() != attempt.StateActive {
		return s, nil
	}

	// Advance out of the reveal overlay on enter; everything else waits
	// for the auto-advance.
	if s.ctrl.Phase() == attempt.PhaseRevealed {
		if msg.String() == "enter" {
			s.ctrl.Advance(time.Now())
			s.selected = 0
			return s, s.finishIfCompleted()
		}
		return s, nil
	}

	if s.mode == attempt.ModeQuiz {
		return s.handleQuizKey(msg)
	}
	if s.kind == catalog.KindScramble {
		return s.handleScrambleKey(msg)
	}
	return s.handleTextKey(msg)
}

func (s *PlayScreen) handleQuizKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	options := len(s.ctrl.Current().Options)

	switch key := msg.String(); key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
		s.ctrl.Select(strconv.Itoa(s.selected))
	case "down", "j":
		if s.selected < options-1 {
			s.selected++
		}
		s.ctrl.Select(strconv.Itoa(s.selected))
	case "1", "2", "3", "4":
		idx := int(key[0] - '1')
		if idx < options {
			s.selected = idx
			s.ctrl.Select(strconv.Itoa(idx))
		}
	case "enter":
		// The highlighted option is the answer, even if never moved.
		s.ctrl.Select(strconv.Itoa(s.selected))
		s.ctrl.Submit()
	case "s":
		s.ctrl.Skip(time.Now())
		s.selected = 0
		return s, s.finishIfCompleted()
	}
	return s, nil
}

func (s *PlayScreen) handleTextKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s.ctrl.Select(s.input.Value())
		s.ctrl.Submit()
		return s, nil
	case "ctrl+h":
		s.ctrl.RevealNextHint()
		return s, nil
	case "ctrl+s":
		s.ctrl.Skip(time.Now())
		return s, s.finishIfCompleted()
	}

	// During the memory pre-phases input is ignored by the controller;
	// don't let it accumulate in the input box either.
	if s.ctrl.Phase() != attempt.PhaseAnswering {
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.ctrl.Select(s.input.Value())
	return s, cmd
}

func (s *PlayScreen) handleScrambleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "left":
		if s.cursor > 0 {
			s.cursor--
		}
	case "right":
		if s.cursor < len(s.board.Available())-1 {
			s.cursor++
		}
	case "space":
		if s.board.Place(s.cursor) {
			if s.cursor >= len(s.board.Available()) && s.cursor > 0 {
				s.cursor--
			}
			s.ctrl.Select(s.board.Answer())
		}
	case "backspace":
		if s.board.RemoveLast() {
			s.ctrl.Select(s.board.Answer())
		}
	case "r":
		s.board.Shuffle(s.rng)
	case "c":
		s.board.Clear()
		s.cursor = 0
		s.ctrl.Select(s.board.Answer())
	case "h":
		s.ctrl.RevealNextHint()
	case "enter":
		s.ctrl.Submit()
	case "s":
		s.ctrl.Skip(time.Now())
		return s, s.finishIfCompleted()
	}
	return s, nil
}

// finishIfCompleted hands over to the summary screen once the
// controller reaches Completed. The provider has already folded the
// result by the time the controller reports it.
func (s *PlayScreen) finishIfCompleted() tea.Cmd {
	res, ok := s.ctrl.Result()
	if !ok || s.done {
		return nil
	}
	s.done = true

	if s.deps.Bonus > 0 && s.deps.Daily != nil {
		if s.mode == attempt.ModeQuiz {
			s.deps.Daily.MarkQuizDone(time.Now())
		} else {
			s.deps.Daily.MarkPuzzleDone(time.Now())
		}
	}

	var unlocked []quiz.Achievement
	if s.mode == attempt.ModeQuiz {
		for _, a := range s.deps.Quiz.ProgressView().Achievements {
			if !a.UnlockedAt.Before(s.startedAt) {
				unlocked = append(unlocked, a)
			}
		}
	}

	awarded := res.Points
	if s.mode == attempt.ModePuzzle {
		awarded = puzzle.Award(res)
	} else if res.Bonus > 0 {
		awarded = int(float64(res.Points)*res.Bonus + 0.5)
	}

	return nav.Replace(summary.New(res, awarded, unlocked))
}

// HandleEsc implements screen.EscHandler: the first Esc raises the
// quit confirmation instead of leaving mid-attempt.
func (s *PlayScreen) HandleEsc() (bool, tea.Cmd) {
	if s.done || s.ctrl.State() != attempt.StateActive {
		return false, nil
	}
	s.confirmQuit = true
	return true, nil
}

func (s *PlayScreen) Title() string {
	return s.ctrl.Meta().Title
}

// KeyHints implements screen.KeyHintProvider.
func (s *PlayScreen) KeyHints() []layout.KeyHint {
	if s.mode == attempt.ModeQuiz {
		return []layout.KeyHint{
			{Key: "↑↓/1-4", Description: "Select"},
			{Key: "Enter", Description: "Submit"},
			{Key: "s", Description: "Skip"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	if s.kind == catalog.KindScramble {
		return []layout.KeyHint{
			{Key: "←→", Description: "Cursor"},
			{Key: "Space", Description: "Place"},
			{Key: "Bksp", Description: "Remove"},
			{Key: "r", Description: "Shuffle"},
			{Key: "c", Description: "Clear"},
			{Key: "h", Description: "Hint"},
			{Key: "Enter", Description: "Submit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+H", Description: "Hint"},
		{Key: "Ctrl+S", Description: "Skip"},
		{Key: "Esc", Description: "Quit"},
	}
}
