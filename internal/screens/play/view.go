package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nmehta/noggin/internal/attempt"
	"github.com/nmehta/noggin/internal/catalog"
	"github.com/nmehta/noggin/internal/ui/components"
	"github.com/nmehta/noggin/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	if s.confirmQuit {
		return s.viewQuitConfirm(width, height)
	}

	var parts []string
	parts = append(parts, "")

	if s.ctrl.Timed() {
		meta := s.ctrl.Meta()
		pct := 0.0
		if meta.TimeLimit > 0 {
			pct = float64(s.ctrl.Remaining()) / float64(meta.TimeLimit)
		}
		bar := components.ProgressBar{
			Label:   fmt.Sprintf("⏱ %3ds", s.ctrl.Remaining()),
			Percent: pct,
			Width:   width - 8,
			Urgent:  s.ctrl.Remaining() <= 10,
		}
		parts = append(parts, "    "+bar.View(), "")
	}

	if s.mode == attempt.ModeQuiz {
		parts = append(parts, s.viewQuiz(width)...)
	} else {
		parts = append(parts, s.viewPuzzle(width)...)
	}

	if s.ctrl.Phase() == attempt.PhaseRevealed {
		parts = append(parts, "", s.viewReveal(width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *PlayScreen) viewQuiz(width int) []string {
	item := s.ctrl.Current()

	counter := theme.Hint.Render(fmt.Sprintf("  Question %d of %d  ·  %d pts so far",
		s.ctrl.Index()+1, s.ctrl.Len(), s.ctrl.Points()))
	prompt := theme.Body.Bold(true).Width(width - 8).Render("  " + item.Prompt)

	chosen := -1
	if out := s.ctrl.Outcome(s.ctrl.Index()); out.Answered {
		chosen = s.selected
	}
	options := components.OptionList{
		Options:      item.Options,
		Selected:     s.selected,
		Revealed:     s.ctrl.Phase() == attempt.PhaseRevealed,
		CorrectIndex: correctIndex(item),
		ChosenIndex:  chosen,
	}

	return []string{counter, "", prompt, "", "  " + strings.ReplaceAll(options.View(), "\n", "\n  ")}
}

// correctIndex recovers the correct option index from the item, which
// carries the solution as the option text.
func correctIndex(item attempt.Item) int {
	for i, opt := range item.Options {
		if opt == item.Solution {
			return i
		}
	}
	return -1
}

func (s *PlayScreen) viewPuzzle(width int) []string {
	meta := s.ctrl.Meta()
	item := s.ctrl.Current()

	switch s.ctrl.Phase() {
	case attempt.PhaseMemorize:
		seq := theme.Title.Render(strings.Join(meta.Sequence, "   "))
		return []string{
			theme.Hint.Render("  Memorize the sequence..."),
			"",
			lipgloss.NewStyle().MarginLeft(4).Render(theme.Card.Render(seq)),
		}
	case attempt.PhaseBlank:
		return []string{
			theme.Hint.Render("  Hold it in mind..."),
			"",
			lipgloss.NewStyle().MarginLeft(4).Render(theme.Card.Render("· · ·")),
		}
	}

	prompt := theme.Body.Bold(true).Width(width - 8).Render("  " + item.Prompt)
	parts := []string{prompt, ""}

	if s.kind == catalog.KindScramble {
		parts = append(parts, s.viewBoard()...)
	} else {
		parts = append(parts, "  "+s.input.View())
	}

	if hints := s.ctrl.VisibleHints(); len(hints) > 0 {
		parts = append(parts, "")
		for i, hint := range hints {
			parts = append(parts, theme.Hint.Render(fmt.Sprintf("  Hint %d: %s", i+1, hint)))
		}
	}
	if remaining := len(meta.Hints) - s.ctrl.HintsUsed(); remaining > 0 && s.kind != catalog.KindMemory {
		parts = append(parts, theme.Hint.Render(fmt.Sprintf("  (%d hints left)", remaining)))
	}

	return parts
}

func (s *PlayScreen) viewBoard() []string {
	letterBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
	selectedBox := letterBox.
		BorderForeground(theme.Primary).
		Foreground(theme.Primary).
		Bold(true)
	placedBox := letterBox.
		BorderForeground(theme.Success).
		Foreground(theme.Success)

	var placed []string
	for _, l := range s.board.Placed() {
		placed = append(placed, placedBox.Render(l))
	}
	placedRow := theme.Hint.Render("  (empty)")
	if len(placed) > 0 {
		placedRow = "  " + lipgloss.JoinHorizontal(lipgloss.Top, placed...)
	}

	var available []string
	for i, l := range s.board.Available() {
		if i == s.cursor {
			available = append(available, selectedBox.Render(l))
		} else {
			available = append(available, letterBox.Render(l))
		}
	}
	availableRow := theme.Hint.Render("  (all placed)")
	if len(available) > 0 {
		availableRow = "  " + lipgloss.JoinHorizontal(lipgloss.Top, available...)
	}

	return []string{
		theme.Hint.Render("  Your word:"),
		placedRow,
		"",
		theme.Hint.Render("  Letters:"),
		availableRow,
	}
}

func (s *PlayScreen) viewReveal(width int) string {
	idx := s.ctrl.Index()
	out := s.ctrl.Outcome(idx)
	item := s.ctrl.Current()

	var verdict string
	if out.Correct {
		verdict = theme.Correct.Render("✓ Correct!")
	} else {
		verdict = theme.Incorrect.Render("✗ Not quite.") + " " +
			theme.Body.Render("Answer: "+item.Solution)
	}

	body := verdict
	if item.Explanation != "" {
		body += "\n" + theme.Hint.Render(item.Explanation)
	}
	body += "\n" + theme.Hint.Render("enter to continue")

	return lipgloss.NewStyle().MarginLeft(4).Render(
		theme.Card.Width(width - 12).Render(body))
}

func (s *PlayScreen) viewQuitConfirm(width, height int) string {
	box := theme.Card.Render(
		theme.Body.Bold(true).Render("Abandon this attempt?") + "\n\n" +
			theme.Hint.Render("y to quit · n to keep going"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
