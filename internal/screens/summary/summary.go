package summary

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nmehta/noggin/internal/attempt"
	"github.com/nmehta/noggin/internal/nav"
	"github.com/nmehta/noggin/internal/quiz"
	"github.com/nmehta/noggin/internal/screen"
	"github.com/nmehta/noggin/internal/ui/layout"
	"github.com/nmehta/noggin/internal/ui/theme"
)

// SummaryScreen shows the result of a completed attempt: score, time,
// hints, daily bonus, and any achievements the attempt unlocked.
type SummaryScreen struct {
	result   attempt.Result
	awarded  int
	unlocked []quiz.Achievement
}

var _ screen.Screen = (*SummaryScreen)(nil)

// New creates a summary screen for the given result. awarded is the
// final point award after hint penalties and daily bonus.
func New(result attempt.Result, awarded int, unlocked []quiz.Achievement) *SummaryScreen {
	return &SummaryScreen{result: result, awarded: awarded, unlocked: unlocked}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, nav.Pop()
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result

	var headline string
	switch {
	case res.Expired:
		headline = theme.Incorrect.Render("⏱ Time's up!")
	case res.Success:
		headline = theme.Correct.Render("★ Well done!")
	default:
		headline = theme.Body.Bold(true).Render("Attempt complete")
	}

	var lines []string
	lines = append(lines, headline, "")

	if res.Mode == attempt.ModeQuiz {
		lines = append(lines, theme.Body.Render(
			fmt.Sprintf("Correct answers:  %d / %d", res.Correct, res.Items)))
		lines = append(lines, theme.Body.Render(
			fmt.Sprintf("Score:            %.0f%%", res.ScorePercent)))
	} else if res.HintsUsed > 0 {
		lines = append(lines, theme.Body.Render(
			fmt.Sprintf("Hints used:       %d", res.HintsUsed)))
	}

	lines = append(lines, theme.Body.Render(
		fmt.Sprintf("Time:             %.0fs", res.TimeSpent)))

	pointsLine := fmt.Sprintf("Points earned:    %d", s.awarded)
	if res.Bonus > 0 {
		pointsLine += fmt.Sprintf("   (daily bonus ×%.1f)", res.Bonus)
	}
	lines = append(lines, theme.Selected.Render(pointsLine))

	if len(s.unlocked) > 0 {
		lines = append(lines, "")
		for _, a := range s.unlocked {
			lines = append(lines, theme.BadgeUnlocked.Render("🏆 "+a.Title))
		}
	}

	lines = append(lines, "", theme.Hint.Render("enter to go back"))

	card := theme.Card.Width(min(width-12, 60)).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *SummaryScreen) Title() string {
	return "Summary"
}

// KeyHints implements screen.KeyHintProvider.
func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back"},
	}
}
