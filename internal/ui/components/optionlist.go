package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/nmehta/noggin/internal/ui/theme"
)

// OptionList renders a quiz question's options. It is render-only: the
// play screen owns selection state via the session controller.
type OptionList struct {
	Options []string
	// Selected is the highlighted option index, -1 for none.
	Selected int
	// Revealed switches to the post-submit coloring.
	Revealed bool
	// CorrectIndex and ChosenIndex drive the revealed coloring.
	CorrectIndex int
	ChosenIndex  int
}

var optionLabels = []string{"A", "B", "C", "D"}

// View renders the option rows.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Selected && !o.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, optionLabels[i], opt)

		switch {
		case o.Revealed && i == o.CorrectIndex:
			s += theme.Correct.Render(line) + "\n"
		case o.Revealed && i == o.ChosenIndex:
			s += theme.Incorrect.Render(line) + "\n"
		case o.Revealed:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == o.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
