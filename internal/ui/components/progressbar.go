package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nmehta/noggin/internal/ui/theme"
)

// ProgressBar displays a horizontal bar, used for the countdown and the
// per-bucket statistics tables.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0.0 - 1.0
	ShowPercent bool
	Width       int
	// Urgent switches the fill color, used when the countdown runs low.
	Urgent bool
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	fillStyle := theme.ProgressFilled
	if p.Urgent {
		fillStyle = lipgloss.NewStyle().Background(theme.Error)
	}

	result += fillStyle.Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}
