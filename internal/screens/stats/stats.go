package stats

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nmehta/noggin/internal/catalog"
	"github.com/nmehta/noggin/internal/progress"
	"github.com/nmehta/noggin/internal/puzzle"
	"github.com/nmehta/noggin/internal/quiz"
	"github.com/nmehta/noggin/internal/screen"
	"github.com/nmehta/noggin/internal/ui/layout"
	"github.com/nmehta/noggin/internal/ui/theme"
)

var achievementTitles = map[string]string{
	quiz.AchFirstCompletion: "First Steps",
	quiz.AchWeekStreak:      "Seven-Day Streak",
	quiz.AchPerfectScore:    "Perfect Round",
}

// StatsScreen shows lifetime totals, streaks, per-bucket breakdowns and
// the achievements gallery. Read-only: snapshots the providers at
// construction.
type StatsScreen struct {
	quizProg   quiz.Progress
	puzzleProg puzzle.Progress
}

var _ screen.Screen = (*StatsScreen)(nil)

// New creates the statistics screen from the current provider state.
func New(quizProv *quiz.Provider, puzzleProv *puzzle.Provider) *StatsScreen {
	return &StatsScreen{
		quizProg:   quizProv.ProgressView(),
		puzzleProg: puzzleProv.ProgressView(),
	}
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	var parts []string
	parts = append(parts, "")

	parts = append(parts, theme.Subtitle.Render("  Quizzes"))
	parts = append(parts, theme.Body.Render(fmt.Sprintf(
		"    Completed: %d   Points: %d   Streak: %d day(s)",
		s.quizProg.Completed, s.quizProg.TotalPoints, s.quizProg.Streak)))
	parts = append(parts, s.bucketTable(categoryRows(s.quizProg.Categories))...)
	parts = append(parts, "")

	parts = append(parts, theme.Subtitle.Render("  Puzzles"))
	parts = append(parts, theme.Body.Render(fmt.Sprintf(
		"    Solved: %d/%d   Points: %d   Streak: %d day(s)",
		s.puzzleProg.Solved, s.puzzleProg.Attempted, s.puzzleProg.TotalPoints, s.puzzleProg.Streak)))
	parts = append(parts, s.bucketTable(kindRows(s.puzzleProg.Kinds))...)
	parts = append(parts, "")

	parts = append(parts, theme.Subtitle.Render("  Achievements"))
	parts = append(parts, s.achievements()...)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

type bucketRow struct {
	name    string
	rolling progress.Rolling
}

func categoryRows(m map[string]*progress.Rolling) []bucketRow {
	rows := make([]bucketRow, 0, len(m))
	for name, r := range m {
		rows = append(rows, bucketRow{name: titleCase(name), rolling: *r})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })
	return rows
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func kindRows(m map[catalog.PuzzleKind]*progress.Rolling) []bucketRow {
	rows := make([]bucketRow, 0, len(m))
	for kind, r := range m {
		rows = append(rows, bucketRow{name: kind.DisplayName(), rolling: *r})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })
	return rows
}

func (s *StatsScreen) bucketTable(rows []bucketRow) []string {
	if len(rows) == 0 {
		return []string{theme.Hint.Render("    No attempts yet.")}
	}
	out := []string{theme.Hint.Render(fmt.Sprintf(
		"    %-12s %8s %8s %8s %10s", "Bucket", "Attempts", "Avg", "Best", "Tier"))}
	for _, row := range rows {
		r := row.rolling
		out = append(out, theme.Body.Render(fmt.Sprintf(
			"    %-12s %8d %7.0f%% %7.0f%% %10s",
			row.name, r.Attempts, r.AvgScore, r.BestScore, r.Difficulty.DisplayName())))
	}
	return out
}

func (s *StatsScreen) achievements() []string {
	var out []string
	ids := []string{quiz.AchFirstCompletion, quiz.AchWeekStreak, quiz.AchPerfectScore}
	for _, id := range ids {
		title := achievementTitles[id]
		if s.quizProg.HasAchievement(id) {
			out = append(out, theme.BadgeUnlocked.Render("    ★ "+title))
		} else {
			out = append(out, theme.BadgeLocked.Render("    ☆ "+title))
		}
	}
	return out
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

// KeyHints implements screen.KeyHintProvider.
func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}
