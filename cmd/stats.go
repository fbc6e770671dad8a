package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/nmehta/noggin/internal/catalog"
	"github.com/nmehta/noggin/internal/notify"
	"github.com/nmehta/noggin/internal/progress"
	"github.com/nmehta/noggin/internal/puzzle"
	"github.com/nmehta/noggin/internal/quiz"
	"github.com/nmehta/noggin/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print progress statistics without launching the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		cat, err := catalog.Load()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		kv := st.KV()
		qp := quiz.NewProvider(cat, kv, nil, notify.Nop{}, time.Now).ProgressView()
		pp := puzzle.NewProvider(cat, kv, nil, notify.Nop{}, time.Now).ProgressView()

		fmt.Println("Quizzes")
		fmt.Printf("  completed %d, points %d, streak %d day(s)\n", qp.Completed, qp.TotalPoints, qp.Streak)
		printBuckets(categoryNames(qp.Categories), func(name string) *progress.Rolling { return qp.Categories[name] })

		fmt.Println("Puzzles")
		fmt.Printf("  solved %d/%d, points %d, streak %d day(s)\n", pp.Solved, pp.Attempted, pp.TotalPoints, pp.Streak)
		printBuckets(kindNames(pp.Kinds), func(name string) *progress.Rolling { return pp.Kinds[catalog.PuzzleKind(name)] })

		if len(qp.Achievements) > 0 {
			fmt.Println("Achievements")
			for _, a := range qp.Achievements {
				fmt.Printf("  %s (%s)\n", a.Title, a.UnlockedAt.Format("2006-01-02"))
			}
		}
		return nil
	},
}

func categoryNames(m map[string]*progress.Rolling) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func kindNames(m map[catalog.PuzzleKind]*progress.Rolling) []string {
	names := make([]string, 0, len(m))
	for kind := range m {
		names = append(names, string(kind))
	}
	sort.Strings(names)
	return names
}

func printBuckets(names []string, lookup func(string) *progress.Rolling) {
	for _, name := range names {
		r := lookup(name)
		if r == nil {
			continue
		}
		fmt.Printf("  %-12s attempts %3d  avg %5.1f%%  best %5.1f%%  tier %s\n",
			name, r.Attempts, r.AvgScore, r.BestScore, r.Difficulty.DisplayName())
	}
}
