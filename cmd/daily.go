package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nmehta/noggin/internal/catalog"
	"github.com/nmehta/noggin/internal/daily"
	"github.com/nmehta/noggin/internal/store"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show today's daily challenge pairing",
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

		svc := daily.NewService(cat, st.KV(), nil)
		ch := svc.Today(time.Now())

		fmt.Printf("Daily challenge for %s (bonus ×%.1f)\n", ch.Date, ch.Multiplier)
		if q, ok := cat.QuizByID(ch.QuizID); ok {
			fmt.Printf("  quiz:   %-30s %s\n", q.Title, mark(ch.QuizDone))
		}
		if p, ok := cat.PuzzleByID(ch.PuzzleID); ok {
			fmt.Printf("  puzzle: %-30s %s\n", p.Title, mark(ch.PuzzleDone))
		}
		return nil
	},
}

func mark(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}
