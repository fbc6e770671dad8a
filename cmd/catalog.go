package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmehta/noggin/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the bundled quizzes and puzzles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		fmt.Println("Quizzes")
		for _, q := range cat.Quizzes(catalog.QuizFilter{}) {
			fmt.Printf("  %-24s %-12s %-12s %2d questions, %d pts\n",
				q.ID, q.Category, q.Difficulty.DisplayName(), len(q.Questions), q.MaxPoints())
		}

		fmt.Println("Puzzles")
		for _, p := range cat.Puzzles(catalog.PuzzleFilter{}) {
			fmt.Printf("  %-24s %-12s %-12s %d pts\n",
				p.ID, p.Kind.DisplayName(), p.Difficulty.DisplayName(), p.Points)
		}
		return nil
	},
}
