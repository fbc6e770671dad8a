package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmehta/noggin/internal/store"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all progress, streaks and achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			fmt.Println("This erases all progress, streaks and achievements.")
			fmt.Println("Re-run with --yes to confirm.")
			return nil
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		kv := st.KV()
		keys := []string{
			store.KeyQuizProgress,
			store.KeyPuzzleProgress,
			store.KeyDailyChallenge,
			store.KeyReminders,
		}
		for _, key := range keys {
			if err := kv.Delete(cmd.Context(), key); err != nil {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}
		fmt.Println("Progress reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Skip the confirmation")
}
