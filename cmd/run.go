package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nmehta/noggin/internal/app"
	"github.com/nmehta/noggin/internal/catalog"
	"github.com/nmehta/noggin/internal/config"
	"github.com/nmehta/noggin/internal/daily"
	"github.com/nmehta/noggin/internal/logger"
	"github.com/nmehta/noggin/internal/notify"
	"github.com/nmehta/noggin/internal/puzzle"
	"github.com/nmehta/noggin/internal/quiz"
	"github.com/nmehta/noggin/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg := config.Load()
	log := logger.New(cfg)
	defer log.Sync()

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
	sched := notify.NewKVScheduler(kv)

	opts := app.Options{
		Catalog: cat,
		Quiz:    quiz.NewProvider(cat, kv, log, sched, time.Now),
		Puzzle:  puzzle.NewProvider(cat, kv, log, sched, time.Now),
		Daily:   daily.NewService(cat, kv, log),
		Notify:  sched,
		Log:     log,
	}

	return app.Run(opts)
}
