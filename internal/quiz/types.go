package quiz

import (
	"time"

	"github.com/nmehta/noggin/internal/progress"
)

// Achievement is an unlocked quiz achievement. Fires at most once:
// unlock checks are guarded by presence in the list, not by counter
// monotonicity.
type Achievement struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// Achievement identifiers.
const (
	AchFirstCompletion = "first_completion"
	AchWeekStreak      = "week_streak"
	AchPerfectScore    = "perfect_score"
)

// Progress is the durable per-installation quiz aggregate. Exactly one
// record exists; it is loaded at provider construction, mutated in
// place after every submitted result, and re-serialized in full.
type Progress struct {
	Completed    int                         `json:"completed"`
	TotalPoints  int                         `json:"total_points"`
	Streak       int                         `json:"streak"`
	LastActivity time.Time                   `json:"last_activity"`
	Categories   map[string]*progress.Rolling `json:"categories"`
	Achievements []Achievement               `json:"achievements"`
}

func defaultProgress() Progress {
	return Progress{Categories: make(map[string]*progress.Rolling)}
}

// HasAchievement reports whether the achievement with id is unlocked.
func (p *Progress) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}
