package attempt

import (
	"time"

	"github.com/nmehta/noggin/internal/catalog"
)

// Outcome records what happened on one item of an attempt.
type Outcome struct {
	Answered bool // false = skipped or never reached
	Correct  bool
	Answer   string
}

// Result is the immutable record of one completed or time-expired
// attempt. Created exactly once per attempt, consumed by a provider to
// update aggregate progress, then discarded.
type Result struct {
	AttemptID  string
	ActivityID string
	Mode       Mode
	Bucket     string
	Difficulty catalog.Difficulty

	Items    int
	Correct  int
	Outcomes []Outcome

	Points    int // earned, before any daily bonus
	MaxPoints int
	// ScorePercent is earned points over available points, 0-100.
	ScorePercent float64
	// Success means every item was answered correctly.
	Success bool

	TimeSpent   float64 // seconds
	HintsUsed   int
	RawAnswer   string // single-item attempts: the raw user answer
	CompletedAt time.Time
	Expired     bool
	// Bonus is the daily challenge multiplier, 0 when the attempt was
	// not part of a daily challenge.
	Bonus float64
}
