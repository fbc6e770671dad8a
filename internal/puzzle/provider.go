package puzzle

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/nmehta/noggin/internal/attempt"
	"github.com/nmehta/noggin/internal/catalog"
	"github.com/nmehta/noggin/internal/notify"
	"github.com/nmehta/noggin/internal/progress"
	"github.com/nmehta/noggin/internal/store"
)

// RecommendLimit bounds the size of a Recommend result.
const RecommendLimit = 3

// HintPenalty is the point cost of each hint used on a solved puzzle.
// The award never drops below half the puzzle's base points.
const HintPenalty = 5

// Progress is the durable per-installation puzzle aggregate, parallel
// in shape to the quiz side. No achievements are tracked for puzzles.
type Progress struct {
	Solved       int                                      `json:"solved"`
	Attempted    int                                      `json:"attempted"`
	TotalPoints  int                                      `json:"total_points"`
	Streak       int                                      `json:"streak"`
	LastActivity time.Time                                `json:"last_activity"`
	Kinds        map[catalog.PuzzleKind]*progress.Rolling `json:"kinds"`
}

func defaultProgress() Progress {
	return Progress{Kinds: make(map[catalog.PuzzleKind]*progress.Rolling)}
}

// Provider owns the puzzle catalog view and the durable puzzle
// Progress. It is the sink for completed puzzle attempts.
type Provider struct {
	cat   *catalog.Catalog
	kv    store.KV
	log   *zap.Logger
	sched notify.Scheduler
	now   func() time.Time
	rng   *rand.Rand

	prog Progress
}

// NewProvider loads the persisted puzzle Progress snapshot (absent or
// undecodable means a fresh default) and returns a ready provider.
func NewProvider(cat *catalog.Catalog, kv store.KV, log *zap.Logger, sched notify.Scheduler, now func() time.Time) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	if sched == nil {
		sched = notify.Nop{}
	}
	if now == nil {
		now = time.Now
	}

	p := &Provider{
		cat:   cat,
		kv:    kv,
		log:   log,
		sched: sched,
		now:   now,
		rng:   rand.New(rand.NewSource(now().UnixNano())),
		prog:  defaultProgress(),
	}
	p.load()
	return p
}

// Catalog returns the puzzles matching the filter.
func (p *Provider) Catalog(f catalog.PuzzleFilter) []catalog.Puzzle {
	return p.cat.Puzzles(f)
}

// RecommendedDifficulty is the highest tier currently held across
// puzzle kinds, Beginner with no history.
func (p *Provider) RecommendedDifficulty() catalog.Difficulty {
	tier := catalog.Beginner
	for _, r := range p.prog.Kinds {
		if r.Difficulty > tier {
			tier = r.Difficulty
		}
	}
	return tier
}

// Recommend returns a bounded random subset of the catalog filtered to
// the recommended difficulty tier.
func (p *Provider) Recommend() []catalog.Puzzle {
	pool := p.cat.Puzzles(catalog.PuzzleFilter{Difficulty: p.RecommendedDifficulty()})
	p.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > RecommendLimit {
		pool = pool[:RecommendLimit]
	}
	return pool
}

// Award computes the points earned by a completed puzzle attempt: the
// base points minus HintPenalty per hint used, floored at half the
// base; an unsolved or expired attempt earns nothing.
func Award(res attempt.Result) int {
	if !res.Success {
		return 0
	}
	award := res.MaxPoints - HintPenalty*res.HintsUsed
	if floor := res.MaxPoints / 2; award < floor {
		award = floor
	}
	if res.Bonus > 0 {
		award = int(math.Round(float64(award) * res.Bonus))
	}
	return award
}

// Submit folds one completed attempt into Progress and persists the
// full snapshot synchronously. It satisfies attempt.Sink. A failed
// write is swallowed; in-memory state stays authoritative.
func (p *Provider) Submit(res attempt.Result) {
	if res.Mode != attempt.ModePuzzle {
		return
	}
	now := p.now()

	p.prog.Attempted++
	if res.Success {
		p.prog.Solved++
	}
	p.prog.TotalPoints += Award(res)

	kind := catalog.PuzzleKind(res.Bucket)
	r := p.prog.Kinds[kind]
	if r == nil {
		r = &progress.Rolling{Difficulty: catalog.Beginner}
		p.prog.Kinds[kind] = r
	}
	r.Fold(res.ScorePercent, res.TimeSpent, res.Success)
	r.Difficulty = progress.NextDifficulty(r.Difficulty, r.Attempts, r.SuccessRate())

	p.prog.Streak = progress.UpdateStreak(p.prog.Streak, p.prog.LastActivity, now)
	p.prog.LastActivity = now

	p.persist()
	p.scheduleStreakReminder(now)
}

// ProgressView returns a copy of the current Progress for presentation.
func (p *Provider) ProgressView() Progress {
	cp := p.prog
	cp.Kinds = make(map[catalog.PuzzleKind]*progress.Rolling, len(p.prog.Kinds))
	for k, v := range p.prog.Kinds {
		r := *v
		cp.Kinds[k] = &r
	}
	return cp
}

func (p *Provider) load() {
	raw, ok, err := p.kv.Get(context.Background(), store.KeyPuzzleProgress)
	if err != nil {
		p.log.Warn("load puzzle progress failed, starting fresh", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	var loaded Progress
	if err := json.Unmarshal(raw, &loaded); err != nil {
		p.log.Warn("puzzle progress snapshot undecodable, starting fresh", zap.Error(err))
		return
	}
	if loaded.Kinds == nil {
		loaded.Kinds = make(map[catalog.PuzzleKind]*progress.Rolling)
	}
	p.prog = loaded
}

func (p *Provider) persist() {
	raw, err := json.Marshal(p.prog)
	if err != nil {
		p.log.Error("marshal puzzle progress failed", zap.Error(err))
		return
	}
	if err := p.kv.Set(context.Background(), store.KeyPuzzleProgress, raw); err != nil {
		p.log.Warn("persist puzzle progress failed, in-memory state stays authoritative", zap.Error(err))
	}
}

func (p *Provider) scheduleStreakReminder(now time.Time) {
	next := now.AddDate(0, 0, 1)
	at := time.Date(next.Year(), next.Month(), next.Day(), 19, 0, 0, 0, next.Location())
	err := p.sched.Schedule(context.Background(), notify.Reminder{
		ID:      "puzzle_streak",
		Message: fmt.Sprintf("Day %d of your puzzle streak is up for grabs.", p.prog.Streak),
		At:      at,
	})
	if err != nil {
		p.log.Warn("schedule streak reminder failed", zap.Error(err))
	}
}
