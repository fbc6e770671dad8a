package quiz

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

// Provider owns the quiz catalog view and the durable quiz Progress.
// It is the sink for completed quiz attempts. All dependencies are
// injected; nothing here is a singleton.
type Provider struct {
	cat   *catalog.Catalog
	kv    store.KV
	log   *zap.Logger
	sched notify.Scheduler
	now   func() time.Time
	rng   *rand.Rand

	prog Progress
}

// NewProvider loads the persisted quiz Progress snapshot (absent or
// undecodable means a fresh default, logged and not surfaced) and
// returns a ready provider.
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

// Catalog returns the quizzes matching the filter.
func (p *Provider) Catalog(f catalog.QuizFilter) []catalog.Quiz {
	return p.cat.Quizzes(f)
}

// RecommendedDifficulty is the tier Recommend filters to: the highest
// tier currently held across categories, Beginner with no history.
func (p *Provider) RecommendedDifficulty() catalog.Difficulty {
	tier := catalog.Beginner
	for _, r := range p.prog.Categories {
		if r.Difficulty > tier {
			tier = r.Difficulty
		}
	}
	return tier
}

// Recommend returns a bounded random subset of the catalog filtered to
// the recommended difficulty tier.
func (p *Provider) Recommend() []catalog.Quiz {
	pool := p.cat.Quizzes(catalog.QuizFilter{Difficulty: p.RecommendedDifficulty()})
	p.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > RecommendLimit {
		pool = pool[:RecommendLimit]
	}
	return pool
}

// Submit folds one completed attempt into Progress and persists the
// full snapshot synchronously. It satisfies attempt.Sink. Storage and
// reminder failures are logged, never surfaced: the in-memory record
// stays authoritative for the session.
func (p *Provider) Submit(res attempt.Result) {
	if res.Mode != attempt.ModeQuiz {
		return
	}
	now := p.now()

	points := res.Points
	if res.Bonus > 0 {
		points = int(math.Round(float64(points) * res.Bonus))
	}

	p.prog.Completed++
	p.prog.TotalPoints += points

	r := p.prog.Categories[res.Bucket]
	if r == nil {
		r = &progress.Rolling{Difficulty: catalog.Beginner}
		p.prog.Categories[res.Bucket] = r
	}
	r.Fold(res.ScorePercent, res.TimeSpent, res.Success)
	r.Difficulty = progress.NextDifficulty(r.Difficulty, r.Attempts, r.AvgScore)

	p.prog.Streak = progress.UpdateStreak(p.prog.Streak, p.prog.LastActivity, now)
	p.prog.LastActivity = now

	p.checkAchievements(res, now)
	p.persist()
	p.scheduleStreakReminder(now)
}

// ProgressView returns a copy of the current Progress for presentation.
func (p *Provider) ProgressView() Progress {
	cp := p.prog
	cp.Categories = make(map[string]*progress.Rolling, len(p.prog.Categories))
	for k, v := range p.prog.Categories {
		r := *v
		cp.Categories[k] = &r
	}
	cp.Achievements = append([]Achievement(nil), p.prog.Achievements...)
	return cp
}

// checkAchievements unlocks any achievement whose trigger condition the
// submitted result satisfies. Presence-check guarded, so a trigger can
// never re-fire even if counters were ever reset.
func (p *Provider) checkAchievements(res attempt.Result, now time.Time) {
	unlock := func(id, title string) {
		if p.prog.HasAchievement(id) {
			return
		}
		p.prog.Achievements = append(p.prog.Achievements, Achievement{
			ID: id, Title: title, UnlockedAt: now,
		})
		p.log.Info("achievement unlocked", zap.String("id", id))
	}

	if p.prog.Completed >= 1 {
		unlock(AchFirstCompletion, "First Steps")
	}
	if p.prog.Streak == 7 {
		unlock(AchWeekStreak, "Seven-Day Streak")
	}
	if res.ScorePercent == 100 {
		unlock(AchPerfectScore, "Perfect Round")
	}
}

func (p *Provider) load() {
	raw, ok, err := p.kv.Get(context.Background(), store.KeyQuizProgress)
	if err != nil {
		p.log.Warn("load quiz progress failed, starting fresh", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	var loaded Progress
	if err := json.Unmarshal(raw, &loaded); err != nil {
		p.log.Warn("quiz progress snapshot undecodable, starting fresh", zap.Error(err))
		return
	}
	if loaded.Categories == nil {
		loaded.Categories = make(map[string]*progress.Rolling)
	}
	p.prog = loaded
}

func (p *Provider) persist() {
	raw, err := json.Marshal(p.prog)
	if err != nil {
		p.log.Error("marshal quiz progress failed", zap.Error(err))
		return
	}
	if err := p.kv.Set(context.Background(), store.KeyQuizProgress, raw); err != nil {
		p.log.Warn("persist quiz progress failed, in-memory state stays authoritative", zap.Error(err))
	}
}

// scheduleStreakReminder arms a best-effort "keep your streak" reminder
// for the next evening.
func (p *Provider) scheduleStreakReminder(now time.Time) {
	next := now.AddDate(0, 0, 1)
	at := time.Date(next.Year(), next.Month(), next.Day(), 19, 0, 0, 0, next.Location())
	err := p.sched.Schedule(context.Background(), notify.Reminder{
		ID:      "quiz_streak",
		Message: fmt.Sprintf("Your %d-day streak is waiting. One quiz keeps it alive!", p.prog.Streak),
		At:      at,
	})
	if err != nil {
		p.log.Warn("schedule streak reminder failed", zap.Error(err))
	}
}
