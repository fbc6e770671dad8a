package quiz

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmehta/noggin/internal/attempt"
	"github.com/nmehta/noggin/internal/catalog"
	"github.com/nmehta/noggin/internal/progress"
	"github.com/nmehta/noggin/internal/store"
)

func mustCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)
	return c
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func quizResult(bucket string, scorePct float64, success bool, points int) attempt.Result {
	return attempt.Result{
		AttemptID:    "test",
		ActivityID:   "quiz-science-101",
		Mode:         attempt.ModeQuiz,
		Bucket:       bucket,
		Items:        4,
		Points:       points,
		MaxPoints:    40,
		ScorePercent: scorePct,
		Success:      success,
		TimeSpent:    30,
	}
}

var day1 = time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

func TestSubmitFoldsProgress(t *testing.T) {
	kv := store.NewMemKV()
	p := NewProvider(mustCatalog(t), kv, nil, nil, fixedClock(day1))

	p.Submit(quizResult("science", 75, false, 30))

	view := p.ProgressView()
	assert.Equal(t, 1, view.Completed)
	assert.Equal(t, 30, view.TotalPoints)
	assert.Equal(t, 1, view.Streak)

	r := view.Categories["science"]
	require.NotNil(t, r)
	assert.Equal(t, 1, r.Attempts)
	assert.InDelta(t, 75, r.AvgScore, 0.001)
	assert.InDelta(t, 30, r.AvgTime, 0.001)

	// The full snapshot was persisted synchronously.
	raw, ok, err := kv.Get(context.Background(), store.KeyQuizProgress)
	require.NoError(t, err)
	require.True(t, ok)
	var persisted Progress
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, 1, persisted.Completed)
}

func TestSubmitAppliesDailyBonus(t *testing.T) {
	p := NewProvider(mustCatalog(t), store.NewMemKV(), nil, nil, fixedClock(day1))

	res := quizResult("science", 100, true, 40)
	res.Bonus = 2.0
	p.Submit(res)

	assert.Equal(t, 80, p.ProgressView().TotalPoints)
}

func TestSubmitIgnoresPuzzleResults(t *testing.T) {
	p := NewProvider(mustCatalog(t), store.NewMemKV(), nil, nil, fixedClock(day1))

	res := quizResult("riddle", 100, true, 20)
	res.Mode = attempt.ModePuzzle
	p.Submit(res)

	assert.Equal(t, 0, p.ProgressView().Completed)
}

func TestSnapshotRoundTrip(t *testing.T) {
	kv := store.NewMemKV()
	p := NewProvider(mustCatalog(t), kv, nil, nil, fixedClock(day1))
	p.Submit(quizResult("science", 100, true, 40))
	p.Submit(quizResult("history", 50, false, 15))

	// A fresh provider over the same KV restores the aggregate.
	p2 := NewProvider(mustCatalog(t), kv, nil, nil, fixedClock(day1))
	view := p2.ProgressView()
	assert.Equal(t, 2, view.Completed)
	assert.Len(t, view.Categories, 2)
	assert.True(t, view.HasAchievement(AchFirstCompletion))
}

func TestCorruptSnapshotFallsBackToDefault(t *testing.T) {
	kv := store.NewMemKV()
	require.NoError(t, kv.Set(context.Background(), store.KeyQuizProgress, []byte("{broken")))

	p := NewProvider(mustCatalog(t), kv, nil, nil, fixedClock(day1))
	view := p.ProgressView()
	assert.Equal(t, 0, view.Completed)
	assert.NotNil(t, view.Categories)
}

func TestWriteFailureKeepsMemoryAuthoritative(t *testing.T) {
	kv := store.NewMemKV()
	kv.FailWrites = true

	p := NewProvider(mustCatalog(t), kv, nil, nil, fixedClock(day1))
	p.Submit(quizResult("science", 100, true, 40))

	// The write was swallowed; the in-memory aggregate still advanced.
	assert.Equal(t, 1, p.ProgressView().Completed)
	_, ok, err := kv.Get(context.Background(), store.KeyQuizProgress)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStreakPolicy(t *testing.T) {
	kv := store.NewMemKV()
	p := NewProvider(mustCatalog(t), kv, nil, nil, fixedClock(day1))

	p.Submit(quizResult("science", 100, true, 40))
	assert.Equal(t, 1, p.ProgressView().Streak)

	// Same-day resubmission does not alter the streak.
	p.now = fixedClock(day1.Add(3 * time.Hour))
	p.Submit(quizResult("science", 100, true, 40))
	assert.Equal(t, 1, p.ProgressView().Streak)

	// Next day increments.
	p.now = fixedClock(day1.AddDate(0, 0, 1))
	p.Submit(quizResult("science", 100, true, 40))
	assert.Equal(t, 2, p.ProgressView().Streak)

	// A gap of three days resets to 1.
	p.now = fixedClock(day1.AddDate(0, 0, 4))
	p.Submit(quizResult("science", 100, true, 40))
	assert.Equal(t, 1, p.ProgressView().Streak)
}

func TestDifficultyEscalatesOnFifthStrongAttempt(t *testing.T) {
	p := NewProvider(mustCatalog(t), store.NewMemKV(), nil, nil, fixedClock(day1))

	for i := 0; i < 4; i++ {
		p.Submit(quizResult("science", 100, true, 40))
	}
	assert.Equal(t, catalog.Beginner, p.ProgressView().Categories["science"].Difficulty,
		"four attempts must not escalate")

	p.Submit(quizResult("science", 100, true, 40))
	assert.Equal(t, catalog.Intermediate, p.ProgressView().Categories["science"].Difficulty,
		"fifth attempt above threshold escalates")
}

func TestAchievements(t *testing.T) {
	p := NewProvider(mustCatalog(t), store.NewMemKV(), nil, nil, fixedClock(day1))

	p.Submit(quizResult("science", 100, true, 40))
	view := p.ProgressView()
	assert.True(t, view.HasAchievement(AchFirstCompletion))
	assert.True(t, view.HasAchievement(AchPerfectScore))
	assert.False(t, view.HasAchievement(AchWeekStreak))

	// Achievements never re-fire: the list does not grow on repeats.
	p.Submit(quizResult("science", 100, true, 40))
	assert.Len(t, p.ProgressView().Achievements, 2)
}

func TestWeekStreakAchievement(t *testing.T) {
	kv := store.NewMemKV()
	seed := defaultProgress()
	seed.Completed = 10
	seed.Streak = 6
	seed.LastActivity = day1.AddDate(0, 0, -1)
	seed.Achievements = []Achievement{{ID: AchFirstCompletion, Title: "First Steps", UnlockedAt: day1.AddDate(0, 0, -10)}}
	raw, err := json.Marshal(seed)
	require.NoError(t, err)
	require.NoError(t, kv.Set(context.Background(), store.KeyQuizProgress, raw))

	p := NewProvider(mustCatalog(t), kv, nil, nil, fixedClock(day1))
	p.Submit(quizResult("science", 50, false, 10))

	view := p.ProgressView()
	assert.Equal(t, 7, view.Streak)
	assert.True(t, view.HasAchievement(AchWeekStreak))
}

func TestRecommendBoundedAndTierFiltered(t *testing.T) {
	p := NewProvider(mustCatalog(t), store.NewMemKV(), nil, nil, fixedClock(day1))

	recs := p.Recommend()
	require.NotEmpty(t, recs)
	assert.LessOrEqual(t, len(recs), RecommendLimit)
	for _, q := range recs {
		assert.Equal(t, catalog.Beginner, q.Difficulty)
	}
}

func TestRecommendedDifficultyTracksBestBucket(t *testing.T) {
	p := NewProvider(mustCatalog(t), store.NewMemKV(), nil, nil, fixedClock(day1))
	assert.Equal(t, catalog.Beginner, p.RecommendedDifficulty())

	p.prog.Categories["science"] = &progress.Rolling{Difficulty: catalog.Advanced}
	p.prog.Categories["history"] = &progress.Rolling{Difficulty: catalog.Beginner}
	assert.Equal(t, catalog.Advanced, p.RecommendedDifficulty())
}
