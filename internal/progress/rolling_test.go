package progress

import (
	"math"
	"testing"

	"github.com/nmehta/noggin/internal/catalog"
)

const epsilon = 0.001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestFoldRunningAverageTime(t *testing.T) {
	r := &Rolling{}
	times := []float64{10, 20, 30}
	wantAvg := []float64{10, 15, 20}

	for i, sec := range times {
		r.Fold(100, sec, true)
		if !almostEqual(r.AvgTime, wantAvg[i]) {
			t.Errorf("after fold %d: AvgTime = %f, want %f", i+1, r.AvgTime, wantAvg[i])
		}
	}
}

func TestFoldRunningAverageScore(t *testing.T) {
	r := &Rolling{}
	scores := []float64{100, 50, 0}
	wantAvg := []float64{100, 75, 50}

	for i, s := range scores {
		r.Fold(s, 10, s > 0)
		if !almostEqual(r.AvgScore, wantAvg[i]) {
			t.Errorf("after fold %d: AvgScore = %f, want %f", i+1, r.AvgScore, wantAvg[i])
		}
	}
}

func TestFoldBestOnlyOnSuccess(t *testing.T) {
	r := &Rolling{}

	r.Fold(90, 12, false)
	if r.BestScore != 0 || r.BestTime != 0 {
		t.Errorf("failed attempt updated best: score=%f time=%f", r.BestScore, r.BestTime)
	}

	r.Fold(80, 20, true)
	if r.BestScore != 80 || r.BestTime != 20 {
		t.Errorf("best after first success: score=%f time=%f", r.BestScore, r.BestTime)
	}

	// Worse successful attempt must not regress best.
	r.Fold(70, 25, true)
	if r.BestScore != 80 || r.BestTime != 20 {
		t.Errorf("best regressed: score=%f time=%f", r.BestScore, r.BestTime)
	}

	// Better successful attempt improves both.
	r.Fold(95, 8, true)
	if r.BestScore != 95 || r.BestTime != 8 {
		t.Errorf("best did not improve: score=%f time=%f", r.BestScore, r.BestTime)
	}
}

func TestFoldSuccessRate(t *testing.T) {
	r := &Rolling{}
	if r.SuccessRate() != 0 {
		t.Errorf("empty SuccessRate = %f", r.SuccessRate())
	}

	r.Fold(100, 10, true)
	r.Fold(0, 10, false)
	r.Fold(100, 10, true)
	r.Fold(100, 10, true)
	if !almostEqual(r.SuccessRate(), 75) {
		t.Errorf("SuccessRate = %f, want 75", r.SuccessRate())
	}
}

func TestNextDifficultyEscalation(t *testing.T) {
	tests := []struct {
		name     string
		cur      catalog.Difficulty
		attempts int
		metric   float64
		want     catalog.Difficulty
	}{
		{"five perfect attempts escalate", catalog.Beginner, 5, 100, catalog.Intermediate},
		{"four attempts do not", catalog.Beginner, 4, 100, catalog.Beginner},
		{"metric at threshold does not", catalog.Beginner, 5, 80, catalog.Beginner},
		{"metric above threshold does", catalog.Intermediate, 7, 85, catalog.Advanced},
		{"saturates at expert", catalog.Expert, 20, 100, catalog.Expert},
		{"unspecified treated as beginner", catalog.DifficultyUnspecified, 0, 0, catalog.Beginner},
	}

	for _, tt := range tests {
		got := NextDifficulty(tt.cur, tt.attempts, tt.metric)
		if got != tt.want {
			t.Errorf("%s: NextDifficulty(%v, %d, %f) = %v, want %v",
				tt.name, tt.cur, tt.attempts, tt.metric, got, tt.want)
		}
	}
}
