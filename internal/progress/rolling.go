package progress

import "github.com/nmehta/noggin/internal/catalog"

// EscalationMinAttempts is the attempt count required in a bucket before
// the difficulty tier may advance.
const EscalationMinAttempts = 5

// EscalationThreshold is the rolling metric (0-100) above which the tier
// advances one step.
const EscalationThreshold = 80.0

// Rolling holds the per-bucket (quiz category or puzzle kind) statistics
// folded from every attempt submitted against that bucket.
type Rolling struct {
	Attempts  int     `json:"attempts"`
	Successes int     `json:"successes"`
	AvgScore  float64 `json:"avg_score"` // percentage, 0-100
	AvgTime   float64 `json:"avg_time"`  // seconds
	// BestScore is the highest score achieved on a successful attempt;
	// 0 means unset.
	BestScore float64 `json:"best_score"`
	// BestTime is the lowest time on a successful attempt; 0 means unset.
	BestTime float64 `json:"best_time"`
	// Difficulty is the current tier recommended for this bucket.
	Difficulty catalog.Difficulty `json:"difficulty"`
}

// SuccessRate returns the fraction of successful attempts as 0-100.
func (r *Rolling) SuccessRate() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Successes) / float64(r.Attempts) * 100
}

// Fold merges one attempt into the rolling record: incremental mean for
// score and time, best score/time only on successful improving attempts.
func (r *Rolling) Fold(scorePct, seconds float64, success bool) {
	r.Attempts++
	if success {
		r.Successes++
	}

	n := float64(r.Attempts)
	r.AvgScore = (r.AvgScore*(n-1) + scorePct) / n
	r.AvgTime = (r.AvgTime*(n-1) + seconds) / n

	if success {
		if scorePct > r.BestScore {
			r.BestScore = scorePct
		}
		if r.BestTime == 0 || seconds < r.BestTime {
			r.BestTime = seconds
		}
	}
}

// NextDifficulty applies the escalation rule: with at least
// EscalationMinAttempts attempts and a rolling metric above the
// threshold, the tier advances one step, saturating at Expert.
func NextDifficulty(cur catalog.Difficulty, attempts int, metric float64) catalog.Difficulty {
	if cur == catalog.DifficultyUnspecified {
		cur = catalog.Beginner
	}
	if attempts < EscalationMinAttempts || metric <= EscalationThreshold {
		return cur
	}
	return cur.Next()
}
