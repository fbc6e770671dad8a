package attempt

import (
	"strconv"
	"testing"
	"time"

	"github.com/nmehta/noggin/internal/catalog"
)

func testQuiz(timeLimit int) catalog.Quiz {
	return catalog.Quiz{
		ID:         "q1",
		Title:      "Test Quiz",
		Category:   "science",
		Difficulty: catalog.Beginner,
		TimeLimit:  timeLimit,
		Questions: []catalog.Question{
			{Prompt: "1+1?", Options: []string{"1", "2"}, Answer: 1, Points: 10},
			{Prompt: "2+2?", Options: []string{"4", "5"}, Answer: 0, Points: 10},
		},
	}
}

func testRiddle(timeLimit int) catalog.Puzzle {
	return catalog.Puzzle{
		ID:         "p1",
		Title:      "Test Riddle",
		Kind:       catalog.KindRiddle,
		Difficulty: catalog.Beginner,
		TimeLimit:  timeLimit,
		Prompt:     "What repeats?",
		Hints:      []string{"h1", "h2", "h3"},
		Solution:   "Echo",
		Points:     20,
	}
}

type captureSink struct {
	results []Result
}

func (s *captureSink) Submit(r Result) { s.results = append(s.results, r) }

var t0 = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func TestQuizFlowCompletes(t *testing.T) {
	sink := &captureSink{}
	c := New(NewQuizSource(testQuiz(0)), sink, nil)

	if !c.Start(t0) {
		t.Fatal("Start failed")
	}
	if c.State() != StateActive || c.Phase() != PhaseAnswering {
		t.Fatalf("state after start: %v/%v", c.State(), c.Phase())
	}

	// First question: correct answer.
	if !c.Select("1") || !c.Submit() {
		t.Fatal("select/submit on question 1 failed")
	}
	if c.Phase() != PhaseRevealed {
		t.Fatalf("phase after submit: %v", c.Phase())
	}

	// Auto-advance fires after RevealDelay ticks.
	now := t0
	for i := 0; i < RevealDelay; i++ {
		now = now.Add(time.Second)
		c.Tick(now)
	}
	if c.Index() != 1 || c.Phase() != PhaseAnswering {
		t.Fatalf("after reveal delay: index=%d phase=%v", c.Index(), c.Phase())
	}

	// Second question: wrong answer, then completion on advance.
	if !c.Select("1") || !c.Submit() {
		t.Fatal("select/submit on question 2 failed")
	}
	for i := 0; i < RevealDelay; i++ {
		now = now.Add(time.Second)
		c.Tick(now)
	}

	if c.State() != StateCompleted {
		t.Fatalf("state after final advance: %v", c.State())
	}
	if len(sink.results) != 1 {
		t.Fatalf("sink received %d results", len(sink.results))
	}

	res := sink.results[0]
	if res.Points != 10 || res.Correct != 1 || res.Success {
		t.Errorf("result = points %d correct %d success %v", res.Points, res.Correct, res.Success)
	}
	if res.ScorePercent != 50 {
		t.Errorf("ScorePercent = %f, want 50", res.ScorePercent)
	}
	if res.TimeSpent != now.Sub(t0).Seconds() {
		t.Errorf("TimeSpent = %f, want %f", res.TimeSpent, now.Sub(t0).Seconds())
	}
	if res.AttemptID == "" {
		t.Error("empty AttemptID")
	}
}

func TestGuardedPreconditions(t *testing.T) {
	c := New(NewQuizSource(testQuiz(0)), nil, nil)

	// Operations before Start are no-ops.
	if c.Select("1") || c.Submit() || c.Skip(t0) {
		t.Error("operations in Idle should be guarded no-ops")
	}

	c.Start(t0)

	// Submit with no answer selected is a no-op.
	if c.Submit() {
		t.Error("Submit with empty answer should fail")
	}

	c.Select("1")
	c.Submit()

	// Select after reveal is a no-op.
	if c.Select("0") {
		t.Error("Select after reveal should fail")
	}
	if c.Answer() != "1" {
		t.Errorf("answer mutated after reveal: %q", c.Answer())
	}
}

func TestCountdownExpiryForceCompletesOnce(t *testing.T) {
	sink := &captureSink{}
	c := New(NewPuzzleSource(testRiddle(3)), sink, nil)
	c.Start(t0)

	// A provisional answer is recorded but never submitted.
	c.Select(" echo ")

	now := t0
	for i := 0; i < 5; i++ {
		now = now.Add(time.Second)
		c.Tick(now)
	}

	if c.State() != StateCompleted {
		t.Fatalf("state after expiry: %v", c.State())
	}
	if len(sink.results) != 1 {
		t.Fatalf("sink received %d results, want exactly 1", len(sink.results))
	}

	// The last recorded answer was judged at expiry, case-insensitively
	// and whitespace-trimmed.
	res := sink.results[0]
	if !res.Expired {
		t.Error("result not marked expired")
	}
	if !res.Success || res.Points != 20 {
		t.Errorf("provisional answer not judged: success=%v points=%d", res.Success, res.Points)
	}
	if res.RawAnswer != " echo " {
		t.Errorf("RawAnswer = %q", res.RawAnswer)
	}
}

func TestExpiryWithNoAnswer(t *testing.T) {
	sink := &captureSink{}
	c := New(NewQuizSource(testQuiz(2)), sink, nil)
	c.Start(t0)

	c.Tick(t0.Add(time.Second))
	c.Tick(t0.Add(2 * time.Second))

	if len(sink.results) != 1 {
		t.Fatalf("sink received %d results", len(sink.results))
	}
	res := sink.results[0]
	if res.Success || res.Points != 0 || res.Correct != 0 {
		t.Errorf("empty expiry result: %+v", res)
	}
	for i, o := range res.Outcomes {
		if o.Answered {
			t.Errorf("outcome %d marked answered", i)
		}
	}
}

func TestResetCancelsPendingTimers(t *testing.T) {
	sink := &captureSink{}
	c := New(NewQuizSource(testQuiz(3)), sink, nil)
	c.Start(t0)
	c.Select("1")
	c.Submit() // arms the auto-advance one-shot

	c.Reset()
	if c.State() != StateIdle {
		t.Fatalf("state after reset: %v", c.State())
	}

	// Advancing simulated time after reset must not mutate anything.
	for i := 1; i <= 10; i++ {
		c.Tick(t0.Add(time.Duration(i) * time.Second))
	}
	if c.State() != StateIdle || c.Index() != 0 || c.Points() != 0 {
		t.Errorf("post-reset tick mutated state: %v index=%d points=%d", c.State(), c.Index(), c.Points())
	}
	if len(sink.results) != 0 {
		t.Errorf("sink received %d results after reset", len(sink.results))
	}
}

func TestSkipAdvancesWithoutDelay(t *testing.T) {
	sink := &captureSink{}
	c := New(NewQuizSource(testQuiz(0)), sink, nil)
	c.Start(t0)

	if !c.Skip(t0) {
		t.Fatal("Skip failed")
	}
	if c.Index() != 1 || c.Phase() != PhaseAnswering {
		t.Fatalf("after skip: index=%d phase=%v", c.Index(), c.Phase())
	}

	// Skip on the final item triggers completion.
	if !c.Skip(t0.Add(5 * time.Second)) {
		t.Fatal("final Skip failed")
	}
	if c.State() != StateCompleted {
		t.Fatalf("state after final skip: %v", c.State())
	}

	res := sink.results[0]
	if res.Correct != 0 || res.Outcomes[0].Answered || res.Outcomes[1].Answered {
		t.Errorf("skipped outcomes recorded as answered: %+v", res.Outcomes)
	}
}

func TestAdvanceCancelsAutoAdvance(t *testing.T) {
	c := New(NewQuizSource(testQuiz(0)), nil, nil)
	c.Start(t0)
	c.Select("1")
	c.Submit()

	if !c.Advance(t0.Add(time.Second)) {
		t.Fatal("Advance failed")
	}
	if c.Index() != 1 || c.Phase() != PhaseAnswering {
		t.Fatalf("after manual advance: index=%d phase=%v", c.Index(), c.Phase())
	}

	// The cancelled auto-advance must not advance again.
	for i := 2; i <= 5; i++ {
		c.Tick(t0.Add(time.Duration(i) * time.Second))
	}
	if c.Index() != 1 {
		t.Errorf("stale auto-advance fired: index=%d", c.Index())
	}
}

func TestHintCursorMonotonicAndCapped(t *testing.T) {
	sink := &captureSink{}
	c := New(NewPuzzleSource(testRiddle(0)), sink, nil)
	c.Start(t0)

	// N+1 reveals on a 3-hint list leave the cursor at the last index.
	for i := 0; i < 4; i++ {
		c.RevealNextHint()
	}
	if c.HintCursor() != 2 {
		t.Errorf("HintCursor = %d, want 2", c.HintCursor())
	}
	if len(c.VisibleHints()) != 3 {
		t.Errorf("VisibleHints = %d, want 3", len(c.VisibleHints()))
	}

	c.Select("echo")
	c.Submit()
	c.Tick(t0.Add(time.Second))
	c.Tick(t0.Add(2 * time.Second))

	if sink.results[0].HintsUsed != 3 {
		t.Errorf("HintsUsed = %d, want 3", sink.results[0].HintsUsed)
	}
}

func TestHintsUsedZeroWhenNoneShown(t *testing.T) {
	sink := &captureSink{}
	c := New(NewPuzzleSource(testRiddle(0)), sink, nil)
	c.Start(t0)
	c.Select("Echo")
	c.Submit()
	c.Advance(t0.Add(time.Second))

	if sink.results[0].HintsUsed != 0 {
		t.Errorf("HintsUsed = %d, want 0", sink.results[0].HintsUsed)
	}
}

func TestAnswersEqual(t *testing.T) {
	tests := []struct {
		user, canonical string
		want            bool
	}{
		{" echo ", "Echo", true},
		{"ECHO", "Echo", true},
		{"echoes", "Echo", false},
		{"", "Echo", false},
	}
	for _, tt := range tests {
		if got := AnswersEqual(tt.user, tt.canonical); got != tt.want {
			t.Errorf("AnswersEqual(%q, %q) = %v, want %v", tt.user, tt.canonical, got, tt.want)
		}
	}
}

func TestMemoryPhaseSequence(t *testing.T) {
	p := catalog.Puzzle{
		ID:         "m1",
		Title:      "Recall",
		Kind:       catalog.KindMemory,
		Difficulty: catalog.Beginner,
		Prompt:     "Type it back",
		Solution:   "red blue",
		Points:     10,
		Sequence:   []string{"red", "blue"},
	}
	c := New(NewPuzzleSource(p), nil, nil)
	c.Start(t0)

	if c.Phase() != PhaseMemorize {
		t.Fatalf("phase after start: %v, want Memorize", c.Phase())
	}

	// User input is ignored until answering begins.
	if c.Select("red blue") || c.Submit() {
		t.Error("input accepted during Memorize")
	}

	now := t0
	for i := 0; i < MemorizeDelay; i++ {
		now = now.Add(time.Second)
		c.Tick(now)
	}
	if c.Phase() != PhaseBlank {
		t.Fatalf("phase after memorize delay: %v, want Blank", c.Phase())
	}
	if c.Select("red blue") {
		t.Error("input accepted during Blank")
	}

	for i := 0; i < BlankDelay; i++ {
		now = now.Add(time.Second)
		c.Tick(now)
	}
	if c.Phase() != PhaseAnswering {
		t.Fatalf("phase after blank delay: %v, want Answering", c.Phase())
	}

	if !c.Select("red blue") || !c.Submit() {
		t.Fatal("select/submit failed in Answering")
	}
}

func TestRestartAfterCompletion(t *testing.T) {
	c := New(NewPuzzleSource(testRiddle(0)), nil, nil)
	c.Start(t0)
	c.Select("Echo")
	c.Submit()
	c.Advance(t0.Add(2 * time.Second))

	if c.State() != StateCompleted {
		t.Fatalf("state: %v", c.State())
	}

	// Completed is terminal until the next Start, which resets everything.
	if !c.Start(t0.Add(time.Minute)) {
		t.Fatal("restart failed")
	}
	if c.Points() != 0 || c.HintsUsed() != 0 || c.Answer() != "" {
		t.Errorf("per-attempt state not reset: points=%d hints=%d answer=%q",
			c.Points(), c.HintsUsed(), c.Answer())
	}
	if _, ok := c.Result(); ok {
		t.Error("stale result survived restart")
	}
}

func TestBonusCarriedIntoResult(t *testing.T) {
	sink := &captureSink{}
	c := New(NewPuzzleSource(testRiddle(0)), sink, nil)
	c.SetBonus(1.75)
	c.Start(t0)
	c.Select("Echo")
	c.Submit()
	c.Advance(t0.Add(time.Second))

	if sink.results[0].Bonus != 1.75 {
		t.Errorf("Bonus = %f, want 1.75", sink.results[0].Bonus)
	}
}

func TestQuizAnswerIsIndexEquality(t *testing.T) {
	s := NewQuizSource(testQuiz(0))
	if !s.Check(0, "1") || s.Check(0, "0") {
		t.Error("index equality check broken")
	}
	// The option text itself is not an accepted answer.
	if s.Check(0, "2") && s.Check(0, strconv.Itoa(2)) {
		t.Error("out-of-range index accepted")
	}
}
