package attempt

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the coarse controller state.
type State int

const (
	StateIdle State = iota
	StateActive
	StateCompleted
)

// Phase is the per-item sub-state while Active.
type Phase int

const (
	PhaseMemorize Phase = iota // memory puzzles: target sequence shown
	PhaseBlank                 // memory puzzles: sequence hidden, input still ignored
	PhaseAnswering
	PhaseRevealed
)

// Timing constants, in ticks. One tick is one second of wall time; the
// TUI maps a 1-second tea.Tick onto Tick, tests call Tick directly.
const (
	RevealDelay   = 2
	MemorizeDelay = 3
	BlankDelay    = 1
)

// oneShot is a cancellable delayed continuation. It fires from Tick when
// its countdown reaches zero, and only if its generation still matches
// the controller's: a stale continuation detects it has been superseded
// and becomes a no-op.
type oneShot struct {
	gen   uint64
	ticks int
	fire  func(now time.Time)
}

// Controller owns the lifecycle of one attempt: current item, remaining
// time, user input, hint and reveal state, and the completion result.
// Exactly one attempt is active per controller; all mutation happens on
// a single control path (the UI update loop or the test goroutine).
type Controller struct {
	src  Source
	sink Sink
	log  *zap.Logger

	state State
	phase Phase
	gen   uint64

	index      int
	answer     string
	outcomes   []Outcome
	points     int
	correct    int
	hintCursor int // -1 = no hint shown

	timed     bool
	remaining int
	startedAt time.Time
	expired   bool
	bonus     float64

	pending *oneShot
	result  *Result
}

// New creates an idle controller over the given source. The sink
// receives the Result on completion; it may be nil.
func New(src Source, sink Sink, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{src: src, sink: sink, log: log, hintCursor: -1}
}

// Meta exposes the backing activity's metadata.
func (c *Controller) Meta() Meta { return c.src.Meta() }

// State returns the coarse controller state.
func (c *Controller) State() State { return c.state }

// Phase returns the per-item sub-state. Meaningful only while Active.
func (c *Controller) Phase() Phase { return c.phase }

// Index returns the current item index.
func (c *Controller) Index() int { return c.index }

// Len returns the number of items in the attempt.
func (c *Controller) Len() int { return c.src.Len() }

// Current returns the current item.
func (c *Controller) Current() Item { return c.src.Item(c.index) }

// Answer returns the provisional answer for the current item.
func (c *Controller) Answer() string { return c.answer }

// Points returns the score accumulated so far.
func (c *Controller) Points() int { return c.points }

// Timed reports whether a countdown is armed.
func (c *Controller) Timed() bool { return c.timed }

// Remaining returns the seconds left on the countdown.
func (c *Controller) Remaining() int { return c.remaining }

// Expired reports whether the attempt was force-completed by the timer.
func (c *Controller) Expired() bool { return c.expired }

// Outcome returns the recorded outcome for item i.
func (c *Controller) Outcome(i int) Outcome {
	if i < 0 || i >= len(c.outcomes) {
		return Outcome{}
	}
	return c.outcomes[i]
}

// Result returns the completed attempt's result, if any.
func (c *Controller) Result() (Result, bool) {
	if c.result == nil {
		return Result{}, false
	}
	return *c.result, true
}

// SetBonus attaches a daily challenge multiplier to the next result.
func (c *Controller) SetBonus(m float64) { c.bonus = m }

// Start transitions Idle or Completed to Active, resetting every
// per-attempt field. A declared time limit arms the countdown. Memory
// puzzles enter the timed Memorize phase; everything else starts
// Answering immediately.
func (c *Controller) Start(now time.Time) bool {
	if c.state == StateActive {
		return false
	}

	c.gen++
	c.state = StateActive
	c.phase = PhaseAnswering
	c.index = 0
	c.answer = ""
	c.outcomes = make([]Outcome, c.src.Len())
	c.points = 0
	c.correct = 0
	c.hintCursor = -1
	c.expired = false
	c.result = nil
	c.pending = nil
	c.startedAt = now

	meta := c.src.Meta()
	c.timed = meta.TimeLimit > 0
	c.remaining = meta.TimeLimit

	if len(meta.Sequence) > 0 {
		c.phase = PhaseMemorize
		c.schedule(MemorizeDelay, func(time.Time) {
			c.phase = PhaseBlank
			c.schedule(BlankDelay, func(time.Time) {
				c.phase = PhaseAnswering
			})
		})
	}
	return true
}

// Select records a provisional answer. Valid only while Answering; no
// side effects beyond observable state.
func (c *Controller) Select(answer string) bool {
	if c.state != StateActive || c.phase != PhaseAnswering {
		return false
	}
	c.answer = answer
	return true
}

// Submit judges the current item against the provisional answer. Valid
// only while Answering with a non-empty answer. On success the item's
// points accumulate. The controller moves to Revealed and schedules an
// automatic advance; on the final item the advance completes the
// attempt instead.
func (c *Controller) Submit() bool {
	if c.state != StateActive || c.phase != PhaseAnswering {
		return false
	}
	if strings.TrimSpace(c.answer) == "" {
		return false
	}

	c.judgeCurrent()
	c.phase = PhaseRevealed
	c.schedule(RevealDelay, c.advanceNow)
	return true
}

// Skip records the no-answer sentinel for the current item and advances
// immediately, without a reveal delay.
func (c *Controller) Skip(now time.Time) bool {
	if c.state != StateActive || c.phase != PhaseAnswering {
		return false
	}
	c.outcomes[c.index] = Outcome{}
	c.advanceNow(now)
	return true
}

// Advance cancels the pending auto-advance and moves on immediately.
// Valid only while Revealed.
func (c *Controller) Advance(now time.Time) bool {
	if c.state != StateActive || c.phase != PhaseRevealed {
		return false
	}
	c.pending = nil
	c.advanceNow(now)
	return true
}

// RevealNextHint advances the hint cursor by one, capped at the end of
// the hint list. Valid only while Answering. Hints are non-restartable:
// the cursor never moves backwards.
func (c *Controller) RevealNextHint() bool {
	hints := c.src.Meta().Hints
	if c.state != StateActive || c.phase != PhaseAnswering || len(hints) == 0 {
		return false
	}
	if c.hintCursor < len(hints)-1 {
		c.hintCursor++
	}
	return true
}

// HintCursor returns the highest hint index revealed, -1 if none.
func (c *Controller) HintCursor() int { return c.hintCursor }

// HintsUsed returns the count of hints shown so far.
func (c *Controller) HintsUsed() int { return c.hintCursor + 1 }

// VisibleHints returns the prefix of the hint list revealed so far.
func (c *Controller) VisibleHints() []string {
	hints := c.src.Meta().Hints
	if c.hintCursor < 0 {
		return nil
	}
	return hints[:c.hintCursor+1]
}

// Tick advances simulated time by one unit. It drives the pending
// one-shot continuation and, when a countdown is armed, decrements the
// remaining time, force-completing the attempt exactly once at zero
// using whatever answer state exists at that instant. Ticks outside the
// Active state are no-ops.
func (c *Controller) Tick(now time.Time) {
	if c.state != StateActive {
		return
	}

	if p := c.pending; p != nil {
		p.ticks--
		if p.ticks <= 0 {
			c.pending = nil
			if p.gen == c.gen {
				p.fire(now)
			}
		}
	}

	if c.state != StateActive || !c.timed {
		return
	}
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.expire(now)
	}
}

// Reset forcibly returns to Idle from any state, cancelling the
// countdown and any pending continuation. Bumping the generation token
// makes continuations scheduled before the reset observe they have been
// superseded.
func (c *Controller) Reset() {
	c.gen++
	c.pending = nil
	c.timed = false
	c.remaining = 0
	c.state = StateIdle
	c.phase = PhaseAnswering
	c.index = 0
	c.answer = ""
	c.outcomes = nil
	c.points = 0
	c.correct = 0
	c.hintCursor = -1
	c.expired = false
	c.bonus = 0
	c.result = nil
}

func (c *Controller) schedule(ticks int, fire func(now time.Time)) {
	c.pending = &oneShot{gen: c.gen, ticks: ticks, fire: fire}
}

// judgeCurrent records the outcome of the current item from the
// provisional answer, accumulating points on success.
func (c *Controller) judgeCurrent() {
	correct := c.src.Check(c.index, c.answer)
	c.outcomes[c.index] = Outcome{Answered: true, Correct: correct, Answer: c.answer}
	if correct {
		c.points += c.src.Points(c.index)
		c.correct++
	}
}

// advanceNow moves to the next item, or completes the attempt when the
// current item was the last.
func (c *Controller) advanceNow(now time.Time) {
	if c.index >= c.src.Len()-1 {
		c.complete(now)
		return
	}
	c.index++
	c.answer = ""
	c.phase = PhaseAnswering
}

// expire force-completes a timed-out attempt. A non-empty provisional
// answer on the current item is judged; everything unanswered counts
// incorrect.
func (c *Controller) expire(now time.Time) {
	c.expired = true
	if c.phase == PhaseAnswering && strings.TrimSpace(c.answer) != "" {
		c.judgeCurrent()
	}
	c.complete(now)
}

// complete stops the countdown, builds the immutable Result, forwards
// it to the sink, and transitions to Completed. Terminal until the next
// Start.
func (c *Controller) complete(now time.Time) {
	c.gen++
	c.pending = nil
	c.timed = false

	meta := c.src.Meta()
	maxPoints := 0
	for i := 0; i < c.src.Len(); i++ {
		maxPoints += c.src.Points(i)
	}

	scorePct := 0.0
	if maxPoints > 0 {
		scorePct = float64(c.points) / float64(maxPoints) * 100
	}

	rawAnswer := ""
	if c.src.Len() == 1 {
		rawAnswer = c.outcomes[0].Answer
	}

	res := Result{
		AttemptID:    uuid.NewString(),
		ActivityID:   meta.ID,
		Mode:         meta.Mode,
		Bucket:       meta.Bucket,
		Difficulty:   meta.Difficulty,
		Items:        c.src.Len(),
		Correct:      c.correct,
		Outcomes:     c.outcomes,
		Points:       c.points,
		MaxPoints:    maxPoints,
		ScorePercent: scorePct,
		Success:      c.correct == c.src.Len(),
		TimeSpent:    now.Sub(c.startedAt).Seconds(),
		HintsUsed:    c.HintsUsed(),
		RawAnswer:    rawAnswer,
		CompletedAt:  now,
		Expired:      c.expired,
		Bonus:        c.bonus,
	}

	c.result = &res
	c.state = StateCompleted

	if c.sink != nil {
		c.sink.Submit(res)
	}
	c.log.Info("attempt completed",
		zap.String("activity", meta.ID),
		zap.String("mode", string(meta.Mode)),
		zap.Int("points", res.Points),
		zap.Bool("success", res.Success),
		zap.Bool("expired", res.Expired),
	)
}
