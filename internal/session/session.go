package session

import "time"

// Counters tracks progress within a session round. Reaching the target
// triggers a summary; the counters then reset while the pool persists.
type Counters struct {
	CardsDone int
	Correct   int
	Wrong     int
	Target    int

	// perfect is the per-card flag gating daily-goal credit. Set at card
	// start, cleared permanently for the card by any wrong sub-step.
	perfect bool
}

// StartCard resets the per-card perfect flag.
func (c *Counters) StartCard() {
	c.perfect = true
}

// MarkWrongStep clears the perfect flag for the current card.
func (c *Counters) MarkWrongStep() {
	c.perfect = false
}

// Perfect reports whether the current card has had no wrong sub-step.
func (c *Counters) Perfect() bool {
	return c.perfect
}

// RegisterOutcome records a resolved card. steps is the cards_done
// increment (multi-word rounds count more than one). goalCredit is true
// when the outcome earns daily-goal steps: correct with the perfect flag
// intact. summary is true once the target is reached; the caller must then
// show the summary and call ResetRound.
func (c *Counters) RegisterOutcome(correct bool, steps int) (goalCredit, summary bool) {
	c.CardsDone += steps
	if correct {
		c.Correct++
	} else {
		c.Wrong++
	}
	goalCredit = correct && c.perfect
	summary = c.CardsDone >= c.Target
	return goalCredit, summary
}

// ResetRound clears the counters after a summary. The pool is untouched.
func (c *Counters) ResetRound() {
	c.CardsDone = 0
	c.Correct = 0
	c.Wrong = 0
}

// Summary is the payload handed to the UI when the session target is
// reached.
type Summary struct {
	CardsDone int
	Correct   int
	Wrong     int
	Target    int
}

// Session is the transient state for one learning run over a pool.
type Session struct {
	Pool      *Pool
	Counters  Counters
	StartedAt time.Time

	finished bool
}

// New starts a session over an already-built pool.
func New(pool *Pool, target int, now time.Time) *Session {
	return &Session{
		Pool:      pool,
		Counters:  Counters{Target: target},
		StartedAt: now,
	}
}

// Summary snapshots the current counters.
func (s *Session) Summary() Summary {
	return Summary{
		CardsDone: s.Counters.CardsDone,
		Correct:   s.Counters.Correct,
		Wrong:     s.Counters.Wrong,
		Target:    s.Counters.Target,
	}
}

// Finish ends the session and returns the elapsed wall-clock time to be
// accumulated into the learned-time counter. It is idempotent: a second
// call reports already=true and a zero duration, so exit handling can run
// twice without double-counting.
func (s *Session) Finish(now time.Time) (elapsed time.Duration, already bool) {
	if s.finished {
		return 0, true
	}
	s.finished = true
	return now.Sub(s.StartedAt), false
}
