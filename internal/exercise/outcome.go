// Package exercise implements the per-mode round state machines: each
// round consumes user actions and emits the knowledge and SRS effects to
// apply. Entries never seen by a round are unaffected.
package exercise

import "github.com/Gurkenlor3nz/vokaba/internal/vocab"

// SRSOutcome requests a spaced-repetition update for an entry.
type SRSOutcome struct {
	Correct bool
	Quality float64 // in [0, 1]
}

// Effect is one pending mutation: a knowledge-level delta and optionally
// an SRS update for a single entry.
type Effect struct {
	Entry *vocab.Entry
	Delta float64
	SRS   *SRSOutcome
}

// Result is what a round reports after a user action. The caller applies
// the effects in order (mutate, persist, then advance), clears the per-card
// perfect flag on WrongStep, and registers the outcome once Done.
type Result struct {
	Effects []Effect

	// WrongStep marks an incorrect sub-step; it clears the card's perfect
	// flag without necessarily ending the round.
	WrongStep bool

	// Done means the card (or the whole multi-word round) is resolved and
	// the session should advance.
	Done bool

	// Correct is the round outcome counted when Done.
	Correct bool

	// Steps is the cards_done increment when Done; multi-entry rounds
	// count each entry.
	Steps int

	// NeedsRating signals that the input is locked and a self-rating is
	// required before the round can resolve (typing mode).
	NeedsRating bool
}

func srs(correct bool, quality float64) *SRSOutcome {
	return &SRSOutcome{Correct: correct, Quality: quality}
}
