package exercise

import (
	"github.com/Gurkenlor3nz/vokaba/internal/knowledge"
	"github.com/Gurkenlor3nz/vokaba/internal/textnorm"
	"github.com/Gurkenlor3nz/vokaba/internal/vocab"
)

// Typing asks the user to type the foreign side. The separator-delimited
// pieces of the foreign field are independently acceptable answers.
type Typing struct {
	Entry      *vocab.Entry
	Candidates []string

	// requireSelfRating selects between the two resolution behaviors: a
	// correct submission either locks the input pending a self-rating, or
	// resolves immediately with attempt-scaled deltas.
	requireSelfRating bool

	attempts    int // wrong submissions so far
	awaitRating bool
	resolved    bool
}

// NewTyping builds a typing round for the entry.
func NewTyping(e *vocab.Entry, requireSelfRating bool) *Typing {
	return &Typing{
		Entry:             e,
		Candidates:        textnorm.SplitOutsideParens(e.ForeignText),
		requireSelfRating: requireSelfRating,
	}
}

// Attempts returns the number of wrong submissions so far.
func (t *Typing) Attempts() int {
	return t.attempts
}

// AwaitingRating reports whether the round is locked pending a self-rating.
func (t *Typing) AwaitingRating() bool {
	return t.awaitRating
}

// Submit grades a typed answer.
//
// With self-rating required, a correct submission locks the input and asks
// for a rating, while a wrong one applies a per-mismatched-character
// penalty and records an SRS incorrect update immediately — the user may
// retry the same card.
//
// Without self-rating, a correct submission resolves at once with the base
// delta, a first-try bonus, an attempt-scaled penalty (floored), and an
// SRS quality decaying with attempts; a wrong one applies a flat penalty
// and defers any SRS update until the card resolves.
func (t *Typing) Submit(typed string, d knowledge.Deltas) Result {
	if t.resolved || t.awaitRating {
		return Result{}
	}

	if textnorm.IsCorrectTypedAnswer(typed, t.Candidates) {
		if t.requireSelfRating {
			t.awaitRating = true
			return Result{NeedsRating: true}
		}
		delta := d.TypingCorrect - d.TypingAttemptPenalty*float64(t.attempts)
		if delta < d.TypingMinCorrect {
			delta = d.TypingMinCorrect
		}
		if t.attempts == 0 {
			delta += d.TypingFirstTryBonus
		}
		quality := 1.0 - 0.25*float64(t.attempts)
		if quality < 0.1 {
			quality = 0.1
		}
		t.resolved = true
		return Result{
			Effects: []Effect{{Entry: t.Entry, Delta: delta, SRS: srs(true, quality)}},
			Done:    true,
			Correct: true,
			Steps:   1,
		}
	}

	t.attempts++
	if t.requireSelfRating {
		mismatches := t.minMismatches(typed)
		if mismatches < 1 {
			mismatches = 1
		}
		return Result{
			Effects: []Effect{{
				Entry: t.Entry,
				Delta: -d.TypingMismatchPenalty * float64(mismatches),
				SRS:   srs(false, 0.0),
			}},
			WrongStep: true,
		}
	}
	return Result{
		Effects:   []Effect{{Entry: t.Entry, Delta: -d.TypingWrongFlat}},
		WrongStep: true,
	}
}

// Rate resolves a locked round with a self-rating tier. Typing deltas use
// the flashcard tier values scaled by the typing multipliers.
func (t *Typing) Rate(r knowledge.Rating, d knowledge.Deltas) Result {
	if !t.awaitRating {
		return Result{}
	}
	t.awaitRating = false
	t.resolved = true

	delta, quality, correct := d.Rate(r)
	delta *= d.TypingFactor(r)
	res := Result{
		Effects: []Effect{{Entry: t.Entry, Delta: delta, SRS: srs(correct, quality)}},
		Done:    true,
		Correct: correct,
		Steps:   1,
	}
	if !correct {
		res.WrongStep = true
	}
	return res
}

// Skip abandons the card and always records an SRS incorrect outcome.
func (t *Typing) Skip(_ knowledge.Deltas) Result {
	if t.resolved {
		return Result{}
	}
	t.resolved = true
	return Result{
		Effects: []Effect{{Entry: t.Entry, SRS: srs(false, 0.0)}},
		Done:    true,
		Correct: false,
		Steps:   1,
	}
}

// minMismatches compares the typed input against every candidate and
// returns the smallest mismatch count.
func (t *Typing) minMismatches(typed string) int {
	best := -1
	for _, cand := range t.Candidates {
		n := textnorm.MismatchCount(typed, cand)
		if best < 0 || n < best {
			best = n
		}
	}
	if best < 0 {
		return 0
	}
	return best
}
