package exercise

import (
	"github.com/Gurkenlor3nz/vokaba/internal/knowledge"
	"github.com/Gurkenlor3nz/vokaba/internal/vocab"
)

// Flashcard is the classic front/back card: no automatic grading, the user
// self-rates after revealing the other side.
type Flashcard struct {
	Entry *vocab.Entry

	// Reversed shows the foreign side first (back→front).
	Reversed bool
}

// NewFlashcard creates a flashcard round for the entry.
func NewFlashcard(e *vocab.Entry, reversed bool) *Flashcard {
	return &Flashcard{Entry: e, Reversed: reversed}
}

// Prompt returns the side shown first.
func (f *Flashcard) Prompt() string {
	if f.Reversed {
		return f.Entry.ForeignText
	}
	return f.Entry.OwnText
}

// Answer returns the hidden side.
func (f *Flashcard) Answer() string {
	if f.Reversed {
		return f.Entry.OwnText
	}
	return f.Entry.ForeignText
}

// Rate resolves the card with a self-rating tier. The tier maps directly
// to a knowledge delta and an SRS quality value.
func (f *Flashcard) Rate(r knowledge.Rating, d knowledge.Deltas) Result {
	delta, quality, correct := d.Rate(r)
	res := Result{
		Effects: []Effect{{Entry: f.Entry, Delta: delta, SRS: srs(correct, quality)}},
		Done:    true,
		Correct: correct,
		Steps:   1,
	}
	if !correct {
		res.WrongStep = true
	}
	return res
}
