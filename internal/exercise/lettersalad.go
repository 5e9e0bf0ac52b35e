package exercise

import (
	"math/rand"
	"strings"

	"github.com/Gurkenlor3nz/vokaba/internal/knowledge"
	"github.com/Gurkenlor3nz/vokaba/internal/textnorm"
	"github.com/Gurkenlor3nz/vokaba/internal/vocab"
)

// shortWordLimit is the cleaned-target length up to which completing a
// letter salad earns the short-word bonus.
const shortWordLimit = 4

// CleanTarget prepares a string for the salad modes: parenthetical content
// is stripped and whitespace runs collapse to single spaces.
func CleanTarget(s string) string {
	return strings.Join(strings.Fields(textnorm.StripParens(s)), " ")
}

// LetterSalad scrambles the characters of the cleaned foreign text; the
// user taps them back into left-to-right order, literal spaces included.
type LetterSalad struct {
	Entry  *vocab.Entry
	Target []rune // cleaned target, tap order
	Tiles  []rune // scrambled presentation order

	used []bool
	pos  int
}

// NewLetterSalad builds a round over the entry's cleaned foreign text.
func NewLetterSalad(e *vocab.Entry, rng *rand.Rand) *LetterSalad {
	target := []rune(CleanTarget(e.ForeignText))
	tiles := make([]rune, len(target))
	copy(tiles, target)
	rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})
	return &LetterSalad{
		Entry:  e,
		Target: target,
		Tiles:  tiles,
		used:   make([]bool, len(tiles)),
	}
}

// Used reports whether the tile at i has been consumed.
func (l *LetterSalad) Used(i int) bool {
	return l.used[i]
}

// Remaining returns how many characters are still to be tapped.
func (l *LetterSalad) Remaining() int {
	return len(l.Target) - l.pos
}

// Tap consumes the tile at index i. A tile carrying the next expected
// character grants a tiny positive delta; any other tile costs a small
// negative one. Completing the full string triggers the SRS update with
// quality 1.0, plus a bonus for short words.
func (l *LetterSalad) Tap(i int, d knowledge.Deltas) Result {
	if i < 0 || i >= len(l.Tiles) || l.used[i] || l.pos >= len(l.Target) {
		return Result{}
	}

	if l.Tiles[i] != l.Target[l.pos] {
		return Result{
			Effects:   []Effect{{Entry: l.Entry, Delta: d.SaladWrongTap}},
			WrongStep: true,
		}
	}

	l.used[i] = true
	l.pos++

	res := Result{
		Effects: []Effect{{Entry: l.Entry, Delta: d.SaladTap}},
	}
	if l.pos == len(l.Target) {
		if len(l.Target) <= shortWordLimit {
			res.Effects = append(res.Effects, Effect{Entry: l.Entry, Delta: d.LetterShortBonus})
		}
		res.Effects = append(res.Effects, Effect{Entry: l.Entry, SRS: srs(true, 1.0)})
		res.Done = true
		res.Correct = true
		res.Steps = 1
	}
	return res
}

// Skip abandons the round and records a negative SRS outcome.
func (l *LetterSalad) Skip(d knowledge.Deltas) Result {
	return Result{
		Effects: []Effect{{Entry: l.Entry, Delta: -d.SaladSkipPenalty, SRS: srs(false, 0.0)}},
		Done:    true,
		Correct: false,
		Steps:   1,
	}
}
