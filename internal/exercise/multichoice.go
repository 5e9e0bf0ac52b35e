package exercise

import (
	"math/rand"

	"github.com/Gurkenlor3nz/vokaba/internal/knowledge"
	"github.com/Gurkenlor3nz/vokaba/internal/vocab"
)

// maxDistractors is the number of wrong choices drawn per round.
const maxDistractors = 4

// MultipleChoice shows the entry's own side and up to five foreign-side
// choices; exactly one is the correct entry.
type MultipleChoice struct {
	Entry   *vocab.Entry
	Choices []*vocab.Entry
}

// NewMultipleChoice builds a round: up to four distractors distinct from
// the correct entry by pair identity, deduplicated by pair, shuffled with
// the correct entry mixed in.
func NewMultipleChoice(e *vocab.Entry, pool []*vocab.Entry, rng *rand.Rand) *MultipleChoice {
	shuffled := make([]*vocab.Entry, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	seen := map[vocab.PairKey]bool{e.Pair(): true}
	choices := []*vocab.Entry{e}
	for _, cand := range shuffled {
		if len(choices) > maxDistractors {
			break
		}
		k := cand.Pair()
		if seen[k] {
			continue
		}
		seen[k] = true
		choices = append(choices, cand)
	}
	rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	return &MultipleChoice{Entry: e, Choices: choices}
}

// Answer resolves the round with the chosen option index. Correctness is
// pair-identity equality with the round's entry; only that entry is
// affected either way.
func (m *MultipleChoice) Answer(idx int, d knowledge.Deltas) Result {
	if idx < 0 || idx >= len(m.Choices) {
		return Result{}
	}
	if m.Choices[idx].Pair() == m.Entry.Pair() {
		return Result{
			Effects: []Effect{{Entry: m.Entry, Delta: d.ChoiceCorrect, SRS: srs(true, 1.0)}},
			Done:    true,
			Correct: true,
			Steps:   1,
		}
	}
	return Result{
		Effects:   []Effect{{Entry: m.Entry, Delta: d.ChoiceWrong, SRS: srs(false, 0.0)}},
		WrongStep: true,
		Done:      true,
		Correct:   false,
		Steps:     1,
	}
}
