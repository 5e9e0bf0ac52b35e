package session

import (
	"math/rand"
	"time"

	"github.com/Gurkenlor3nz/vokaba/internal/vocab"
)

// MinWeight is the selection-weight floor. It keeps fully mastered entries
// from being starved out of the rotation entirely.
const MinWeight = 0.05

// weight biases selection toward entries with low knowledge.
func weight(e *vocab.Entry) float64 {
	w := 1.0 - vocab.ClampLevel(e.KnowledgeLevel)
	if w < MinWeight {
		w = MinWeight
	}
	return w
}

// PickNext selects the index of the next card. Due entries are prioritized
// as a group: when any entry is at or past its due date, only due entries
// are candidates. Within the candidate set selection is weighted random,
// not FIFO — entries needing more practice surface more often even among
// equally due items. The current index is excluded only when more than one
// candidate remains.
func PickNext(entries []*vocab.Entry, current int, avoidCurrent bool, now time.Time, rng *rand.Rand) int {
	if len(entries) == 0 {
		return -1
	}

	var candidates []int
	for i, e := range entries {
		if e.IsDue(now) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		candidates = make([]int, len(entries))
		for i := range entries {
			candidates[i] = i
		}
	}

	if avoidCurrent && len(candidates) > 1 {
		for i, idx := range candidates {
			if idx == current {
				candidates = append(candidates[:i], candidates[i+1:]...)
				break
			}
		}
	}

	total := 0.0
	for _, idx := range candidates {
		total += weight(entries[idx])
	}
	if total <= 0 {
		return candidates[rng.Intn(len(candidates))]
	}

	draw := rng.Float64() * total
	acc := 0.0
	for _, idx := range candidates {
		acc += weight(entries[idx])
		if draw < acc {
			return idx
		}
	}
	return candidates[len(candidates)-1]
}
