package exercise

import (
	"errors"
	"math/rand"

	"github.com/Gurkenlor3nz/vokaba/internal/knowledge"
	"github.com/Gurkenlor3nz/vokaba/internal/vocab"
)

// PairCount is the fixed number of entries in a connect-pairs round.
const PairCount = 5

// ErrNotEnoughPairs means the pool holds fewer than PairCount unique
// (own, foreign) pairs.
var ErrNotEnoughPairs = errors.New("exercise: not enough unique pairs")

// ConnectPairs presents two shuffled columns — prompts (own side) and
// answers (foreign side) of five unique entries — to be matched up.
type ConnectPairs struct {
	Entries []*vocab.Entry

	// Prompts and Answers are independent permutations: the value at each
	// column position is an index into Entries.
	Prompts []int
	Answers []int

	matchedEntry []bool
	matched      int
	hadWrong     bool

	// locked suppresses matching during the feedback flash, so a rapid
	// double tap cannot submit the same match twice.
	locked bool
}

// NewConnectPairs samples exactly five unique entries from the pool and
// lays out the two columns.
func NewConnectPairs(pool []*vocab.Entry, rng *rand.Rand) (*ConnectPairs, error) {
	unique := vocab.DedupeByPair(pool)
	if len(unique) < PairCount {
		return nil, ErrNotEnoughPairs
	}
	rng.Shuffle(len(unique), func(i, j int) {
		unique[i], unique[j] = unique[j], unique[i]
	})
	entries := unique[:PairCount]

	c := &ConnectPairs{
		Entries:      entries,
		Prompts:      rng.Perm(PairCount),
		Answers:      rng.Perm(PairCount),
		matchedEntry: make([]bool, PairCount),
	}
	return c, nil
}

// Matched reports whether the entry behind a prompt position is already
// matched.
func (c *ConnectPairs) Matched(promptPos int) bool {
	return c.matchedEntry[c.Prompts[promptPos]]
}

// Locked reports whether the round is inside the feedback window.
func (c *ConnectPairs) Locked() bool {
	return c.locked
}

// Unlock ends the feedback window. The presentation layer calls this when
// its flash completes; a driver without animation may unlock immediately.
func (c *ConnectPairs) Unlock() {
	c.locked = false
}

// Match attempts to connect the prompt at promptPos with the answer at
// answerPos. A correct match rewards the matched entry on both sides; a
// wrong match penalizes both involved entries and the round continues.
// Completing all five matches finalizes the round with SRS quality 1.0 for
// every entry. Calls during the feedback lock are ignored.
func (c *ConnectPairs) Match(promptPos, answerPos int, d knowledge.Deltas) Result {
	if c.locked ||
		promptPos < 0 || promptPos >= PairCount ||
		answerPos < 0 || answerPos >= PairCount {
		return Result{}
	}

	pi := c.Prompts[promptPos]
	ai := c.Answers[answerPos]
	if c.matchedEntry[pi] || c.matchedEntry[ai] {
		return Result{}
	}
	c.locked = true

	if pi != ai {
		c.hadWrong = true
		return Result{
			Effects: []Effect{
				{Entry: c.Entries[pi], Delta: d.PairMismatch},
				{Entry: c.Entries[ai], Delta: d.PairMismatch},
			},
			WrongStep: true,
		}
	}

	c.matchedEntry[pi] = true
	c.matched++

	res := Result{
		Effects: []Effect{{Entry: c.Entries[pi], Delta: d.PairMatch}},
	}
	if c.matched == PairCount {
		for _, e := range c.Entries {
			res.Effects = append(res.Effects, Effect{Entry: e, SRS: srs(true, 1.0)})
		}
		res.Done = true
		res.Correct = !c.hadWrong
		res.Steps = PairCount
	}
	return res
}
