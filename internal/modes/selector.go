// Package modes maps an entry's knowledge level to the pool of eligible
// exercise modes and picks one.
package modes

import "math/rand"

// Mode tags an exercise presentation style.
type Mode string

const (
	FrontBack      Mode = "front_back"
	BackFront      Mode = "back_front"
	MultipleChoice Mode = "multiple_choice"
	ConnectPairs   Mode = "connect_pairs"
	LetterSalad    Mode = "letter_salad"
	SyllableSalad  Mode = "syllable_salad"
	Typing         Mode = "typing"
)

// All lists every mode, in presentation order.
var All = []Mode{FrontBack, BackFront, MultipleChoice, ConnectPairs, LetterSalad, SyllableSalad, Typing}

// Knowledge band boundaries. The bands overlap on purpose: multiple choice
// and connect pairs stay eligible across all levels.
const (
	lowBand = 0.35
	midBand = 0.60
)

var (
	lowModes  = []Mode{FrontBack, BackFront, MultipleChoice, ConnectPairs}
	midModes  = []Mode{MultipleChoice, ConnectPairs, LetterSalad, SyllableSalad}
	highModes = []Mode{MultipleChoice, ConnectPairs, LetterSalad, SyllableSalad, Typing}
)

// bandModes returns the eligible mode set for a knowledge level.
func bandModes(level float64) []Mode {
	switch {
	case level <= lowBand:
		return lowModes
	case level <= midBand:
		return midModes
	default:
		return highModes
	}
}

// Pick selects an exercise mode for an entry at the given knowledge level.
// The level band's mode set is intersected with the globally enabled set;
// an empty intersection falls back to the full enabled set, and if nothing
// at all is enabled, to front_back. The final choice is uniform random.
func Pick(level float64, enabled map[Mode]bool, rng *rand.Rand) Mode {
	var pool []Mode
	for _, m := range bandModes(level) {
		if enabled[m] {
			pool = append(pool, m)
		}
	}
	if len(pool) == 0 {
		for _, m := range All {
			if enabled[m] {
				pool = append(pool, m)
			}
		}
	}
	if len(pool) == 0 {
		return FrontBack
	}
	return pool[rng.Intn(len(pool))]
}

// Minimum pool sizes for modes that need distractors or pair columns.
const (
	MinChoiceEntries    = 5
	MinPairUniquePairs  = 5
	MinSyllableEntries  = 3
)

// Enabled computes the globally enabled mode set from the configured
// per-mode switches and the pool dimensions. Modes whose minimum pool size
// is not met are disabled regardless of configuration; the selector itself
// never re-checks sizes.
func Enabled(configured map[Mode]bool, totalEntries, uniquePairs int) map[Mode]bool {
	out := make(map[Mode]bool, len(All))
	for _, m := range All {
		on, ok := configured[m]
		if !ok {
			on = true
		}
		switch m {
		case MultipleChoice:
			on = on && totalEntries >= MinChoiceEntries
		case ConnectPairs:
			on = on && uniquePairs >= MinPairUniquePairs
		case SyllableSalad:
			on = on && totalEntries >= MinSyllableEntries
		}
		out[m] = on
	}
	return out
}
