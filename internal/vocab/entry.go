package vocab

import "time"

// Entry is a single flashcard pair. OwnText holds the native-language side,
// ForeignText the target-language side. ForeignText may contain optional
// parenthetical segments and separator-delimited alternative answers; those
// are interpreted by the textnorm package, not here.
type Entry struct {
	ID          string
	StackID     string
	OwnText     string
	ForeignText string
	ThirdText   string
	Info        string

	// KnowledgeLevel approximates mastery, always clamped to [0, 1].
	KnowledgeLevel float64

	// SRSStreak counts consecutive correct outcomes. Reset to 0 on any
	// incorrect outcome.
	SRSStreak int

	// SRSLastSeen is when the entry was last graded; nil if never seen.
	SRSLastSeen *time.Time

	// SRSDue is the next review date; nil if not yet scheduled. The entry
	// is due when now >= SRSDue.
	SRSDue *time.Time
}

// PairKey identifies an entry by its (own, foreign) text tuple. Used for
// deduplication and multiple-choice distractor exclusion.
type PairKey struct {
	Own     string
	Foreign string
}

// Pair returns the entry's pair identity.
func (e *Entry) Pair() PairKey {
	return PairKey{Own: e.OwnText, Foreign: e.ForeignText}
}

// IsDue reports whether the entry is scheduled and at or past its due date.
func (e *Entry) IsDue(now time.Time) bool {
	return e.SRSDue != nil && !now.Before(*e.SRSDue)
}

// ClampLevel forces v into the [0, 1] knowledge-level range.
func ClampLevel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Normalize applies the load-time defaulting rules: knowledge level is
// clamped (missing values load as 0) and a negative streak resets to 0.
// Entries missing both text sides are filtered upstream and never reach
// the engine.
func (e *Entry) Normalize() {
	e.KnowledgeLevel = ClampLevel(e.KnowledgeLevel)
	if e.SRSStreak < 0 {
		e.SRSStreak = 0
	}
}

// DedupeByPair returns entries with duplicate (own, foreign) pairs removed,
// keeping the first occurrence.
func DedupeByPair(entries []*Entry) []*Entry {
	seen := make(map[PairKey]bool, len(entries))
	var out []*Entry
	for _, e := range entries {
		k := e.Pair()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out
}
