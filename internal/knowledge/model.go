// Package knowledge implements the per-entry knowledge-level state machine
// and the spaced-repetition due-date computation driven by exercise
// outcomes.
package knowledge

import (
	"math"
	"time"

	"github.com/Gurkenlor3nz/vokaba/internal/vocab"
)

// srsBaseDays is the streak-indexed review interval table in days. The
// index is clamped at the top, so long streaks stay at 30 days before the
// quality factor; correctness never shrinks the interval below one day.
var srsBaseDays = [...]int{1, 2, 4, 7, 14, 30}

// Saver is the persist-one collaborator: it durably writes a single
// mutated entry. Called immediately after every mutation.
type Saver interface {
	SaveEntry(e *vocab.Entry) error
}

// Model applies knowledge-level and SRS updates. Mutations are applied
// in memory first and then persisted; when persistence fails the error is
// returned but the in-memory change is kept, so the caller can retry or
// warn without discarding the learner's progress.
type Model struct {
	Deltas Deltas
	Saver  Saver
	Now    func() time.Time
}

// NewModel creates a model with the default delta table.
func NewModel(saver Saver) *Model {
	return &Model{Deltas: DefaultDeltas(), Saver: saver, Now: time.Now}
}

// AdjustLevel clamps entry.KnowledgeLevel + delta into [0, 1], writes it
// back and persists the entry.
func (m *Model) AdjustLevel(e *vocab.Entry, delta float64) error {
	e.KnowledgeLevel = vocab.ClampLevel(e.KnowledgeLevel + delta)
	return m.save(e)
}

// UpdateSRS advances the spaced-repetition state after a graded outcome.
// A correct outcome extends the streak; any incorrect outcome resets it to
// zero. The next due date is the streak-indexed base interval scaled by
// quality in [0.75x, 1.25x], at least one day out, anchored at local
// midnight.
func (m *Model) UpdateSRS(e *vocab.Entry, wasCorrect bool, quality float64) error {
	if wasCorrect {
		e.SRSStreak++
	} else {
		e.SRSStreak = 0
	}

	idx := e.SRSStreak
	if idx > len(srsBaseDays)-1 {
		idx = len(srsBaseDays) - 1
	}
	base := srsBaseDays[idx]

	factor := 0.75 + 0.5*clampQuality(quality)
	days := int(math.Floor(float64(base) * factor))
	if days < 1 {
		days = 1
	}

	now := m.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	due := midnight.AddDate(0, 0, days)

	e.SRSDue = &due
	e.SRSLastSeen = &now
	return m.save(e)
}

func (m *Model) save(e *vocab.Entry) error {
	if m.Saver == nil {
		return nil
	}
	return m.Saver.SaveEntry(e)
}

func clampQuality(q float64) float64 {
	if q < 0 {
		return 0
	}
	if q > 1 {
		return 1
	}
	return q
}
