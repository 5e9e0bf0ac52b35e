package knowledge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gurkenlor3nz/vokaba/internal/vocab"
)

type recordingSaver struct {
	saved []*vocab.Entry
	err   error
}

func (r *recordingSaver) SaveEntry(e *vocab.Entry) error {
	r.saved = append(r.saved, e)
	return r.err
}

func fixedModel(saver Saver, now time.Time) *Model {
	m := NewModel(saver)
	m.Now = func() time.Time { return now }
	return m
}

func TestAdjustLevel_ClampsToUnitRange(t *testing.T) {
	m := NewModel(nil)
	e := &vocab.Entry{KnowledgeLevel: 0.9}

	require.NoError(t, m.AdjustLevel(e, 0.5))
	assert.Equal(t, 1.0, e.KnowledgeLevel)

	require.NoError(t, m.AdjustLevel(e, -3.0))
	assert.Equal(t, 0.0, e.KnowledgeLevel)

	// Repeated adjustments never escape [0, 1].
	for i := 0; i < 100; i++ {
		delta := 0.3
		if i%2 == 0 {
			delta = -0.45
		}
		require.NoError(t, m.AdjustLevel(e, delta))
		assert.GreaterOrEqual(t, e.KnowledgeLevel, 0.0)
		assert.LessOrEqual(t, e.KnowledgeLevel, 1.0)
	}
}

func TestAdjustLevel_PersistsImmediately(t *testing.T) {
	saver := &recordingSaver{}
	m := NewModel(saver)
	e := &vocab.Entry{}

	require.NoError(t, m.AdjustLevel(e, 0.05))
	require.Len(t, saver.saved, 1)
	assert.Same(t, e, saver.saved[0])
}

func TestAdjustLevel_KeepsMutationOnSaveFailure(t *testing.T) {
	saver := &recordingSaver{err: assert.AnError}
	m := NewModel(saver)
	e := &vocab.Entry{KnowledgeLevel: 0.5}

	err := m.AdjustLevel(e, 0.1)
	assert.Error(t, err)
	assert.InDelta(t, 0.6, e.KnowledgeLevel, 1e-9)
}

func TestUpdateSRS_IncorrectResetsStreak(t *testing.T) {
	m := fixedModel(nil, time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC))
	e := &vocab.Entry{SRSStreak: 4}

	require.NoError(t, m.UpdateSRS(e, false, 0))
	assert.Equal(t, 0, e.SRSStreak)
}

func TestUpdateSRS_DueStrictlyInFuture(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	for streak := 0; streak < 10; streak++ {
		for _, correct := range []bool{true, false} {
			for _, q := range []float64{0, 0.5, 1} {
				m := fixedModel(nil, now)
				e := &vocab.Entry{SRSStreak: streak}
				require.NoError(t, m.UpdateSRS(e, correct, q))
				require.NotNil(t, e.SRSDue)
				require.NotNil(t, e.SRSLastSeen)
				assert.True(t, e.SRSDue.After(*e.SRSLastSeen),
					"streak=%d correct=%v q=%v", streak, correct, q)
			}
		}
	}
}

func TestUpdateSRS_IntervalTable(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	midnight := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		streak     int // before the update
		correct    bool
		quality    float64
		wantDays   int
		wantStreak int
	}{
		{"first correct, full quality", 0, true, 1.0, 2, 1}, // base 2 * 1.25 = 2.5 -> 2
		{"incorrect resets to one day", 3, false, 0.0, 1, 0},
		{"long streak caps at table end", 10, true, 1.0, 37, 11}, // 30 * 1.25
		{"low quality shrinks interval", 2, true, 0.0, 5, 3},     // base 7 * 0.75 = 5.25 -> 5
		{"mid quality keeps base", 1, true, 0.5, 4, 2},           // base 4 * 1.0
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := fixedModel(nil, now)
			e := &vocab.Entry{SRSStreak: tt.streak}
			require.NoError(t, m.UpdateSRS(e, tt.correct, tt.quality))
			assert.Equal(t, tt.wantStreak, e.SRSStreak)
			want := midnight.AddDate(0, 0, tt.wantDays)
			assert.Equal(t, want, *e.SRSDue)
			assert.Equal(t, now, *e.SRSLastSeen)
		})
	}
}

func TestUpdateSRS_VeryEasyScenario(t *testing.T) {
	// Entry at 0.9 answered "very easy": level approaches 1.0 via clamp,
	// streak increments, due moves a full quality-scaled interval out.
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	m := fixedModel(nil, now)
	e := &vocab.Entry{KnowledgeLevel: 0.9, SRSStreak: 1}

	delta, quality, correct := m.Deltas.Rate(RatingVeryEasy)
	require.NoError(t, m.AdjustLevel(e, delta))
	require.NoError(t, m.UpdateSRS(e, correct, quality))

	assert.InDelta(t, 0.99, e.KnowledgeLevel, 1e-9)
	assert.Equal(t, 2, e.SRSStreak)
	// base 4 days at streak 2, factor 1.25 -> 5 days from midnight.
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, *e.SRSDue)
}

func TestDeltas_SignOrdering(t *testing.T) {
	d := DefaultDeltas()

	assert.Greater(t, d.RateVeryEasy, d.RateEasy)
	assert.Greater(t, d.RateEasy, 0.0)
	assert.Less(t, d.RateHard, 0.0)
	assert.Greater(t, d.RateHard, d.RateVeryHard)

	assert.Greater(t, d.ChoiceCorrect, 0.0)
	assert.Less(t, d.ChoiceWrong, 0.0)

	assert.Greater(t, d.PairMatch, 0.0)
	assert.Less(t, d.PairMismatch, 0.0)

	// Salad taps carry their sign; the skip penalty and completion
	// bonuses are positive magnitudes.
	assert.Greater(t, d.SaladTap, 0.0)
	assert.Less(t, d.SaladWrongTap, 0.0)
	assert.Greater(t, d.SaladSkipPenalty, 0.0)
	assert.Greater(t, d.LetterShortBonus, 0.0)
	assert.Greater(t, d.SyllableWordBonus, 0.0)

	// First-try beats repeated-try.
	assert.Greater(t, d.TypingCorrect+d.TypingFirstTryBonus, d.TypingCorrect-d.TypingAttemptPenalty)
	assert.Greater(t, d.TypingMinCorrect, 0.0)
}
