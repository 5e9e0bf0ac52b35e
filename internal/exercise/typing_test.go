package exercise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gurkenlor3nz/vokaba/internal/knowledge"
)

func TestTyping_FirstTryCorrect(t *testing.T) {
	d := knowledge.DefaultDeltas()
	ty := NewTyping(entry("dog", "Hund"), false)

	res := ty.Submit("hund", d)
	assert.True(t, res.Done)
	assert.True(t, res.Correct)
	require.Len(t, res.Effects, 1)
	assert.InDelta(t, d.TypingCorrect+d.TypingFirstTryBonus, res.Effects[0].Delta, 1e-9)
	require.NotNil(t, res.Effects[0].SRS)
	assert.True(t, res.Effects[0].SRS.Correct)
	assert.Equal(t, 1.0, res.Effects[0].SRS.Quality)
}

func TestTyping_AttemptPenaltyAndQualityDecay(t *testing.T) {
	d := knowledge.DefaultDeltas()
	ty := NewTyping(entry("dog", "Hund"), false)

	res := ty.Submit("Hand", d)
	assert.True(t, res.WrongStep)
	require.Len(t, res.Effects, 1)
	assert.InDelta(t, -d.TypingWrongFlat, res.Effects[0].Delta, 1e-9)
	assert.Nil(t, res.Effects[0].SRS, "no SRS update until the card resolves")

	res = ty.Submit("Hund", d)
	assert.True(t, res.Done)
	assert.InDelta(t, d.TypingCorrect-d.TypingAttemptPenalty, res.Effects[0].Delta, 1e-9)
	assert.InDelta(t, 0.75, res.Effects[0].SRS.Quality, 1e-9)
}

func TestTyping_CorrectDeltaFloor(t *testing.T) {
	d := knowledge.DefaultDeltas()
	ty := NewTyping(entry("dog", "Hund"), false)

	for i := 0; i < 4; i++ {
		ty.Submit("x", d)
	}
	res := ty.Submit("Hund", d)
	require.Len(t, res.Effects, 1)
	assert.InDelta(t, d.TypingMinCorrect, res.Effects[0].Delta, 1e-9)
	assert.InDelta(t, 0.1, res.Effects[0].SRS.Quality, 1e-9)
}

func TestTyping_SelfRatingFlow(t *testing.T) {
	d := knowledge.DefaultDeltas()
	ty := NewTyping(entry("dog", "Hund"), true)

	res := ty.Submit("Hund", d)
	assert.True(t, res.NeedsRating)
	assert.Empty(t, res.Effects)
	assert.True(t, ty.AwaitingRating())

	// Locked: further submissions are ignored.
	assert.Equal(t, Result{}, ty.Submit("Hund", d))

	res = ty.Rate(knowledge.RatingHard, d)
	assert.True(t, res.Done)
	require.Len(t, res.Effects, 1)
	tierDelta, quality, correct := d.Rate(knowledge.RatingHard)
	assert.InDelta(t, tierDelta*d.TypingHardFactor, res.Effects[0].Delta, 1e-9)
	assert.Equal(t, quality, res.Effects[0].SRS.Quality)
	assert.Equal(t, correct, res.Effects[0].SRS.Correct)
	assert.Equal(t, correct, res.Correct)
}

func TestTyping_SelfRatingHardTiersResolveIncorrect(t *testing.T) {
	d := knowledge.DefaultDeltas()

	for _, r := range []knowledge.Rating{knowledge.RatingVeryHard, knowledge.RatingHard} {
		ty := NewTyping(entry("dog", "Hund"), true)
		res := ty.Submit("Hund", d)
		require.True(t, res.NeedsRating)

		res = ty.Rate(r, d)
		assert.True(t, res.Done)
		assert.False(t, res.Correct, "tier %v resolves as an incorrect outcome", r)
		assert.True(t, res.WrongStep, "tier %v clears the perfect flag", r)
		require.Len(t, res.Effects, 1)
		assert.False(t, res.Effects[0].SRS.Correct)
	}

	// The easy tiers stay correct outcomes.
	ty := NewTyping(entry("dog", "Hund"), true)
	ty.Submit("Hund", d)
	res := ty.Rate(knowledge.RatingEasy, d)
	assert.True(t, res.Correct)
	assert.False(t, res.WrongStep)
}

func TestTyping_SelfRatingWrongAppliesMismatchPenalty(t *testing.T) {
	d := knowledge.DefaultDeltas()
	ty := NewTyping(entry("dog", "Hund"), true)

	// "Hand" differs from "Hund" in one position.
	res := ty.Submit("Hand", d)
	assert.True(t, res.WrongStep)
	require.Len(t, res.Effects, 1)
	assert.InDelta(t, -d.TypingMismatchPenalty, res.Effects[0].Delta, 1e-9)
	require.NotNil(t, res.Effects[0].SRS)
	assert.False(t, res.Effects[0].SRS.Correct)

	// Retry still allowed, and a correct retry locks for rating.
	res = ty.Submit("Hund", d)
	assert.True(t, res.NeedsRating)
}

func TestTyping_VariantAnswersAccepted(t *testing.T) {
	d := knowledge.DefaultDeltas()
	ty := NewTyping(entry("save", "(to) save, keep"), false)
	require.Len(t, ty.Candidates, 2)

	res := ty.Submit("tosave", d)
	assert.True(t, res.Correct)

	ty = NewTyping(entry("save", "(to) save, keep"), false)
	res = ty.Submit("keep", d)
	assert.True(t, res.Correct)
}

func TestTyping_Skip(t *testing.T) {
	d := knowledge.DefaultDeltas()
	ty := NewTyping(entry("dog", "Hund"), false)

	res := ty.Skip(d)
	assert.True(t, res.Done)
	assert.False(t, res.Correct)
	require.Len(t, res.Effects, 1)
	assert.Equal(t, 0.0, res.Effects[0].Delta)
	assert.False(t, res.Effects[0].SRS.Correct)

	assert.Equal(t, Result{}, ty.Skip(d), "skip after resolution is a no-op")
	assert.Equal(t, Result{}, ty.Submit("Hund", d))
}
