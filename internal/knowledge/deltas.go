package knowledge

// Rating is a self-assessed answer quality tier, used by flashcard review
// and by typing mode when self-rating is enabled.
type Rating int

const (
	RatingVeryHard Rating = iota
	RatingHard
	RatingEasy
	RatingVeryEasy
)

// Deltas holds every knowledge-level adjustment constant in one explicit
// struct with defaults baked in at construction. The exact values are
// tunable, but the sign and relative ordering must hold: correct > 0 >
// incorrect, and first-try > repeated-try. Fields named *Penalty or
// *Bonus are positive magnitudes negated at the call site; every other
// field carries its sign and is applied as-is.
type Deltas struct {
	// Self-rating tiers (flashcard base values).
	RateVeryEasy float64
	RateEasy     float64
	RateHard     float64
	RateVeryHard float64

	// Multiple choice.
	ChoiceCorrect float64
	ChoiceWrong   float64

	// Connect pairs, applied per matched/mismatched side.
	PairMatch    float64
	PairMismatch float64

	// Letter and syllable salad.
	SaladTap          float64 // per correct letter/chunk tap
	SaladWrongTap     float64 // per incorrect tap, negative
	LetterShortBonus  float64 // completion bonus for targets of <=4 chars
	SyllableWordBonus float64 // per completed word
	SaladSkipPenalty  float64 // applied negative on skip

	// Typing.
	TypingCorrect         float64 // base for a correct submission
	TypingFirstTryBonus   float64 // added when no prior wrong attempts
	TypingAttemptPenalty  float64 // subtracted per prior wrong attempt
	TypingMinCorrect      float64 // floor for the correct-submission delta
	TypingMismatchPenalty float64 // per mismatched character on a wrong submission
	TypingWrongFlat       float64 // flat wrong-attempt penalty when self-rating is off

	// Typing self-rating multipliers applied on top of the flashcard tiers.
	TypingVeryEasyFactor float64
	TypingEasyFactor     float64
	TypingHardFactor     float64
	TypingVeryHardFactor float64
}

// DefaultDeltas returns the tuned default adjustment table.
func DefaultDeltas() Deltas {
	return Deltas{
		RateVeryEasy: 0.09,
		RateEasy:     0.04,
		RateHard:     -0.04,
		RateVeryHard: -0.08,

		ChoiceCorrect: 0.07,
		ChoiceWrong:   -0.06,

		PairMatch:    0.03,
		PairMismatch: -0.03,

		SaladTap:          0.01,
		SaladWrongTap:     -0.025,
		LetterShortBonus:  0.08,
		SyllableWordBonus: 0.05,
		SaladSkipPenalty:  0.05,

		TypingCorrect:         0.09,
		TypingFirstTryBonus:   0.03,
		TypingAttemptPenalty:  0.04,
		TypingMinCorrect:      0.02,
		TypingMismatchPenalty: 0.01,
		TypingWrongFlat:       0.06,

		TypingVeryEasyFactor: 1.2,
		TypingEasyFactor:     1.0,
		TypingHardFactor:     0.7,
		TypingVeryHardFactor: 0.4,
	}
}

// Rate maps a self-rating tier to its flashcard knowledge delta, SRS
// quality and correctness. The easy tiers count as correct outcomes.
func (d Deltas) Rate(r Rating) (delta, quality float64, correct bool) {
	switch r {
	case RatingVeryEasy:
		return d.RateVeryEasy, 1.0, true
	case RatingEasy:
		return d.RateEasy, 2.0 / 3.0, true
	case RatingHard:
		return d.RateHard, 1.0 / 3.0, false
	default:
		return d.RateVeryHard, 0.0, false
	}
}

// TypingFactor returns the typing-mode multiplier for a self-rating tier.
func (d Deltas) TypingFactor(r Rating) float64 {
	switch r {
	case RatingVeryEasy:
		return d.TypingVeryEasyFactor
	case RatingEasy:
		return d.TypingEasyFactor
	case RatingHard:
		return d.TypingHardFactor
	default:
		return d.TypingVeryHardFactor
	}
}
