package exercise

import (
	"math/rand"

	"github.com/Gurkenlor3nz/vokaba/internal/knowledge"
	"github.com/Gurkenlor3nz/vokaba/internal/vocab"
)

// MaxSaladWords is the number of words in a syllable salad round: the
// current entry plus up to two extras.
const MaxSaladWords = 3

// Chunk splits a cleaned target into 3-4 character pieces. Very short
// targets are special-cased: empty yields nothing, a single character is
// one chunk, and lengths 2-5 are halved. Longer targets take 3-character
// chunks with a 2-4 character tail, so a single dangling character never
// occurs.
func Chunk(s string) []string {
	rs := []rune(s)
	n := len(rs)
	switch {
	case n == 0:
		return nil
	case n == 1:
		return []string{s}
	case n <= 5:
		half := (n + 1) / 2
		return []string{string(rs[:half]), string(rs[half:])}
	}
	var chunks []string
	for len(rs) > 4 {
		chunks = append(chunks, string(rs[:3]))
		rs = rs[3:]
	}
	return append(chunks, string(rs))
}

// saladWord is one target word's progress within the round.
type saladWord struct {
	entry  *vocab.Entry
	chunks []string
	next   int
	done   bool
}

// tile is one tappable chunk in the shared pool.
type tile struct {
	word int // index into words
	idx  int // chunk position within the word
	used bool
}

// SyllableSalad mixes the chunks of up to three words into one shuffled
// tap pool. Chunks must be tapped in order per word; tapping the first
// chunk of a not-yet-started word switches to it and silently resets the
// previously active word.
type SyllableSalad struct {
	words    []*saladWord
	tiles    []tile
	active   int // index of the in-progress word, -1 when none
	finished int
	hadWrong bool
}

// NewSyllableSalad builds a round from the current entry plus up to two
// extra entries, deduplicated by pair identity.
func NewSyllableSalad(current *vocab.Entry, extras []*vocab.Entry, rng *rand.Rand) *SyllableSalad {
	selected := vocab.DedupeByPair(append([]*vocab.Entry{current}, extras...))
	if len(selected) > MaxSaladWords {
		selected = selected[:MaxSaladWords]
	}

	s := &SyllableSalad{active: -1}
	for _, e := range selected {
		chunks := Chunk(CleanTarget(e.ForeignText))
		if len(chunks) == 0 {
			continue
		}
		s.words = append(s.words, &saladWord{entry: e, chunks: chunks})
		for ci := range chunks {
			s.tiles = append(s.tiles, tile{word: len(s.words) - 1, idx: ci})
		}
	}
	rng.Shuffle(len(s.tiles), func(i, j int) {
		s.tiles[i], s.tiles[j] = s.tiles[j], s.tiles[i]
	})
	return s
}

// Words returns the entries in the round.
func (s *SyllableSalad) Words() []*vocab.Entry {
	out := make([]*vocab.Entry, len(s.words))
	for i, w := range s.words {
		out[i] = w.entry
	}
	return out
}

// Tiles returns the chunk texts in presentation order alongside their
// used flags.
func (s *SyllableSalad) Tiles() ([]string, []bool) {
	texts := make([]string, len(s.tiles))
	used := make([]bool, len(s.tiles))
	for i, t := range s.tiles {
		texts[i] = s.words[t.word].chunks[t.idx]
		used[i] = t.used
	}
	return texts, used
}

// Finished reports how many words are completed.
func (s *SyllableSalad) Finished() int {
	return s.finished
}

// Tap consumes the tile at index i. The tile must be the next chunk of
// its word, and that word must be the active one — except that the first
// chunk of a not-yet-started word is always accepted and resets whichever
// word was in progress. Completing a word earns a bonus; completing all
// words finalizes the round with SRS quality 1.0 for every entry.
func (s *SyllableSalad) Tap(i int, d knowledge.Deltas) Result {
	if i < 0 || i >= len(s.tiles) || s.tiles[i].used {
		return Result{}
	}
	t := s.tiles[i]
	w := s.words[t.word]

	switch {
	case w.done:
		return s.wrongTap(w, d)
	case s.active == -1 || s.active == t.word:
		if t.idx != w.next {
			return s.wrongTap(w, d)
		}
	default:
		// Cross-word tap: only the first chunk of an untouched word is
		// accepted; it silently resets the active word.
		if t.idx != 0 || w.next != 0 {
			return s.wrongTap(w, d)
		}
		s.resetWord(s.active)
	}

	s.tiles[i].used = true
	s.active = t.word
	w.next++

	res := Result{
		Effects: []Effect{{Entry: w.entry, Delta: d.SaladTap}},
	}
	if w.next == len(w.chunks) {
		w.done = true
		s.finished++
		s.active = -1
		res.Effects = append(res.Effects, Effect{Entry: w.entry, Delta: d.SyllableWordBonus})
		if s.finished == len(s.words) {
			for _, fw := range s.words {
				res.Effects = append(res.Effects, Effect{Entry: fw.entry, SRS: srs(true, 1.0)})
			}
			res.Done = true
			res.Correct = !s.hadWrong
			res.Steps = len(s.words)
		}
	}
	return res
}

// Skip abandons the round: every unfinished word records a negative SRS
// outcome.
func (s *SyllableSalad) Skip(d knowledge.Deltas) Result {
	res := Result{
		Done:    true,
		Correct: false,
		Steps:   len(s.words),
	}
	for _, w := range s.words {
		if !w.done {
			res.Effects = append(res.Effects, Effect{
				Entry: w.entry,
				Delta: -d.SaladSkipPenalty,
				SRS:   srs(false, 0.0),
			})
		}
	}
	return res
}

func (s *SyllableSalad) wrongTap(w *saladWord, d knowledge.Deltas) Result {
	s.hadWrong = true
	return Result{
		Effects:   []Effect{{Entry: w.entry, Delta: d.SaladWrongTap}},
		WrongStep: true,
	}
}

// resetWord rewinds a word's progress and frees its consumed tiles.
func (s *SyllableSalad) resetWord(wi int) {
	s.words[wi].next = 0
	for i := range s.tiles {
		if s.tiles[i].word == wi {
			s.tiles[i].used = false
		}
	}
}

// SaladExtras samples up to two extra entries from the pool for a syllable
// salad round, excluding the current entry by pair identity.
func SaladExtras(current *vocab.Entry, pool []*vocab.Entry, rng *rand.Rand) []*vocab.Entry {
	shuffled := make([]*vocab.Entry, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	var extras []*vocab.Entry
	for _, e := range shuffled {
		if len(extras) == MaxSaladWords-1 {
			break
		}
		if e.Pair() == current.Pair() {
			continue
		}
		extras = append(extras, e)
	}
	return extras
}
