package textnorm

import "strings"

// segment is either literal text or a parenthetical group's option list.
type segment struct {
	literal string
	options []string // nil for literal segments
}

// parseSegments splits text into literal runs and well-formed parenthetical
// groups. Group contents are split on "," into options.
func parseSegments(text string) []segment {
	var segs []segment
	rs := []rune(text)
	var lit strings.Builder
	for i := 0; i < len(rs); i++ {
		if rs[i] == '(' {
			if end := closingParen(rs, i); end >= 0 {
				if lit.Len() > 0 {
					segs = append(segs, segment{literal: lit.String()})
					lit.Reset()
				}
				raw := strings.Split(string(rs[i+1:end]), ",")
				opts := make([]string, 0, len(raw))
				for _, o := range raw {
					opts = append(opts, strings.TrimSpace(o))
				}
				segs = append(segs, segment{options: opts})
				i = end
				continue
			}
		}
		lit.WriteRune(rs[i])
	}
	if lit.Len() > 0 {
		segs = append(segs, segment{literal: lit.String()})
	}
	return segs
}

// ExpandVariants expands every parenthetical group in text into the
// cartesian product of {omit the group; substitute each option}. Variants
// are whitespace-collapsed, trimmed, and deduplicated case-insensitively
// while preserving order; the omission variant of a group always comes
// before its substitutions. "(to, in order to) save" expands to
// ["save", "to save", "in order to save"].
func ExpandVariants(text string) []string {
	segs := parseSegments(text)

	variants := []string{""}
	for _, seg := range segs {
		if seg.options == nil {
			for i := range variants {
				variants[i] += seg.literal
			}
			continue
		}
		choices := append([]string{""}, seg.options...)
		next := make([]string, 0, len(variants)*len(choices))
		for _, c := range choices {
			for _, v := range variants {
				next = append(next, v+c)
			}
		}
		variants = next
	}

	var out []string
	seen := make(map[string]bool, len(variants))
	for _, v := range variants {
		v = collapseSpaces(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	if len(out) == 0 {
		return []string{collapseSpaces(text)}
	}
	return out
}

// BestVariant selects, among the expanded variants of expected, the one
// whose normalized form is most similar to the normalized typed input.
// For empty typed input it returns the first variant.
func BestVariant(typed, expected string) string {
	variants := ExpandVariants(expected)
	if len(variants) == 0 {
		return expected
	}
	nt := NormalizeForCompare(typed)
	if nt == "" {
		return variants[0]
	}
	best := variants[0]
	bestRatio := -1.0
	for _, v := range variants {
		r := Ratio(nt, NormalizeForCompare(v))
		if r > bestRatio {
			bestRatio = r
			best = v
		}
	}
	return best
}

// IsCorrectTypedAnswer reports whether the normalized typed input equals
// the normalized full form or the normalized main-lexeme form of any
// expanded variant of any candidate.
func IsCorrectTypedAnswer(typed string, candidates []string) bool {
	nt := NormalizeForCompare(typed)
	if nt == "" {
		return false
	}
	for _, cand := range candidates {
		for _, v := range ExpandVariants(cand) {
			if nt == NormalizeForCompare(v) || nt == NormalizeForCompare(ExtractMainLexeme(v)) {
				return true
			}
		}
	}
	return false
}

// MismatchCount counts character-position mismatches between the normalized
// typed input and the normalized best-matching expected variant, plus the
// absolute length difference. Scales the per-character typing penalty.
//
// This is deliberately the literal position-wise comparison, not an edit
// distance: the scoring constants were tuned against this exact formula,
// so adjacent transpositions count as two mismatches.
func MismatchCount(typed, expected string) int {
	a := []rune(NormalizeForCompare(typed))
	b := []rune(NormalizeForCompare(BestVariant(typed, expected)))
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	mismatches := 0
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			mismatches++
		}
	}
	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}
	return mismatches + diff
}
