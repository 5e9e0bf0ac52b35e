// Package textnorm provides the canonical text forms used for grading
// typed answers: diacritic stripping, parenthetical-variant expansion and
// fuzzy similarity primitives.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSeparators are the top-level answer separators recognized by
// SplitOutsideParens.
var DefaultSeparators = []rune{';', ',', '/'}

// stripMarks decomposes text and removes combining marks, so "fähre"
// compares equal to "fahre".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeForCompare produces the canonical comparable form of free text:
// parenthesized content is stripped entirely, diacritical marks are dropped,
// only alphabetic characters survive, lowercased. All equality and fuzzy
// comparisons run on this form.
func NormalizeForCompare(text string) string {
	s := StripParens(text)
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// StripParens removes well-formed (...) groups including the parentheses.
// An unclosed opening parenthesis is left in place; later filtering decides
// what to do with it.
func StripParens(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	rs := []rune(text)
	for i := 0; i < len(rs); i++ {
		if rs[i] == '(' {
			if end := closingParen(rs, i); end >= 0 {
				i = end
				continue
			}
		}
		b.WriteRune(rs[i])
	}
	return b.String()
}

// closingParen returns the index of the ')' closing the group opened at
// start, or -1 if the group never closes.
func closingParen(rs []rune, start int) int {
	for i := start + 1; i < len(rs); i++ {
		if rs[i] == ')' {
			return i
		}
	}
	return -1
}

// ExtractMainLexeme removes parenthetical content, trims, and returns the
// last whitespace-delimited token. Handles entries like "(to) walk", whose
// main lexeme is "walk".
func ExtractMainLexeme(text string) string {
	fields := strings.Fields(StripParens(text))
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// SplitOutsideParens splits text on top-level separators (";", ",", "/").
// Separators inside a parenthetical group do not split, including groups
// that are never closed. Each piece is trimmed; empty pieces are dropped.
// The pieces are independently acceptable answer candidates.
func SplitOutsideParens(text string) []string {
	var pieces []string
	var cur strings.Builder
	depth := 0
	for _, r := range text {
		switch {
		case r == '(':
			depth++
			cur.WriteRune(r)
		case r == ')':
			if depth > 0 {
				depth--
			}
			cur.WriteRune(r)
		case depth == 0 && isSeparator(r):
			if p := strings.TrimSpace(cur.String()); p != "" {
				pieces = append(pieces, p)
			}
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if p := strings.TrimSpace(cur.String()); p != "" {
		pieces = append(pieces, p)
	}
	return pieces
}

func isSeparator(r rune) bool {
	for _, s := range DefaultSeparators {
		if r == s {
			return true
		}
	}
	return false
}

// collapseSpaces trims and squeezes runs of whitespace to single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
