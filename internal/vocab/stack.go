package vocab

// Stack is a named ordered collection of entries plus language metadata.
// Stacks are independent; a session may span one stack or all of them.
type Stack struct {
	ID              string
	Name            string
	OwnLanguage     string
	ForeignLanguage string
	ThirdLanguage   string
	ThirdActive     bool
	Entries         []*Entry
}

// UniquePairCount returns the number of distinct (own, foreign) pairs in
// the stack. Connect-pairs eligibility is computed from this.
func (s *Stack) UniquePairCount() int {
	seen := make(map[PairKey]bool, len(s.Entries))
	for _, e := range s.Entries {
		seen[e.Pair()] = true
	}
	return len(seen)
}
