package textnorm

// Ratio is the sequence-similarity metric used to pick the best expected
// variant: twice the total size of the longest matching blocks divided by
// the combined length, in [0, 1].
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingTotal(ra, rb)) / float64(total)
}

// matchingTotal sums the sizes of all matching blocks: the longest common
// block, then recursively the blocks to its left and right.
func matchingTotal(a, b []rune) int {
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingTotal(a[:ai], b[:bi]) +
		matchingTotal(a[ai+size:], b[bi+size:])
}

// longestMatch finds the longest common contiguous block of a and b,
// preferring the earliest occurrence in a, then in b.
func longestMatch(a, b []rune) (bestA, bestB, bestSize int) {
	// lengths[j] holds the length of the common suffix ending at the
	// previous row's b[j-1].
	lengths := make([]int, len(b)+1)
	for i := 0; i < len(a); i++ {
		prev := 0
		for j := 0; j < len(b); j++ {
			cur := lengths[j+1]
			if a[i] == b[j] {
				lengths[j+1] = prev + 1
				if lengths[j+1] > bestSize {
					bestSize = lengths[j+1]
					bestA = i - bestSize + 1
					bestB = j - bestSize + 1
				}
			} else {
				lengths[j+1] = 0
			}
			prev = cur
		}
	}
	return bestA, bestB, bestSize
}
