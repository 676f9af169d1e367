// Package typoutil expands query terms to the indexed terms within a bounded edit distance.
package typoutil

// DamerauDistance computes the optimal string alignment distance between two strings:
// insertions, deletions, substitutions and transpositions of adjacent runes each cost one.
func DamerauDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	return damerau(ra, rb, len(ra)+len(rb))
}

// DamerauDistanceWithLimit is DamerauDistance with early termination.
// It returns maxDistance + 1 as soon as the distance is known to exceed maxDistance.
func DamerauDistanceWithLimit(a, b string, maxDistance int) int {
	ra, rb := []rune(a), []rune(b)
	if abs(len(ra)-len(rb)) > maxDistance {
		return maxDistance + 1
	}
	return damerau(ra, rb, maxDistance)
}

func damerau(a, b []rune, limit int) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Three rows are enough: the transposition looks two rows back.
	prevPrev := make([]int, len(b)+1)
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		rowMin := i

		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)

			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				curr[j] = min(curr[j], prevPrev[j-2]+cost)
			}
			rowMin = min(rowMin, curr[j])
		}

		if rowMin > limit {
			return limit + 1
		}
		prevPrev, prev, curr = prev, curr, prevPrev
	}

	return prev[len(b)]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
