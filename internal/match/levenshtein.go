package match

// Levenshtein computes the Levenshtein distance (edit distance) between two strings.
// The distance is the minimum number of single-byte edits (insertions, deletions,
// or substitutions) required to transform one string into the other.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	// keep a as the shorter string, only two rows are needed
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Closest returns the candidate with the smallest distance to name after
// normalization. Candidates further away than maxDistance are ignored; ties go
// to the earlier candidate. The second result is false if nothing qualifies.
func Closest(name string, candidates []string, maxDistance int) (string, bool) {
	norm := Normalize(name)
	best := ""
	bestDist := maxDistance + 1

	for _, c := range candidates {
		d := Levenshtein(norm, Normalize(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, bestDist <= maxDistance
}
