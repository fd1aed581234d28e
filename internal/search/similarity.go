package search

// Ratio measures the similarity of two strings as 2*LCS/(len(a)+len(b)) over
// runes, in [0, 1]. It rewards long common subsequences the same way a
// diff-based matcher does, which suits partially typed product names.
func Ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra)+len(rb) == 0 {
		return 0
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	// Two-row DP keeps memory linear in the shorter string.
	if len(rb) < len(ra) {
		ra, rb = rb, ra
	}
	prev := make([]int, len(ra)+1)
	cur := make([]int, len(ra)+1)
	for j := 1; j <= len(rb); j++ {
		for i := 1; i <= len(ra); i++ {
			if ra[i-1] == rb[j-1] {
				cur[i] = prev[i-1] + 1
			} else if prev[i] >= cur[i-1] {
				cur[i] = prev[i]
			} else {
				cur[i] = cur[i-1]
			}
		}
		prev, cur = cur, prev
	}

	lcs := prev[len(ra)]
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}
