// Package fuzzy ranks candidate names by edit distance. The diag
// renderer uses it to turn unknown-option and unknown-command errors
// into "did you mean" suggestions.
package fuzzy

import "strings"

// Closest returns the candidate within maxDistance edits of input, or
// "" when nothing is close enough. Ties go to the candidate sharing the
// longest prefix with the input, then to the shorter edit distance.
func Closest(input string, candidates []string, maxDistance int) string {
	if len(input) < 2 {
		return ""
	}
	in := strings.ToLower(input)

	best := ""
	bestDist := maxDistance + 1
	bestPrefix := -1
	for _, cand := range candidates {
		lc := strings.ToLower(cand)
		if lc == in {
			continue
		}
		d := distance(in, lc)
		if d > maxDistance {
			continue
		}
		p := commonPrefix(in, lc)
		if d < bestDist || (d == bestDist && p > bestPrefix) {
			best, bestDist, bestPrefix = cand, d, p
		}
	}
	return best
}

// distance is the Levenshtein edit distance, two-row variant.
func distance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func commonPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
