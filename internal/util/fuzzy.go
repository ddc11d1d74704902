package util

import "strings"

// Ratio returns a 0-100 similarity score for two strings based on
// Levenshtein edit distance over their combined length.
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0
	}
	dist := levenshtein(a, b)
	return int(float64(la+lb-2*dist) / float64(la+lb) * 100)
}

// PartialRatio scores the best-matching window of the longer string against
// the shorter one, so a token embedded in a larger description still scores
// high. Scale is 0-100.
func PartialRatio(a, b string) int {
	if a == b {
		return 100
	}
	short, long := a, b
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}
	if strings.Contains(long, short) {
		return 100
	}
	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		score := Ratio(short, long[i:i+len(short)])
		if score > best {
			best = score
		}
	}
	// windows shorter than the needle at the tail still matter for
	// near-miss endings
	if best < 100 {
		if score := Ratio(short, long[max(0, len(long)-len(short)):]); score > best {
			best = score
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
