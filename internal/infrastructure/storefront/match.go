package storefront

import "strings"

// PartialRatio scores how well the query appears inside a candidate
// title, bounded 0-100. It slides the shorter string across the longer
// one and keeps the best edit-distance similarity of any window, so a
// short query fully contained in a long title still scores 100.
func PartialRatio(query, title string) int {
	a := []rune(strings.ToLower(strings.TrimSpace(query)))
	b := []rune(strings.ToLower(strings.TrimSpace(title)))

	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	best := 0
	for start := 0; start+len(shorter) <= len(longer); start++ {
		window := longer[start : start+len(shorter)]
		distance := levenshtein(shorter, window)
		score := 100 * (len(shorter) - distance) / len(shorter)
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}

	return best
}

// levenshtein computes edit distance using two rolling rows.
func levenshtein(r1, r2 []rune) int {
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	n := len(r2)
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
