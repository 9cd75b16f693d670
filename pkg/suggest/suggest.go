// Package suggest finds names similar to a mistyped one, for "did you mean" messages.
package suggest

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"
)

// threshold is the minimum similarity a candidate needs to be suggested.
const threshold = 0.5

type match struct {
	name  string
	score float64
}

// FindSimilar returns up to maxResults candidates similar to target, best match first. Ties are
// broken alphabetically. Comparison ignores case.
func FindSimilar(target string, candidates []string, maxResults int) []string {
	if target == "" || maxResults <= 0 {
		return []string{}
	}

	matches := make([]match, 0, len(candidates))
	for _, name := range candidates {
		if s := score(target, name); s > threshold {
			matches = append(matches, match{name: name, score: s})
		}
	}
	slices.SortFunc(matches, func(a, b match) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	result := make([]string, 0, min(len(matches), maxResults))
	for _, m := range matches[:min(len(matches), maxResults)] {
		result = append(result, m.name)
	}
	return result
}

// score returns a similarity between 0 and 1. A candidate that starts with target scores 0.9.
func score(target, candidate string) float64 {
	target = strings.ToLower(target)
	candidate = strings.ToLower(candidate)

	if target == candidate {
		return 1.0
	}
	if strings.HasPrefix(candidate, target) {
		return 0.9
	}
	longest := max(utf8.RuneCountInString(target), utf8.RuneCountInString(candidate))
	return 1.0 - float64(distance(target, candidate))/float64(longest)
}

// distance is the Levenshtein edit distance between a and b, counted in runes.
func distance(a, b string) int {
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
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
