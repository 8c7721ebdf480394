// Package search implements token-based fuzzy matching for query
// suggestions, with matched-index output for highlighting.
package search

import (
	"sort"
	"strings"
	"unicode"
)

// Match is one candidate that matched the query.
type Match struct {
	Index          int   // Index in the candidate slice
	Score          int   // Lower is better
	MatchedIndexes []int // Rune positions in the candidate that matched
}

// FuzzySearch matches query tokens against each candidate. All query tokens
// must match (AND semantics, order-insensitive); longer tokens tolerate
// typos. Matches come back sorted by score, then candidate length.
func FuzzySearch(query string, candidates []string) []Match {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	var matches []Match
	for i, candidate := range candidates {
		if m, ok := matchCandidate(candidate, queryTokens, i); ok {
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].Score != matches[b].Score {
			return matches[a].Score < matches[b].Score
		}
		return len(candidates[matches[a].Index]) < len(candidates[matches[b].Index])
	})
	return matches
}

type token struct {
	text  string
	start int // rune offset in the original string
}

func tokenize(text string) []token {
	runes := []rune(strings.ToLower(text))

	var tokens []token
	start := -1
	for i, r := range runes {
		word := unicode.IsLetter(r) || unicode.IsDigit(r)
		switch {
		case word && start < 0:
			start = i
		case !word && start >= 0:
			tokens = append(tokens, token{text: string(runes[start:i]), start: start})
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{text: string(runes[start:]), start: start})
	}
	return tokens
}

func matchCandidate(candidate string, queryTokens []token, index int) (Match, bool) {
	candTokens := tokenize(candidate)
	used := make([]bool, len(candTokens))

	total := 0
	var indexes []int

	for _, q := range queryTokens {
		best, bestIdx := -1, -1
		var bestIndexes []int
		for i, c := range candTokens {
			if used[i] {
				continue
			}
			score, idx := matchToken(q.text, c)
			if score >= 0 && (best < 0 || score < best) {
				best, bestIdx, bestIndexes = score, i, idx
			}
		}
		if best < 0 {
			return Match{}, false
		}
		used[bestIdx] = true
		total += best
		indexes = append(indexes, bestIndexes...)
	}

	// Penalize candidates with many unmatched words.
	if extra := len(candTokens) - len(queryTokens); extra > 0 {
		total += extra * 5
	}

	sort.Ints(indexes)
	return Match{Index: index, Score: total, MatchedIndexes: indexes}, true
}

// matchToken scores a query token against one candidate token. Score < 0
// means no match.
func matchToken(query string, cand token) (int, []int) {
	text := cand.text

	if query == text {
		return 0, indexRange(cand.start, len([]rune(text)))
	}
	if strings.HasPrefix(text, query) {
		return 10, indexRange(cand.start, len([]rune(query)))
	}
	if idx := strings.Index(text, query); idx >= 0 {
		runeIdx := len([]rune(text[:idx]))
		return 50 + runeIdx, indexRange(cand.start+runeIdx, len([]rune(query)))
	}

	if max := allowedTypos(len([]rune(query))); max > 0 {
		if dist := levenshtein(query, text); dist <= max {
			return 100 + dist*20, indexRange(cand.start, len([]rune(text)))
		}
	}
	return -1, nil
}

// allowedTypos scales typo tolerance with token length.
func allowedTypos(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}

func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	cur := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ar); i++ {
		cur[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(br)]
}

func indexRange(start, n int) []int {
	indexes := make([]int, n)
	for i := range indexes {
		indexes[i] = start + i
	}
	return indexes
}
