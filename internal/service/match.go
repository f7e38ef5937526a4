package service

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	playerMatchThreshold = 0.7
	teamMatchThreshold   = 0.6
)

func similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	distance := fuzzy.LevenshteinDistance(a, b)
	maxLen := float64(max(len(a), len(b)))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(distance)/maxLen
}

// bestMatch returns the index of the name closest to query, or -1. An exact
// case-insensitive match wins, then the closest name by edit distance above
// threshold, then the tightest in-order character match ("mahomes" finds
// "Patrick Mahomes").
func bestMatch(query string, names []string, threshold float64) int {
	query = strings.TrimSpace(query)
	if query == "" {
		return -1
	}

	for i, name := range names {
		if strings.EqualFold(name, query) {
			return i
		}
	}

	best, bestScore := -1, threshold
	for i, name := range names {
		if s := similarity(query, name); s > bestScore {
			best, bestScore = i, s
		}
	}
	if best != -1 {
		return best
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		return -1
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	return ranks[0].OriginalIndex
}
