package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterItems returns the rows matching query in their original order.
// Labels are matched fuzzily first; when nothing matches, a plain substring
// search over labels and paths is tried. Disabled rows never match a
// non-empty query.
func FilterItems(items []Item, query string) []Item {
	needle := strings.TrimSpace(query)
	if needle == "" {
		return CloneItems(items)
	}
	candidates := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Enabled() {
			candidates = append(candidates, item)
		}
	}
	if hits := fuzzyHits(candidates, needle); len(hits) > 0 {
		return hits
	}
	lower := strings.ToLower(needle)
	hits := make([]Item, 0, len(candidates))
	for _, item := range candidates {
		if containsFold(item.Label, lower) || containsFold(itemPath(item), lower) {
			hits = append(hits, item)
		}
	}
	return hits
}

func fuzzyHits(items []Item, needle string) []Item {
	ranks := fuzzy.RankFindNormalizedFold(needle, labelsOf(items))
	if len(ranks) == 0 {
		return nil
	}
	matched := make([]bool, len(items))
	for _, rank := range ranks {
		matched[rank.OriginalIndex] = true
	}
	hits := make([]Item, 0, len(ranks))
	for i, item := range items {
		if matched[i] {
			hits = append(hits, item)
		}
	}
	return hits
}

// matchTiers rank candidate labels against a lowercased needle, strongest
// first.
var matchTiers = []func(label, needle string) bool{
	func(label, needle string) bool { return strings.ToLower(label) == needle },
	func(label, needle string) bool { return strings.HasPrefix(strings.ToLower(label), needle) },
	containsFold,
}

// BestMatchIndex picks the row the cursor should land on for query: an
// exact label, then a prefix, then a substring, then the closest fuzzy
// match. It returns 0 when nothing matches and -1 for an empty slice.
func BestMatchIndex(items []Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return 0
	}
	for _, matches := range matchTiers {
		for i, item := range items {
			if matches(item.Label, needle) {
				return i
			}
		}
	}
	best := -1
	bestDistance := 0
	for _, rank := range fuzzy.RankFindNormalizedFold(needle, labelsOf(items)) {
		if best < 0 || rank.Distance < bestDistance ||
			(rank.Distance == bestDistance && rank.OriginalIndex < best) {
			best, bestDistance = rank.OriginalIndex, rank.Distance
		}
	}
	if best < 0 || best >= len(items) {
		return 0
	}
	return best
}

func labelsOf(items []Item) []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return labels
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

func itemPath(item Item) string {
	if item.Node == nil {
		return ""
	}
	return item.Node.Path
}
