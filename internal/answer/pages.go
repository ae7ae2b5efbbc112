package answer

import (
	"sort"

	"github.com/ksjang99-lgtm/langchain-rag/internal/models"
)

// MergePages builds the final display page list: cited pages first in their
// given order, then unique pages backfilled from the similarity-ranked
// contexts, capped at maxPages and returned ascending. Cited pages win
// because the generator asserts it actually used them; retrieval hits are
// the fallback so the UI still has something to show.
func MergePages(citedPages []int, contexts []models.Context, maxPages int) []int {
	picked := []int{}
	if maxPages <= 0 {
		return picked
	}
	seen := make(map[int]bool)

	for _, p := range citedPages {
		if seen[p] {
			continue
		}
		seen[p] = true
		picked = append(picked, p)
		if len(picked) >= maxPages {
			sort.Ints(picked)
			return picked
		}
	}

	for _, c := range contexts {
		p := c.PageNumber
		if seen[p] {
			continue
		}
		seen[p] = true
		picked = append(picked, p)
		if len(picked) >= maxPages {
			break
		}
	}

	sort.Ints(picked)
	return picked
}
