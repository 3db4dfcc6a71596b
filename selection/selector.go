package selection

import (
	"sort"

	"feedcurator/types"
)

// Select filters enriched items to those meeting the rating threshold,
// ranks them by rating descending, and caps the result at maxCount.
// Equal ratings tie-break on recency (fresher first, unknown age last)
// so selection stays deterministic even if feed iteration order changes
// between runs.
func Select(items []types.EnrichedItem, minRating, maxCount int) []types.EnrichedItem {
	selected := make([]types.EnrichedItem, 0, len(items))
	for _, item := range items {
		if item.Rating >= minRating {
			selected = append(selected, item)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].Rating != selected[j].Rating {
			return selected[i].Rating > selected[j].Rating
		}
		return fresher(selected[i].Recency, selected[j].Recency)
	})

	if len(selected) > maxCount {
		selected = selected[:maxCount]
	}
	return selected
}

// fresher orders known ages ascending and places unknown recency after
// every known age.
func fresher(a, b types.Recency) bool {
	switch {
	case a.Known && b.Known:
		return a.Age < b.Age
	case a.Known:
		return true
	default:
		return false
	}
}
