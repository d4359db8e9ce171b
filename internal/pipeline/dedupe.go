package pipeline

import "vmolist/internal"

// Dedupe keeps the first entry for every id. dropped holds the indexes of the
// entries that lost to an earlier one.
func Dedupe(entries []internal.CatalogEntry) (kept []internal.CatalogEntry, dropped []int) {
	seen := make(map[string]struct{}, len(entries))
	kept = make([]internal.CatalogEntry, 0, len(entries))
	for i, e := range entries {
		if _, ok := seen[e.ID]; ok {
			dropped = append(dropped, i)
			continue
		}
		seen[e.ID] = struct{}{}
		kept = append(kept, e)
	}
	return kept, dropped
}
