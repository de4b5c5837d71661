// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"sort"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Merge combines previously persisted records with freshly fetched ones,
// deduplicating by identifier. An incoming record replaces an existing one
// only when its publish date is strictly more recent; otherwise the
// existing record is kept. The result is sorted by publish date descending,
// ties broken by identifier ascending.
//
// Merge is idempotent: replaying an already-applied update is a no-op, and
// no record is ever lost except by explicit supersede.
func Merge(prev, fresh []types.PaperRecord) []types.PaperRecord {
	byID := make(map[string]types.PaperRecord, len(prev)+len(fresh))
	for _, p := range prev {
		byID[p.ID] = p
	}
	for _, f := range fresh {
		existing, ok := byID[f.ID]
		if !ok || f.Supersedes(existing) {
			byID[f.ID] = f
		}
	}

	merged := make([]types.PaperRecord, 0, len(byID))
	for _, p := range byID {
		merged = append(merged, p)
	}
	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].Published.Equal(merged[j].Published) {
			return merged[i].Published.After(merged[j].Published)
		}
		return merged[i].ID < merged[j].ID
	})
	return merged
}

// MergeSections applies Merge per keyword and returns the definitive
// sections in the given keyword order. Keywords with neither persisted nor
// fresh records produce an empty section so the rendered layout is stable.
func MergeSections(state State, fresh map[string][]types.PaperRecord, order []string) []types.KeywordSection {
	sections := make([]types.KeywordSection, 0, len(order))
	for _, name := range order {
		sections = append(sections, types.KeywordSection{
			Name:   name,
			Papers: Merge(state[name], fresh[name]),
		})
	}
	return sections
}
