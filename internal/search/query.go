// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// KeywordQuery pairs a keyword section name with the arXiv search_query
// expression built from its filter terms.
type KeywordQuery struct {
	Keyword string
	Query   string
}

// BuildQueries turns the configured keyword list into one query descriptor
// per keyword, in config order. It has no side effects and fails with a
// ConfigError when the keyword set is empty.
func BuildQueries(cfg types.Config) ([]KeywordQuery, error) {
	if len(cfg.Keywords) == 0 {
		return nil, &types.ConfigError{Field: "keywords", Reason: "at least one keyword is required"}
	}

	queries := make([]KeywordQuery, 0, len(cfg.Keywords))
	for _, kw := range cfg.Keywords {
		queries = append(queries, KeywordQuery{
			Keyword: kw.Name,
			Query:   joinFilters(kw.Filters),
		})
	}
	return queries, nil
}

// joinFilters OR-combines filter terms into one expression. Multi-word
// terms are quoted so they match as phrases.
func joinFilters(filters []string) string {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		if len(strings.Fields(f)) > 1 {
			f = `"` + f + `"`
		}
		parts = append(parts, f)
	}
	return strings.Join(parts, " OR ")
}
