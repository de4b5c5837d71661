// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search builds per-keyword arXiv queries and fetches raw results.
package search

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Backend fetches raw results for one keyword query. The arXiv backend is
// the only implementation today; the interface exists so tests can supply a
// mock and another index can slot in later.
type Backend interface {
	Name() string
	Fetch(ctx context.Context, q KeywordQuery, cfg types.Config) ([]RawResult, error)
}

// FetchOutput holds the per-keyword raw results of one fetch pass.
type FetchOutput struct {
	// Results maps keyword name to its raw entries.
	Results map[string][]RawResult

	// Failed lists keywords whose fetch was aborted by a FetchError.
	Failed []string
}

// FetchAll runs every keyword query against the backend. A failed query
// aborts that keyword only: the error is logged to w as a FetchError and
// the remaining keywords still run.
func FetchAll(ctx context.Context, backend Backend, queries []KeywordQuery, cfg types.Config, w io.Writer) FetchOutput {
	out := FetchOutput{Results: make(map[string][]RawResult, len(queries))}

	for _, q := range queries {
		results, err := backend.Fetch(ctx, q, cfg)
		if err != nil {
			ferr := &types.FetchError{Keyword: q.Keyword, Err: err}
			fmt.Fprintf(w, "warning: %v\n", ferr)
			out.Failed = append(out.Failed, q.Keyword)
			continue
		}
		fmt.Fprintf(w, "fetched %s: %d results\n", q.Keyword, len(results))
		out.Results[q.Keyword] = results
	}
	return out
}
