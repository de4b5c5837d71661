// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// RawResult is one undecoded arXiv entry as returned by the API. The digest
// normalizer turns it into a canonical PaperRecord.
type RawResult struct {
	IDURL     string
	Title     string
	Abstract  string
	Published string
	Updated   string
	Authors   []string
	Comment   string
}

// ArxivBackend queries the arXiv Atom API, newest submissions first.
type ArxivBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *ArxivBackend) Name() string { return "arxiv" }

// Fetch runs one keyword query against the arXiv API and returns up to
// maxResults raw entries sorted by submission date descending.
func (b *ArxivBackend) Fetch(ctx context.Context, q KeywordQuery, cfg types.Config) ([]RawResult, error) {
	expr := q.Query
	if expr == "" {
		return nil, fmt.Errorf("empty arXiv query for keyword %q", q.Keyword)
	}
	if clause := dateClause(cfg.DateFrom, cfg.DateTo); clause != "" {
		expr = "(" + expr + ") AND " + clause
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{}
	params.Set("search_query", expr)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, arxivAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.HTTP.UserAgent)

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	results := make([]RawResult, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		r := RawResult{
			IDURL:     entry.ID,
			Title:     entry.Title,
			Abstract:  entry.Summary,
			Published: entry.Published,
			Updated:   entry.Updated,
			Comment:   entry.Comment,
		}
		for _, a := range entry.Authors {
			r.Authors = append(r.Authors, a.Name)
		}
		results = append(results, r)
	}
	return results, nil
}

// dateClause builds the optional submittedDate range restriction. The API
// expects YYYYMMDDHHMM bounds; open ends fall back to wide sentinels.
func dateClause(from, to string) string {
	if from == "" && to == "" {
		return ""
	}
	lo, hi := "190001010000", "990012312359"
	if t, err := time.Parse("2006-01-02", from); err == nil && from != "" {
		lo = t.Format("20060102") + "0000"
	}
	if t, err := time.Parse("2006-01-02", to); err == nil && to != "" {
		hi = t.Format("20060102") + "2359"
	}
	return "submittedDate:[" + lo + " TO " + hi + "]"
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Updated   string        `xml:"updated"`
	Comment   string        `xml:"comment"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}
