// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package codelink resolves official code repositories for papers via the
// Papers With Code API, falling back to GitHub repository search.
package codelink

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pdiddy/arxiv-digest/internal/httputil"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// API endpoints. Vars so tests can substitute httptest servers.
var (
	pwcAPIBase    = "https://arxiv.paperswithcode.com/api/v0/papers/"
	githubAPIBase = "https://api.github.com/search/repositories"
)

// Resolver looks up code repositories for paper records.
type Resolver struct {
	Client    *http.Client
	UserAgent string

	// GitHubToken raises the search API rate limit. Optional.
	GitHubToken string
}

// pwcResponse is the Papers With Code per-paper payload, reduced to the
// official-repository field.
type pwcResponse struct {
	Official *struct {
		URL string `json:"url"`
	} `json:"official"`
}

// githubSearchResponse is the GitHub repository search payload.
type githubSearchResponse struct {
	TotalCount int `json:"total_count"`
	Items      []struct {
		HTMLURL string `json:"html_url"`
	} `json:"items"`
}

// Resolve returns the code repository URL for a paper, or "" when none is
// known. Papers With Code's official entry wins; otherwise the top-starred
// GitHub search hit for the arXiv ID, then for the title.
func (r *Resolver) Resolve(ctx context.Context, paperID, title string) (string, error) {
	var pwc pwcResponse
	err := httputil.GetJSON(ctx, r.Client, pwcAPIBase+paperID, r.UserAgent, nil, &pwc)
	if err == nil && pwc.Official != nil && pwc.Official.URL != "" {
		return pwc.Official.URL, nil
	}
	if err != nil {
		// Fall through to GitHub search; report only if that fails too.
		if ghURL, ghErr := r.searchGitHub(ctx, paperID, title); ghErr == nil {
			return ghURL, nil
		}
		return "", err
	}
	return r.searchGitHub(ctx, paperID, title)
}

// searchGitHub queries the repository search API by arXiv ID, then by
// title, returning the most starred hit.
func (r *Resolver) searchGitHub(ctx context.Context, paperID, title string) (string, error) {
	for _, q := range []string{paperID, title} {
		if q == "" {
			continue
		}
		hit, err := r.searchOnce(ctx, q)
		if err != nil {
			return "", err
		}
		if hit != "" {
			return hit, nil
		}
	}
	return "", nil
}

func (r *Resolver) searchOnce(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "stars")
	params.Set("order", "desc")

	headers := map[string]string{}
	if r.GitHubToken != "" {
		headers["Authorization"] = "Bearer " + r.GitHubToken
	}

	var resp githubSearchResponse
	if err := httputil.GetJSON(ctx, r.Client, githubAPIBase+"?"+params.Encode(), r.UserAgent, headers, &resp); err != nil {
		return "", err
	}
	if resp.TotalCount > 0 && len(resp.Items) > 0 {
		return resp.Items[0].HTMLURL, nil
	}
	return "", nil
}

// Annotate fills CodeURL on records that lack one. A failed lookup logs a
// warning and leaves the link absent; it never aborts the run. The input
// slice is not modified.
func (r *Resolver) Annotate(ctx context.Context, papers []types.PaperRecord, w io.Writer) []types.PaperRecord {
	out := make([]types.PaperRecord, len(papers))
	copy(out, papers)

	for i := range out {
		if out[i].CodeURL != "" {
			continue
		}
		link, err := r.Resolve(ctx, out[i].ID, out[i].Title)
		if err != nil {
			fmt.Fprintf(w, "warning: code link lookup failed for %s: %v\n", out[i].ID, err)
			continue
		}
		out[i].CodeURL = link
	}
	return out
}
