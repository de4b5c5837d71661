package codelink

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func newResolver() *Resolver {
	return &Resolver{Client: &http.Client{}, UserAgent: "test/0.1"}
}

func TestResolveOfficialRepositoryWins(t *testing.T) {
	pwc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/2401.00001") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"official": {"url": "https://github.com/official/repo"}}`))
	}))
	defer pwc.Close()

	oldPWC := pwcAPIBase
	pwcAPIBase = pwc.URL + "/"
	defer func() { pwcAPIBase = oldPWC }()

	got, err := newResolver().Resolve(context.Background(), "2401.00001", "Some Paper")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "https://github.com/official/repo" {
		t.Errorf("Resolve = %q, want official repo", got)
	}
}

func TestResolveFallsBackToGitHubSearch(t *testing.T) {
	pwc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"official": null}`))
	}))
	defer pwc.Close()

	var queries []string
	github := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		queries = append(queries, q)
		if r.URL.Query().Get("sort") != "stars" || r.URL.Query().Get("order") != "desc" {
			t.Errorf("search must sort by stars descending, got %s", r.URL.RawQuery)
		}
		if q == "2401.00001" {
			w.Write([]byte(`{"total_count": 0, "items": []}`))
			return
		}
		w.Write([]byte(`{"total_count": 2, "items": [{"html_url": "https://github.com/top/starred"}, {"html_url": "https://github.com/second/hit"}]}`))
	}))
	defer github.Close()

	oldPWC, oldGH := pwcAPIBase, githubAPIBase
	pwcAPIBase, githubAPIBase = pwc.URL+"/", github.URL
	defer func() { pwcAPIBase, githubAPIBase = oldPWC, oldGH }()

	got, err := newResolver().Resolve(context.Background(), "2401.00001", "Some Paper")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "https://github.com/top/starred" {
		t.Errorf("Resolve = %q, want top search hit", got)
	}
	if len(queries) != 2 || queries[0] != "2401.00001" || queries[1] != "Some Paper" {
		t.Errorf("search queries = %v, want ID first then title", queries)
	}
}

func TestResolveNoHitsMeansNoLink(t *testing.T) {
	pwc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer pwc.Close()
	github := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_count": 0, "items": []}`))
	}))
	defer github.Close()

	oldPWC, oldGH := pwcAPIBase, githubAPIBase
	pwcAPIBase, githubAPIBase = pwc.URL+"/", github.URL
	defer func() { pwcAPIBase, githubAPIBase = oldPWC, oldGH }()

	got, err := newResolver().Resolve(context.Background(), "2401.00001", "Some Paper")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "" {
		t.Errorf("Resolve = %q, want empty for no hits", got)
	}
}

func TestSearchSendsAuthorizationHeader(t *testing.T) {
	var auth string
	github := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{"total_count": 0, "items": []}`))
	}))
	defer github.Close()

	oldGH := githubAPIBase
	githubAPIBase = github.URL
	defer func() { githubAPIBase = oldGH }()

	r := newResolver()
	r.GitHubToken = "gh-token"
	if _, err := r.searchOnce(context.Background(), "2401.00001"); err != nil {
		t.Fatalf("searchOnce: %v", err)
	}
	if auth != "Bearer gh-token" {
		t.Errorf("Authorization = %q, want bearer token", auth)
	}
}

func TestAnnotateLogsFailuresAndContinues(t *testing.T) {
	pwc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/2401.00001") {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"official": {"url": "https://github.com/found/repo"}}`))
	}))
	defer pwc.Close()
	github := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer github.Close()

	oldPWC, oldGH := pwcAPIBase, githubAPIBase
	pwcAPIBase, githubAPIBase = pwc.URL+"/", github.URL
	defer func() { pwcAPIBase, githubAPIBase = oldPWC, oldGH }()

	papers := []types.PaperRecord{
		{ID: "2401.00001", Title: "Fails", Published: time.Now()},
		{ID: "2401.00002", Title: "Works", Published: time.Now()},
		{ID: "2401.00003", Title: "Kept", CodeURL: "https://github.com/existing/repo"},
	}

	var buf bytes.Buffer
	out := newResolver().Annotate(context.Background(), papers, &buf)

	if out[0].CodeURL != "" {
		t.Errorf("failed lookup should leave the link absent, got %q", out[0].CodeURL)
	}
	if out[1].CodeURL != "https://github.com/found/repo" {
		t.Errorf("second record should still resolve, got %q", out[1].CodeURL)
	}
	if out[2].CodeURL != "https://github.com/existing/repo" {
		t.Errorf("existing link must be preserved, got %q", out[2].CodeURL)
	}
	if !strings.Contains(buf.String(), "warning: code link lookup failed for 2401.00001") {
		t.Errorf("failure should be logged, got %q", buf.String())
	}
	if papers[1].CodeURL != "" {
		t.Error("Annotate must not mutate its input")
	}
}
