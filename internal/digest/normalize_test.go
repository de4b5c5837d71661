package digest

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/arxiv-digest/internal/search"
)

func TestNormalizeStripsVersionSuffix(t *testing.T) {
	raw := []search.RawResult{{
		IDURL:     "http://arxiv.org/abs/2108.09112v2",
		Title:     "A Paper",
		Published: "2021-08-20T17:57:34Z",
		Authors:   []string{"Ada Lovelace", "Alan Turing"},
	}}

	var buf bytes.Buffer
	records := Normalize(raw, &buf)
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	r := records[0]
	if r.ID != "2108.09112" {
		t.Errorf("ID = %q, want version-stripped %q", r.ID, "2108.09112")
	}
	if r.AbstractURL != "http://arxiv.org/abs/2108.09112" {
		t.Errorf("AbstractURL = %q", r.AbstractURL)
	}
	want := time.Date(2021, 8, 20, 0, 0, 0, 0, time.UTC)
	if !r.Published.Equal(want) {
		t.Errorf("Published = %v, want calendar day %v", r.Published, want)
	}
	if len(r.Authors) != 2 || r.Authors[0] != "Ada Lovelace" {
		t.Errorf("Authors = %v", r.Authors)
	}
}

func TestNormalizeDropsUnparseableRecordAndContinues(t *testing.T) {
	raw := []search.RawResult{
		{IDURL: "", Title: "", Published: "2024-01-01T00:00:00Z"},
		{IDURL: "http://arxiv.org/abs/2401.00001v1", Title: "Good", Published: "2024-01-01T00:00:00Z"},
	}

	var buf bytes.Buffer
	records := Normalize(raw, &buf)
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1 (bad record dropped, batch continues)", len(records))
	}
	if records[0].ID != "2401.00001" {
		t.Errorf("surviving ID = %q", records[0].ID)
	}
	if !strings.Contains(buf.String(), "warning:") {
		t.Error("dropped record should be logged")
	}
	if !strings.Contains(buf.String(), "missing both identifier and title") {
		t.Errorf("log should describe the parse error, got %q", buf.String())
	}
}

func TestNormalizeMissingCodeLinkIsAbsent(t *testing.T) {
	raw := []search.RawResult{{
		IDURL:     "http://arxiv.org/abs/2401.00001",
		Title:     "No Code Yet",
		Published: "2024-01-01T00:00:00Z",
	}}

	var buf bytes.Buffer
	records := Normalize(raw, &buf)
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].CodeURL != "" {
		t.Errorf("CodeURL = %q, want absent", records[0].CodeURL)
	}
	if strings.Contains(buf.String(), "warning:") {
		t.Error("a missing code link is not an error")
	}
}

func TestNormalizeCollapsesFeedWhitespace(t *testing.T) {
	raw := []search.RawResult{{
		IDURL:     "http://arxiv.org/abs/2401.00001v1",
		Title:     "A Long\n  Wrapped Title",
		Abstract:  "Line one.\nLine two.",
		Published: "2024-01-01T00:00:00Z",
	}}

	var buf bytes.Buffer
	records := Normalize(raw, &buf)
	if records[0].Title != "A Long Wrapped Title" {
		t.Errorf("Title = %q", records[0].Title)
	}
	if records[0].Abstract != "Line one. Line two." {
		t.Errorf("Abstract = %q", records[0].Abstract)
	}
}

func TestExtractID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"http://arxiv.org/abs/2301.07041v1", "2301.07041"},
		{"http://arxiv.org/abs/1706.03762v5", "1706.03762"},
		{"http://arxiv.org/abs/2301.12345", "2301.12345"},
		{"https://arxiv.org/abs/2301.07041v2", "2301.07041"},
		{"not a url", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExtractID(tt.input); got != tt.want {
				t.Errorf("ExtractID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripVersion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2108.09112v1", "2108.09112"},
		{"2108.09112v12", "2108.09112"},
		{"2108.09112", "2108.09112"},
		{"cs/0112017v3", "cs/0112017"},
		{"v1", "v1"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := StripVersion(tt.input); got != tt.want {
				t.Errorf("StripVersion(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
