// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest normalizes raw search results and merges them with
// previously persisted keyword sections.
package digest

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/internal/search"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const abstractBase = "http://arxiv.org/abs/"

// Normalize maps raw arXiv entries into canonical PaperRecords. A record
// whose identifier cannot be extracted is dropped with a logged ParseError;
// the rest of the batch is unaffected. A missing code link is absent, not
// an error.
func Normalize(raw []search.RawResult, w io.Writer) []types.PaperRecord {
	records := make([]types.PaperRecord, 0, len(raw))

	for _, r := range raw {
		id := ExtractID(r.IDURL)
		title := collapseSpace(r.Title)
		if id == "" {
			perr := &types.ParseError{Reason: describeBadEntry(r.IDURL, title)}
			fmt.Fprintf(w, "warning: %v\n", perr)
			continue
		}

		rec := types.PaperRecord{
			ID:          id,
			Title:       title,
			Published:   parseDay(r.Published),
			AbstractURL: abstractBase + id,
			Abstract:    collapseSpace(r.Abstract),
		}
		for _, a := range r.Authors {
			if name := strings.TrimSpace(a); name != "" {
				rec.Authors = append(rec.Authors, name)
			}
		}
		records = append(records, rec)
	}
	return records
}

// ExtractID pulls the canonical arXiv ID from an entry URL, stripping any
// trailing version marker so resubmitted versions collapse to one
// identifier (e.g. "http://arxiv.org/abs/2108.09112v2" -> "2108.09112").
func ExtractID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	return StripVersion(idURL[idx+len(prefix):])
}

// StripVersion removes a trailing "v<digits>" suffix from an arXiv ID.
func StripVersion(id string) string {
	vIdx := strings.LastIndex(id, "v")
	if vIdx <= 0 {
		return id
	}
	if _, err := strconv.Atoi(id[vIdx+1:]); err != nil {
		return id
	}
	return id[:vIdx]
}

// parseDay reads an RFC 3339 timestamp and truncates it to a UTC calendar
// day. An unparseable timestamp yields the zero time, which sorts last.
func parseDay(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func describeBadEntry(idURL, title string) string {
	switch {
	case idURL == "" && title == "":
		return "entry missing both identifier and title"
	case title != "":
		return fmt.Sprintf("no identifier in entry %q", title)
	default:
		return fmt.Sprintf("no identifier in entry URL %q", idURL)
	}
}

// collapseSpace trims an entry field and folds internal runs of whitespace,
// including the newlines the Atom feed wraps long titles with.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
