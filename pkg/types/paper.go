// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures for the arxiv-digest
// pipeline: canonical paper records, keyword sections, configuration, and
// the error taxonomy.
package types

import "time"

// PaperRecord is the canonical representation of one academic paper inside
// a keyword section. Records are immutable values: an update produces a
// replacement record, never a mutation of a stored one.
type PaperRecord struct {
	// ID is the canonical arXiv identifier with any version suffix
	// stripped (e.g. "2108.09112", never "2108.09112v2").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title as returned by the search API.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the submission date, truncated to a calendar day in UTC.
	Published time.Time `json:"published" yaml:"published"`

	// AbstractURL points at the paper's abstract page.
	AbstractURL string `json:"abstract_url" yaml:"abstract_url"`

	// CodeURL is the official code repository, when one is known.
	CodeURL string `json:"code_url,omitempty" yaml:"code_url,omitempty"`

	// Summary is an optional one-line AI-generated summary of the abstract.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Abstract is the abstract text of a freshly fetched record. It feeds
	// the summary stage and is not persisted.
	Abstract string `json:"-" yaml:"-"`
}

// FirstAuthor returns the first listed author, or "" for an empty list.
func (p PaperRecord) FirstAuthor() string {
	if len(p.Authors) == 0 {
		return ""
	}
	return p.Authors[0]
}

// Supersedes reports whether p should replace existing when both carry the
// same identifier: only a strictly more recent publish date wins.
func (p PaperRecord) Supersedes(existing PaperRecord) bool {
	return p.Published.After(existing.Published)
}

// KeywordSection holds the papers matching one configured keyword, ordered
// by publish date descending (ties broken by identifier ascending).
// Identifiers are unique within a section.
type KeywordSection struct {
	Name   string        `json:"name" yaml:"name"`
	Papers []PaperRecord `json:"papers" yaml:"papers"`
}
