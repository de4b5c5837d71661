// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ConfigError reports invalid configuration. It is fatal and aborts the run
// before any network call.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// FetchError reports a failed search API call for one keyword. The run logs
// it, skips the keyword, and continues with the remaining keywords.
type FetchError struct {
	Keyword string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching keyword %q: %v", e.Keyword, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a raw result that could not be normalized into a
// PaperRecord. The record is dropped; the rest of the batch continues.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parsing result: " + e.Reason
}

// RenderError reports a data-model invariant violation detected while
// rendering, such as a duplicate identifier surviving the merge. It is
// fatal: the invariant cannot be violated if the merge is correct.
type RenderError struct {
	Section string
	ID      string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering section %q: duplicate identifier %s", e.Section, e.ID)
}
