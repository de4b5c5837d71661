// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns merged keyword sections into markdown and publishes
// the result to disk.
package render

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Options control the layout of one rendered markdown document.
type Options struct {
	// Flavor selects table rows or bullet lines.
	Flavor types.OutputFlavor

	// FrontMatter prepends a Jekyll front matter block.
	FrontMatter bool

	// Badges prepends shields.io repository badges referencing
	// UserName/RepoName.
	Badges bool

	// TOC emits an HTML table of contents over the non-empty sections.
	TOC bool

	// BackToTop appends an anchor link after each section.
	BackToTop bool

	UserName string
	RepoName string
}

const headerDateFmt = "2006.01.02"

// Render produces the complete markdown document for the given sections.
// Output is deterministic: the same sections and timestamp always yield
// byte-identical text. A duplicate identifier inside a section is a fatal
// RenderError, since the merge guarantees uniqueness.
func Render(sections []types.KeywordSection, now time.Time, opts Options) (string, error) {
	if err := checkUnique(sections); err != nil {
		return "", err
	}

	var b strings.Builder
	dateNow := now.Format(headerDateFmt)

	if opts.FrontMatter {
		b.WriteString("---\nlayout: default\n---\n\n")
	}
	if opts.Badges {
		writeBadgeHeader(&b)
	}

	if opts.Flavor == types.FlavorList {
		b.WriteString("> Updated on " + dateNow + "\n")
	} else {
		b.WriteString("## Updated on " + dateNow + "\n")
	}
	b.WriteString("> Usage instructions: [here](./docs/README.md#usage)\n\n")

	if opts.TOC {
		writeTOC(&b, sections)
	}

	for _, sec := range sections {
		if len(sec.Papers) == 0 {
			continue
		}
		b.WriteString("## " + sec.Name + "\n\n")

		if opts.Flavor == types.FlavorList {
			for _, p := range sec.Papers {
				b.WriteString(listLine(p))
			}
		} else {
			b.WriteString("|Publish Date|Title|Authors|PDF|Code|\n")
			b.WriteString("|---|---|---|---|---|\n")
			for _, p := range sec.Papers {
				b.WriteString(tableRow(p))
			}
		}
		b.WriteString("\n")

		if opts.BackToTop {
			anchor := topAnchor(dateNow)
			b.WriteString("<p align=right>(<a href=" + anchor + ">back to top</a>)</p>\n\n")
		}
	}

	if opts.Badges {
		writeBadgeLinks(&b, opts.UserName, opts.RepoName)
	}
	return b.String(), nil
}

// checkUnique enforces the merge invariant that no section carries two
// records with the same identifier.
func checkUnique(sections []types.KeywordSection) error {
	for _, sec := range sections {
		seen := make(map[string]bool, len(sec.Papers))
		for _, p := range sec.Papers {
			if seen[p.ID] {
				return &types.RenderError{Section: sec.Name, ID: p.ID}
			}
			seen[p.ID] = true
		}
	}
	return nil
}

// tableRow renders one paper as a markdown table row. The optional summary
// shares the title cell; a missing code link renders as "null".
func tableRow(p types.PaperRecord) string {
	title := "**" + cellText(p.Title) + "**"
	if p.Summary != "" {
		title += "<br><br>" + cellText(p.Summary)
	}
	code := "null"
	if p.CodeURL != "" {
		code = fmt.Sprintf("**[link](%s)**", p.CodeURL)
	}
	return fmt.Sprintf("|**%s**|%s|%s et.al.|[%s](%s)|%s|\n",
		p.Published.Format("2006-01-02"), title, cellText(p.FirstAuthor()),
		p.ID, p.AbstractURL, code)
}

// listLine renders one paper as a bullet line for table-less surfaces.
func listLine(p types.PaperRecord) string {
	line := fmt.Sprintf("- %s, **%s**, %s et.al., Paper: [%s](%s)",
		p.Published.Format("2006-01-02"), cellText(p.Title),
		cellText(p.FirstAuthor()), p.AbstractURL, p.AbstractURL)
	if p.CodeURL != "" {
		line += fmt.Sprintf(", Code: **[%s](%s)**", p.CodeURL, p.CodeURL)
	}
	return line + "\n"
}

// cellText makes a field safe inside a table cell: pipes are escaped so
// they cannot shift column boundaries, and inline math gets its spacing
// normalized.
func cellText(s string) string {
	return strings.ReplaceAll(prettyMath(s), "|", `\|`)
}

var mathSpan = regexp.MustCompile(`\$.*\$`)

// prettyMath re-spaces an inline $...$ math span so markdown renderers do
// not swallow it when it abuts surrounding text.
func prettyMath(s string) string {
	loc := mathSpan.FindStringIndex(s)
	if loc == nil {
		return s
	}
	start, end := loc[0], loc[1]

	leading, trailing := "", ""
	if start > 0 && s[start-1] != ' ' && s[start-1] != '*' {
		leading = " "
	}
	if end < len(s) && s[end] != ' ' && s[end] != '*' {
		trailing = " "
	}
	inner := strings.TrimSpace(s[loc[0]+1 : loc[1]-1])
	return s[:start] + leading + "$" + inner + "$" + trailing + s[end:]
}

// writeTOC emits a collapsible HTML table of contents. Empty sections are
// skipped, matching the body.
func writeTOC(b *strings.Builder, sections []types.KeywordSection) {
	b.WriteString("<details>\n")
	b.WriteString("  <summary>Table of Contents</summary>\n")
	b.WriteString("  <ol>\n")
	for _, sec := range sections {
		if len(sec.Papers) == 0 {
			continue
		}
		anchor := strings.ToLower(strings.ReplaceAll(sec.Name, " ", "-"))
		fmt.Fprintf(b, "    <li><a href=#%s>%s</a></li>\n", anchor, sec.Name)
	}
	b.WriteString("  </ol>\n")
	b.WriteString("</details>\n\n")
}

// topAnchor derives the in-page anchor for the "Updated on" heading.
func topAnchor(dateNow string) string {
	anchor := "#Updated on " + dateNow
	anchor = strings.ReplaceAll(anchor, " ", "-")
	anchor = strings.ReplaceAll(anchor, ".", "")
	return strings.ToLower(anchor)
}

func writeBadgeHeader(b *strings.Builder) {
	b.WriteString("[![Contributors][contributors-shield]][contributors-url]\n")
	b.WriteString("[![Forks][forks-shield]][forks-url]\n")
	b.WriteString("[![Stargazers][stars-shield]][stars-url]\n")
	b.WriteString("[![Issues][issues-shield]][issues-url]\n\n")
}

func writeBadgeLinks(b *strings.Builder, user, repo string) {
	slug := user + "/" + repo
	fmt.Fprintf(b, "[contributors-shield]: https://img.shields.io/github/contributors/%s.svg?style=for-the-badge\n", slug)
	fmt.Fprintf(b, "[contributors-url]: https://github.com/%s/graphs/contributors\n", slug)
	fmt.Fprintf(b, "[forks-shield]: https://img.shields.io/github/forks/%s.svg?style=for-the-badge\n", slug)
	fmt.Fprintf(b, "[forks-url]: https://github.com/%s/network/members\n", slug)
	fmt.Fprintf(b, "[stars-shield]: https://img.shields.io/github/stars/%s.svg?style=for-the-badge\n", slug)
	fmt.Fprintf(b, "[stars-url]: https://github.com/%s/stargazers\n", slug)
	fmt.Fprintf(b, "[issues-shield]: https://img.shields.io/github/issues/%s.svg?style=for-the-badge\n", slug)
	fmt.Fprintf(b, "[issues-url]: https://github.com/%s/issues\n\n", slug)
}
