package main

import (
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/codelink"
	"github.com/pdiddy/arxiv-digest/internal/digest"
	"github.com/pdiddy/arxiv-digest/internal/render"
	"github.com/pdiddy/arxiv-digest/internal/search"
	"github.com/pdiddy/arxiv-digest/internal/summarize"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetch new papers, merge with collected state, publish markdown",
	Long: `Update runs the full daily pipeline: one arXiv query per configured
keyword, normalization into canonical records, code repository and summary
annotation, merge with each output target's persisted state, and markdown
publication. A failed keyword is logged and skipped; the run still exits 0.`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().Bool("skip-code-links", false, "do not resolve code repository links")
	updateCmd.Flags().Bool("skip-summaries", false, "do not call the AI summary API")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	queries, err := search.BuildQueries(cfg)
	if err != nil {
		return err
	}

	skipLinks, _ := cmd.Flags().GetBool("skip-code-links")
	skipSummaries, _ := cmd.Flags().GetBool("skip-summaries")

	ctx := cmd.Context()
	w := os.Stdout
	client := &http.Client{Timeout: cfg.HTTP.Timeout}

	backend := &search.ArxivBackend{Client: client}
	fetched := search.FetchAll(ctx, backend, queries, cfg, w)

	var resolver *codelink.Resolver
	if cfg.CodeLinks && !skipLinks {
		resolver = &codelink.Resolver{
			Client:      client,
			UserAgent:   cfg.HTTP.UserAgent,
			GitHubToken: loadedSecrets.Get("github-token", ""),
		}
	}

	var summarizer summarize.Backend
	if cfg.Summary.Enabled && !skipSummaries {
		if cfg.Summary.APIKey == "" {
			fmt.Fprintln(w, "warning: summaries enabled but no API key found, skipping")
		} else {
			summarizer = summarize.NewOpenAIBackend(cfg.Summary)
		}
	}

	fresh := make(map[string][]types.PaperRecord, len(queries))
	for _, q := range queries {
		raw, ok := fetched.Results[q.Keyword]
		if !ok {
			continue
		}
		records := digest.Normalize(raw, w)
		if resolver != nil {
			records = resolver.Annotate(ctx, records, w)
		}
		if summarizer != nil {
			records = summarize.Annotate(ctx, summarizer, records, w)
		}
		fresh[q.Keyword] = records
	}

	now := time.Now()
	for _, target := range cfg.Outputs {
		if err := updateTarget(target, fresh, cfg, now); err != nil {
			return err
		}
		fmt.Fprintf(w, "published %s -> %s\n", target.Name, target.MarkdownPath)
	}

	if len(fetched.Failed) > 0 {
		fmt.Fprintf(w, "done with %d keyword(s) skipped: %v\n", len(fetched.Failed), fetched.Failed)
	}
	return nil
}

// updateTarget merges fresh records into one output target's state and
// republishes its markdown. State and render failures are fatal.
func updateTarget(target types.OutputTarget, fresh map[string][]types.PaperRecord, cfg types.Config, now time.Time) error {
	state, err := digest.LoadState(target.StatePath)
	if err != nil {
		return err
	}

	sections := digest.MergeSections(state, fresh, sectionOrder(cfg, state))
	if err := digest.SaveState(target.StatePath, digest.ToState(sections)); err != nil {
		return err
	}

	md, err := render.Render(sections, now, renderOptions(target, cfg))
	if err != nil {
		return err
	}
	return render.Publish(target.MarkdownPath, md)
}

// sectionOrder lists configured keywords in config order, then any extra
// keywords still present in the state (alphabetically) so dropping a
// keyword from the config never silently discards its collected papers.
func sectionOrder(cfg types.Config, state digest.State) []string {
	order := make([]string, 0, len(cfg.Keywords))
	seen := make(map[string]bool, len(cfg.Keywords))
	for _, kw := range cfg.Keywords {
		order = append(order, kw.Name)
		seen[kw.Name] = true
	}

	var extras []string
	for name := range state {
		if !seen[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	return append(order, extras...)
}

func renderOptions(target types.OutputTarget, cfg types.Config) render.Options {
	return render.Options{
		Flavor:      target.Flavor,
		FrontMatter: target.FrontMatter,
		Badges:      target.ShowBadges,
		TOC:         target.TOC,
		BackToTop:   target.BackToTop,
		UserName:    cfg.UserName,
		RepoName:    cfg.RepoName,
	}
}
