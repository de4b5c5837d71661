package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/codelink"
	"github.com/pdiddy/arxiv-digest/internal/digest"
	"github.com/pdiddy/arxiv-digest/internal/render"
)

var relinkCmd = &cobra.Command{
	Use:   "relink",
	Short: "Re-resolve missing code links in collected state",
	Long: `Relink walks every output target's persisted state and retries the code
repository lookup for papers that still have none, then republishes the
markdown. It makes no search API calls; run it on a slower schedule than
update (e.g. weekly) to pick up repositories published after the paper.`,
	RunE: runRelink,
}

func init() {
	rootCmd.AddCommand(relinkCmd)
}

func runRelink(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	w := os.Stdout
	resolver := &codelink.Resolver{
		Client:      &http.Client{Timeout: cfg.HTTP.Timeout},
		UserAgent:   cfg.HTTP.UserAgent,
		GitHubToken: loadedSecrets.Get("github-token", ""),
	}

	now := time.Now()
	for _, target := range cfg.Outputs {
		state, err := digest.LoadState(target.StatePath)
		if err != nil {
			return err
		}

		for keyword, papers := range state {
			state[keyword] = resolver.Annotate(ctx, papers, w)
		}

		if err := digest.SaveState(target.StatePath, state); err != nil {
			return err
		}

		sections := digest.MergeSections(state, nil, sectionOrder(cfg, state))
		md, err := render.Render(sections, now, renderOptions(target, cfg))
		if err != nil {
			return err
		}
		if err := render.Publish(target.MarkdownPath, md); err != nil {
			return err
		}
		fmt.Fprintf(w, "relinked %s -> %s\n", target.Name, target.MarkdownPath)
	}
	return nil
}
