package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/digest"
	"github.com/pdiddy/arxiv-digest/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Re-render markdown from collected state without fetching",
	Long: `Render rebuilds every output target's markdown file from its persisted
state. No network calls are made; use it after hand-editing a state file or
changing render options.`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	now := time.Now()
	for _, target := range cfg.Outputs {
		state, err := digest.LoadState(target.StatePath)
		if err != nil {
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
		fmt.Fprintf(os.Stdout, "rendered %s -> %s\n", target.Name, target.MarkdownPath)
	}
	return nil
}
