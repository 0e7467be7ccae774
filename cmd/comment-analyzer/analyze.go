package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yousafroja/comment-analyzer/internal/comments"
	"github.com/yousafroja/comment-analyzer/internal/report"
)

type analyzeOptions struct {
	maxComments int
	search      string
	sentiment   string
	json        bool
}

func (o analyzeOptions) validate() error {
	if o.maxComments < 0 {
		return errors.New("--max-comments must not be negative")
	}

	if o.sentiment == "" || o.sentiment == comments.AllSentiments {
		return nil
	}

	if _, ok := comments.ParseSentiment(o.sentiment); !ok {
		return fmt.Errorf("--sentiment must be one of Positive, Negative, Neutral or %q", comments.AllSentiments)
	}

	return nil
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze <video-url-or-id>",
		Short: "Fetch, translate and analyze the comments of one video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}

			if err := ctx.ensureConfig(); err != nil {
				return err
			}

			maxComments := ctx.cfg.MaxComments
			if opts.maxComments > 0 {
				maxComments = opts.maxComments
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p, cleanup, err := buildPipeline(runCtx, ctx.cfg, &ctx.logger)
			if err != nil {
				return err
			}
			defer cleanup()

			analysis, err := p.Run(runCtx, args[0], maxComments)
			if err != nil {
				return err
			}

			r := report.Build(analysis, report.Options{Search: opts.search, Sentiment: opts.sentiment})
			if opts.json {
				return report.WriteJSON(cmd.OutOrStdout(), r)
			}

			return report.WriteText(cmd.OutOrStdout(), r)
		},
	}

	cmd.Flags().IntVar(&opts.maxComments, "max-comments", 0, "Maximum number of comments to fetch (default MAX_COMMENTS)")
	cmd.Flags().StringVar(&opts.search, "search", "", "Only list comments matching this case-insensitive pattern")
	cmd.Flags().StringVar(&opts.sentiment, "sentiment", comments.AllSentiments, "Only list comments with this sentiment")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Write the report as JSON")

	return cmd
}
