package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yousafroja/comment-analyzer/internal/config"
	"github.com/yousafroja/comment-analyzer/internal/logging"
)

// commandContext carries what every subcommand needs once the environment is loaded.
type commandContext struct {
	cfg    *config.Config
	logger zerolog.Logger

	loadConfig func() (*config.Config, error)
}

func newCommandContext() *commandContext {
	return &commandContext{loadConfig: config.Load}
}

func (c *commandContext) ensureConfig() error {
	if c.cfg != nil {
		return nil
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.logger = logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	return nil
}

func newRootCommand() *cobra.Command {
	return newRootCommandWith(newCommandContext())
}

func newRootCommandWith(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "comment-analyzer",
		Short:         "Analyze the comments of a YouTube video",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newAnalyzeCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))

	return rootCmd
}
