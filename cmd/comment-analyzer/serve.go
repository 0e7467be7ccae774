package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yousafroja/comment-analyzer/internal/api"
)

const (
	readTimeout     = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis pipeline over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := ctx.ensureConfig(); err != nil {
				return err
			}

			if addr == "" {
				addr = ctx.cfg.APIAddr
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p, cleanup, err := buildPipeline(runCtx, ctx.cfg, &ctx.logger)
			if err != nil {
				return err
			}
			defer cleanup()

			log := ctx.logger
			router := api.NewRouter(api.NewSession(p, ctx.cfg.MaxComments), log)

			srv := &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: readTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", addr).Msg("Server listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-runCtx.Done():
			}

			log.Info().Msg("Shutting down server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}

			log.Info().Msg("Server exited gracefully")

			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default API_ADDR)")

	return cmd
}
