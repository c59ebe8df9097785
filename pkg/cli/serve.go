package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/vertag/vertag/pkg/cli/config"
	controller "github.com/vertag/vertag/pkg/controller/http"
	githubinfra "github.com/vertag/vertag/pkg/infra/github"
	"github.com/vertag/vertag/pkg/usecase"
	"github.com/vertag/vertag/pkg/utils/async"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		githubCfg config.GitHub
		checkCfg  config.Check
		sentryCfg config.Sentry
	)

	flags := append(serverCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, checkCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := sentryCfg.Configure(); err != nil {
				return err
			}

			candidates, err := checkCfg.Candidates()
			if err != nil {
				return goerr.Wrap(err, "invalid manifest configuration")
			}

			clientOpts := []githubinfra.Option{
				githubinfra.WithRetryPolicy(checkCfg.Policy()),
				githubinfra.WithTimeout(githubCfg.APITimeout),
			}
			if githubCfg.APIBaseURL != "" {
				clientOpts = append(clientOpts, githubinfra.WithBaseURL(githubCfg.APIBaseURL))
			}

			forge, err := githubinfra.NewClient(githubCfg.Token, clientOpts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			validator := usecase.NewValidator(forge, candidates)
			reporter := usecase.NewReporter(forge, checkCfg.ContextKey)
			webhookUC := usecase.NewWebhook(validator, reporter)

			server, err := controller.NewServer(
				ctx,
				webhookUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(githubCfg.WebhookSecret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			logger.Info("starting server",
				slog.String("addr", serverCfg.Addr),
				slog.Int("manifest_candidates", len(candidates)),
				slog.String("check_context", checkCfg.ContextKey),
			)

			async.Dispatch(ctx, func(ctx context.Context) error {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return goerr.Wrap(err, "HTTP server error")
				}
				return nil
			})

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("context cancelled, shutting down")
			case sig := <-sigChan:
				logger.Info("signal received, shutting down", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("server shutdown complete")
			return nil
		},
	}
}
