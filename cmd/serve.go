package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"handlescan/internal/api"
	"handlescan/internal/config"
	"handlescan/internal/scanner"
	"handlescan/internal/worker"
	"handlescan/pkg/logger"
	"handlescan/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

// serveCommand constructs the 'serve' subcommand that starts the API server
// and, when the database is enabled, the background scan workers.
func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			mp, err := metrics.NewMeterProvider(prometheus.DefaultRegisterer)
			if err != nil {
				logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
			}
			// probe client transports report through the global provider
			otel.SetMeterProvider(mp)
			recorder, err := metrics.New(mp)
			if err != nil {
				logger.Fatal(ctx, "could not create metrics", zap.Error(err))
			}

			options := scanner.NewOptions(cfg)
			options.Metrics = recorder
			deps := api.Deps{MeterProvider: mp}

			var stopWorkers func(ctx context.Context)
			if cfg.Database.Enabled {
				strg, closeStrg := getPostgres(ctx, cfg)
				defer closeStrg()

				options.Sink = strg
				deps.Queue = scanner.NewQueue(strg, scanner.NewQueueOptions(cfg))
				deps.History = strg

				engine, err := newEngine(cfg, options)
				if err != nil {
					logger.Fatal(ctx, "could not create scan engine", zap.Error(err))
				}
				deps.Scanner = engine

				// jobs keep running until Stop, not until the signal
				riverClient, err := worker.Start(context.WithoutCancel(ctx), strg.Pool, engine, worker.NewOptions(cfg))
				if err != nil {
					logger.Fatal(ctx, "could not start workers", zap.Error(err))
				}
				stopWorkers = func(ctx context.Context) {
					logger.Info(ctx, "stopping workers...")
					if err := riverClient.Stop(ctx); err != nil {
						logger.Error(ctx, "could not stop workers", zap.Error(err))
					}
				}
			} else {
				engine, err := newEngine(cfg, options)
				if err != nil {
					logger.Fatal(ctx, "could not create scan engine", zap.Error(err))
				}
				deps.Scanner = engine
				logger.Info(ctx, "database disabled, scan history and batches are unavailable")
			}

			stopWebserver := setupServer(ctx, cfg, deps)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			if stopWorkers != nil {
				stopWorkers(shutdownCtx)
			}
			if err := mp.Shutdown(shutdownCtx); err != nil {
				logger.Warn(shutdownCtx, "could not shut down meter provider", zap.Error(err))
			}
		},
	}

	return cmd
}
