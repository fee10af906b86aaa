package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dailydose/dailydose/internal/adapters/http"
	"github.com/dailydose/dailydose/internal/adapters/http/handlers"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serves the DailyDose API under /api/v1 and the operational routes
under /-/ (live, ready, build, metrics) until SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), opts, func(rt *runtime) error {
				return serve(cmd.Context(), rt)
			})
		},
	}
}

func serve(ctx context.Context, rt *runtime) error {
	rt.logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", rt.cfg.App.Environment),
		slog.String("storage", rt.cfg.Storage.Backend),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	server := http.New(&rt.cfg.Server, rt.logger)
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:      rt.logger,
		ServiceName: rt.cfg.App.Name,
		Timeout:     rt.cfg.Server.RequestTimeout,
		Registerer:  reg,
		Health: handlers.NewHealthHandler(rt.health,
			handlers.NewBuildInfo(Version, Commit, BuildTime), reg),
		Services: http.Services{
			Quotes:    rt.quotes,
			Favorites: rt.favorites,
			Cache:     rt.cache,
			Profile:   rt.profile,
			Settings:  rt.settings,
			Reminders: rt.reminders,
		},
	})

	serverErr := server.Start()

	select {
	case err, ok := <-serverErr:
		if ok && err != nil {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	case <-ctx.Done():
		rt.logger.Info("received shutdown signal")
	}

	timeout := rt.cfg.Server.ShutdownTimeout
	rt.logger.Info("initiating graceful shutdown", slog.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	rt.logger.Info("shutdown complete")

	return nil
}
