package serve

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/dtnitsch/site-growth-analyzer/internal/common"
	"github.com/dtnitsch/site-growth-analyzer/internal/server"
	"github.com/dtnitsch/site-growth-analyzer/pkg/analyzer"
	"github.com/dtnitsch/site-growth-analyzer/pkg/metrics"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func ServeAction(c *cli.Context) error {
	rt, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer rt.Close()

	cfg := rt.Config
	if c.IsSet("addr") {
		cfg.Addr = c.String("addr")
	}
	if c.IsSet("metrics-addr") {
		cfg.MetricsAddr = c.String("metrics-addr")
	}
	if c.IsSet("allowed-origins") {
		cfg.AllowedOrigins = c.StringSlice("allowed-origins")
	}

	logger := rt.Logger
	logger.Info("Starting analyzer service",
		slog.String("addr", cfg.Addr),
		slog.String("metrics_addr", cfg.MetricsAddr),
		slog.String("go_version", runtime.Version()),
		slog.Int("cta_keywords", len(rt.Rules.CTAKeywords)))

	m := metrics.New()
	a := analyzer.New(rt.NewFetcher(), rt.Rules,
		analyzer.WithLogger(logger),
		analyzer.WithRecorder(m))
	api := server.New(a, m, cfg, logger)

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = server.NewMetricsServer(cfg.MetricsAddr, m)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := api.Start(gCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if metricsServer != nil {
		g.Go(func() error {
			logger.Info("Exposing Prometheus metrics", slog.String("addr", cfg.MetricsAddr))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down analyzer service")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		err := api.Shutdown(shutdownCtx)
		if metricsServer != nil {
			err = errors.Join(err, metricsServer.Shutdown(shutdownCtx))
		}
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("Service stopped with error", slog.Any("error", err))
		return err
	}
	logger.Info("Analyzer service stopped")
	return nil
}
