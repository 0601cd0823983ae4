package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fintrack-ro/statement-ingest/cmd/api"
	"github.com/fintrack-ro/statement-ingest/pkg/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	deps, err := api.InitDependencies(cfg, logger)
	if err != nil {
		logger.Error("initializing dependencies", slog.Any("error", err))
		os.Exit(1)
	}
	defer deps.Close()

	if err := deps.Scheduler.Start(); err != nil {
		logger.Error("starting scheduler", slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.Observability.MetricsEnabled {
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Observability.MetricsPort)
			logger.Info("metrics endpoint listening", slog.String("addr", addr))
			if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
				logger.Error("metrics endpoint failed", slog.Any("error", err))
			}
		}()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")
}
