package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/awmpietro/tracecheck/internal/app"
	"github.com/awmpietro/tracecheck/internal/config"
	"github.com/awmpietro/tracecheck/internal/logging"
	"github.com/awmpietro/tracecheck/internal/property"
	"github.com/awmpietro/tracecheck/internal/property/cache"
	"github.com/awmpietro/tracecheck/internal/transport/httptransport"
)

func main() {
	cfg := config.Load()

	logger, err := logging.Init(cfg.LogProduction, cfg.LogLevel)
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()

	metrics, err := property.NewCheckMetrics(stdprometheus.DefaultRegisterer)
	if err != nil {
		zap.L().Fatal("register metrics", zap.Error(err))
	}
	latencyObserver := property.NewAsyncCheckLatencyObserver(
		property.CheckObservers{property.NewCheckLatencyLogger(logger), metrics},
		cfg.ObsBuffer,
	)
	defer latencyObserver.Close()

	engine := property.NewEngine(
		property.WithCheckLatencyObserver(latencyObserver),
		property.WithMaxSamples(cfg.MaxSamples),
	)
	svc := app.NewService(property.NewCompiler(), engine, cache.NewInMemory(cfg.CacheMaxItems))
	h := httptransport.NewHandler(svc)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httptransport.NewRouter(h, promhttp.Handler()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		zap.L().Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("shutdown", zap.Error(err))
	}
	zap.L().Info("dropped latency observations", zap.Uint64("count", latencyObserver.Dropped()))
}
