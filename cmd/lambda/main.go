package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/awmpietro/tracecheck/internal/app"
	"github.com/awmpietro/tracecheck/internal/config"
	"github.com/awmpietro/tracecheck/internal/logging"
	"github.com/awmpietro/tracecheck/internal/property"
	"github.com/awmpietro/tracecheck/internal/property/cache"
	"github.com/awmpietro/tracecheck/internal/transport/lambdatransport"
)

func main() {
	cfg := config.Load()

	logger, err := logging.Init(cfg.LogProduction, cfg.LogLevel)
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()

	latencyObserver := property.NewAsyncCheckLatencyObserver(property.NewCheckLatencyLogger(logger), cfg.ObsBuffer)
	defer latencyObserver.Close()
	engine := property.NewEngine(
		property.WithCheckLatencyObserver(latencyObserver),
		property.WithMaxSamples(cfg.MaxSamples),
	)

	svc := app.NewService(property.NewCompiler(), engine, cache.NewInMemory(cfg.CacheMaxItems))
	h := lambdatransport.NewHandler(svc)

	lambda.Start(h.Check)
}
