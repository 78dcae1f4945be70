package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/BerylCAtieno/business-insights-agent/internal/api"
	"github.com/BerylCAtieno/business-insights-agent/internal/config"
	"github.com/BerylCAtieno/business-insights-agent/internal/insights"
	"github.com/BerylCAtieno/business-insights-agent/internal/logging"
)

func main() {
	cfg := config.Load()
	cfg.Log.Format = "json"
	logger := logging.New(cfg.Log, os.Stdout)

	// A missing key is reported per request rather than crashing the function on cold start.
	svc, err := insights.NewServiceFromConfig(context.Background(), cfg.LLM, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create insight provider")
	}

	h := api.NewHandler(svc, logger.WithField("component", "lambda"))
	lambda.Start(h.HandleAPIGateway)
}
