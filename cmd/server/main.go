package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/BerylCAtieno/business-insights-agent/internal/a2a"
	"github.com/BerylCAtieno/business-insights-agent/internal/api"
	"github.com/BerylCAtieno/business-insights-agent/internal/config"
	"github.com/BerylCAtieno/business-insights-agent/internal/insights"
	"github.com/BerylCAtieno/business-insights-agent/internal/logging"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Log, os.Stderr)

	// A long-running server fails fast instead of answering every request with a config error.
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	svc, err := insights.NewServiceFromConfig(context.Background(), cfg.LLM, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create insight provider")
	}
	defer svc.Close()

	gin.SetMode(cfg.Server.GinMode)
	router := api.NewRouter(
		api.NewHandler(svc, logger.WithField("component", "api")),
		a2a.NewHandler(svc, logger.WithField("component", "a2a")),
		logger.WithField("component", "http"),
	)

	port := cfg.Server.Port
	logger.WithFields(logrus.Fields{
		"port":     port,
		"provider": cfg.LLM.Provider,
		"model":    cfg.LLM.Model,
	}).Info("Business Insights Agent starting")
	logger.Infof("Insights endpoint available at: http://localhost:%s%s", port, api.InsightsPath)
	logger.Infof("A2A endpoint available at: http://localhost:%s%s", port, a2a.Path)

	if err := router.Run(":" + port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
