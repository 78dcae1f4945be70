// Package handler is the Vercel serverless entry point for /api/generate-insights.
package handler

import (
	"context"
	"net/http"
	"os"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/business-insights-agent/internal/api"
	"github.com/BerylCAtieno/business-insights-agent/internal/config"
	"github.com/BerylCAtieno/business-insights-agent/internal/insights"
	"github.com/BerylCAtieno/business-insights-agent/internal/logging"
)

var (
	engine     *gin.Engine
	engineOnce sync.Once
)

// Handler is the entry point for Vercel serverless functions
func Handler(w http.ResponseWriter, r *http.Request) {
	engineOnce.Do(func() {
		engine = newEngine()
	})
	engine.ServeHTTP(w, r)
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	cfg := config.Load()
	logger := logging.New(cfg.Log, os.Stdout)

	svc, err := insights.NewServiceFromConfig(context.Background(), cfg.LLM, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to create insight provider")
		svc = insights.NewService(nil, logger)
	}

	return api.NewRouter(api.NewHandler(svc, logger), nil, logger)
}
