package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BerylCAtieno/business-insights-agent/internal/a2a"
)

// NewRouter wires every endpoint of the agent.
// agentHandler may be nil when the A2A surface is not wanted.
func NewRouter(h *Handler, agentHandler *a2a.Handler, logger *logrus.Entry) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware(logger))

	// Method checking happens in the handler so every verb gets the JSON 405 body.
	router.Any(InsightsPath, h.GenerateInsights)

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if agentHandler != nil {
		router.GET("/.well-known/agent.json", agentHandler.ServeAgentCard)
		router.POST(a2a.Path, agentHandler.HandleInsights)
	}

	return router
}
