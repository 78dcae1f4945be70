// Package api exposes the insight generation operation over HTTP.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BerylCAtieno/business-insights-agent/internal/insights"
	"github.com/BerylCAtieno/business-insights-agent/internal/models"
)

// InsightsPath is the route of the insight generation endpoint.
const InsightsPath = "/api/generate-insights"

// Response messages
const (
	MsgMethodNotAllowed = "Method not allowed"
	MsgConfigError      = "Server configuration error"
	MsgInvalidBody      = "Invalid request body"
	MsgGenerationFailed = "Failed to generate insights"
)

// Generator produces insights for a decoded business profile
type Generator interface {
	CheckConfig() error
	Generate(ctx context.Context, profile *models.BusinessProfile) (string, error)
}

type Handler struct {
	generator Generator
	logger    *logrus.Entry
}

func NewHandler(generator Generator, logger *logrus.Entry) *Handler {
	if logger == nil {
		logger = logrus.WithField("component", "api")
	}
	return &Handler{
		generator: generator,
		logger:    logger,
	}
}

// Process runs one insight request and returns the HTTP status and JSON payload.
// It is shared by the gin route and the Lambda adapter. The body is only read
// once the method and configuration checks have passed.
func (h *Handler) Process(ctx context.Context, method string, body io.Reader) (int, any) {
	if method != http.MethodPost {
		return http.StatusMethodNotAllowed, models.ErrorResponse{Error: MsgMethodNotAllowed}
	}

	if err := h.generator.CheckConfig(); err != nil {
		return h.errorResponse(err)
	}

	data, err := insights.ReadBody(body)
	if err != nil {
		return h.errorResponse(err)
	}

	profile, err := insights.DecodeProfile(data)
	if err != nil {
		return h.errorResponse(err)
	}

	text, err := h.generator.Generate(ctx, profile)
	if err != nil {
		return h.errorResponse(err)
	}

	return http.StatusOK, models.InsightResponse{Success: true, Data: text}
}

// GenerateInsights is the gin binding of Process.
func (h *Handler) GenerateInsights(c *gin.Context) {
	var body io.Reader
	if c.Request.Body != nil {
		body = http.MaxBytesReader(c.Writer, c.Request.Body, insights.MaxBodyBytes)
	}

	status, payload := h.Process(c.Request.Context(), c.Request.Method, body)
	c.JSON(status, payload)
}

func (h *Handler) errorResponse(err error) (int, models.ErrorResponse) {
	var configErr *insights.ConfigurationError
	var validationErr *insights.ValidationError
	var providerErr *insights.ProviderError

	switch {
	case errors.As(err, &configErr):
		h.logger.WithError(err).Error("Missing provider API key")
		return http.StatusInternalServerError, models.ErrorResponse{Error: MsgConfigError}
	case errors.As(err, &validationErr):
		h.logger.WithError(err).Warn("Rejected request body")
		return insights.HTTPStatus(err), models.ErrorResponse{
			Error:  MsgInvalidBody,
			Fields: validationErr.Fields,
		}
	case errors.As(err, &providerErr):
		h.logger.WithError(err).WithField("provider", providerErr.Provider).Error("Error in insight generation")
		return http.StatusInternalServerError, models.ErrorResponse{
			Error:   MsgGenerationFailed,
			Details: providerErr.Message(),
		}
	default:
		h.logger.WithError(err).Error("Error in insight generation")
		return http.StatusInternalServerError, models.ErrorResponse{
			Error:   MsgGenerationFailed,
			Details: err.Error(),
		}
	}
}
