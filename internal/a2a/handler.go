// Package a2a serves insight generation as an A2A JSON-RPC agent.
package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/BerylCAtieno/business-insights-agent/internal/agent"
	"github.com/BerylCAtieno/business-insights-agent/internal/insights"
	"github.com/BerylCAtieno/business-insights-agent/internal/models"
)

// Path is the JSON-RPC endpoint of the agent.
const Path = "/a2a/insights"

const (
	msgNoProfile       = "Please provide a business profile or a description of your business to generate insights."
	msgConfigError     = "Server configuration error"
	msgGenerationError = "Failed to generate insights"
)

var errNoProfile = errors.New("no business profile in message")

// Generator produces insights for a decoded business profile
type Generator interface {
	Generate(ctx context.Context, profile *models.BusinessProfile) (string, error)
}

type Handler struct {
	generator Generator
	logger    *logrus.Entry
}

func NewHandler(generator Generator, logger *logrus.Entry) *Handler {
	if logger == nil {
		logger = logrus.WithField("component", "a2a")
	}
	return &Handler{
		generator: generator,
		logger:    logger,
	}
}

// HandleInsights processes A2A messages
func (h *Handler) HandleInsights(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, insights.MaxBodyBytes)

	var rpcReq JSONRPCRequest
	if err := c.ShouldBindJSON(&rpcReq); err != nil {
		h.logger.WithError(err).Warn("Failed to decode request as JSON-RPC")
		h.sendErrorResponse(c, nil, "Parse error", CodeParseError)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.logger.WithField("jsonrpc", rpcReq.JSONRPC).Warn("Invalid JSON-RPC version")
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "message/send", "agent/task":
		h.handleTask(c, rpcReq)
	default:
		h.logger.WithField("method", rpcReq.Method).Warn("Unknown JSON-RPC method")
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

// ServeAgentCard serves the agent card using Gin
func (h *Handler) ServeAgentCard(c *gin.Context) {
	if err := agent.LoadAgentCard(); err != nil {
		h.logger.WithError(err).Error("Error loading agent card")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}

	c.Data(http.StatusOK, "application/json", agent.AgentCardData)
}

func (h *Handler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	var msgParams MessageParams
	if err := json.Unmarshal(rpcReq.Params, &msgParams); err != nil {
		h.logger.WithError(err).Warn("Failed to unmarshal params")
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	msg := msgParams.Message
	taskID := msg.TaskID
	if taskID == "" {
		taskID = uuid.New().String()
	}

	profile, err := extractProfile(msg)
	if err != nil {
		h.logger.WithError(err).Info("No usable business profile in message")
		text := msgNoProfile
		var validationErr *insights.ValidationError
		if errors.As(err, &validationErr) {
			text = fmt.Sprintf("Invalid business profile: %v", validationErr)
		}
		h.sendSuccessResponse(c, rpcReq.ID, createErrorTaskResult(taskID, msg.ContextID, text))
		return
	}

	text, err := h.generator.Generate(c.Request.Context(), profile)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate insights")
		h.sendSuccessResponse(c, rpcReq.ID, createErrorTaskResult(taskID, msg.ContextID, failureText(err)))
		return
	}

	h.sendSuccessResponse(c, rpcReq.ID, createSuccessTaskResult(taskID, msg.ContextID, text))
}

// extractProfile prefers a structured data part, then JSON text, then treats
// free text as the business description.
func extractProfile(msg A2AMessage) (*models.BusinessProfile, error) {
	var texts []string

	for _, part := range msg.Parts {
		switch part.Kind {
		case "data":
			data := bytes.TrimSpace(part.Data)
			if len(data) > 0 && !bytes.Equal(data, []byte("null")) {
				return insights.DecodeProfile(data)
			}
		case "text":
			if text := strings.TrimSpace(part.Text); text != "" {
				texts = append(texts, text)
			}
		}
	}

	joined := strings.TrimSpace(strings.Join(texts, " "))
	if joined == "" {
		return nil, errNoProfile
	}
	if strings.HasPrefix(joined, "{") {
		return insights.DecodeProfile([]byte(joined))
	}
	return &models.BusinessProfile{Description: joined}, nil
}

func failureText(err error) string {
	var configErr *insights.ConfigurationError
	if errors.As(err, &configErr) {
		return msgConfigError
	}
	var providerErr *insights.ProviderError
	if errors.As(err, &providerErr) {
		return fmt.Sprintf("%s: %s", msgGenerationError, providerErr.Message())
	}
	return fmt.Sprintf("%s: %v", msgGenerationError, err)
}

func createSuccessTaskResult(taskID, contextID, insightText string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				Parts:     []MessagePart{TextPart(insightText)},
			},
		},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.New().String(),
				Name:       "Business Growth Insights",
				Parts:      []MessagePart{TextPart(insightText)},
			},
		},
	}
}

func createErrorTaskResult(taskID, contextID, errorMsg string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateFailed,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				Parts:     []MessagePart{TextPart(errorMsg)},
			},
		},
	}
}

func (h *Handler) sendSuccessResponse(c *gin.Context, id any, result TaskResult) {
	h.logger.WithFields(logrus.Fields{
		"task_id": result.ID,
		"state":   result.Status.State,
	}).Info("Sending task result")

	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

func (h *Handler) sendErrorResponse(c *gin.Context, id any, message string, code int) {
	// JSON-RPC errors are sent with 200 OK
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
		},
	})
}
