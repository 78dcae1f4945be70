package api

import (
	"bytes"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the per-request id echoed back to the caller.
const RequestIDHeader = "X-Request-ID"

// maxLoggedBody caps how much of a request body is copied into debug logs.
const maxLoggedBody = 4 << 10

// RequestLoggingMiddleware logs all incoming requests
func RequestLoggingMiddleware(logger *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)

		log := logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		})

		if logger.Logger.IsLevelEnabled(logrus.DebugLevel) && c.Request.Body != nil {
			prefix, err := io.ReadAll(io.LimitReader(c.Request.Body, maxLoggedBody))
			if err != nil {
				log.WithError(err).Warn("Failed to read request body for logging")
			}
			log.WithField("body", string(prefix)).Debug("Incoming request")

			// Restore the body for the handler; the unread remainder follows the logged prefix.
			c.Request.Body = readCloser{
				Reader: io.MultiReader(bytes.NewReader(prefix), c.Request.Body),
				Closer: c.Request.Body,
			}
		}

		c.Next()

		log.WithFields(logrus.Fields{
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("Request completed")
	}
}

type readCloser struct {
	io.Reader
	io.Closer
}
