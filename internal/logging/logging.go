// Package logging builds the logrus logger shared by every entry point.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/BerylCAtieno/business-insights-agent/internal/config"
)

// New returns a logger entry tagged with the service name.
// Unknown levels fall back to info.
func New(cfg config.LogConfig, out io.Writer) *logrus.Entry {
	logger := logrus.New()
	if out != nil {
		logger.SetOutput(out)
	}

	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger.WithField("service", "business-insights-agent")
}
