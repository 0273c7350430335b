// Package logger configures the process-wide logrus logger.
package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger and returns it. The game
// writes logs to stderr or a file so they never mix with the story text.
// An unknown level falls back to info.
func Setup(level, format string, out io.Writer) *logrus.Logger {
	log := logrus.StandardLogger()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    true,
			DisableColors:    true,
			QuoteEmptyFields: true,
		})
	}

	log.SetOutput(out)
	return log
}
