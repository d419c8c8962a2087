// Package logger builds the structured logger used by the booking and
// payment flows.  JSON output keeps the entries machine-collectable;
// compensation failures are logged at error level with enough fields to
// locate the orphaned calendar event.
package logger

import (
	"github.com/sirupsen/logrus"
)

// New returns a JSON logrus logger at info level.
func New() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	log.SetLevel(logrus.InfoLevel)
	return log
}
