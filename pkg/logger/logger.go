package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger so the rest of the codebase does not depend on
// logrus directly.
type Logger struct {
	*logrus.Logger
}

// Entry wraps a logrus entry carrying structured fields.
type Entry struct {
	*logrus.Entry
}

// NewLogger creates a configured logger. Format is "json" or "text".
func NewLogger(level, format string) *Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return &Logger{Logger: log}
}

// WithField adds a single structured field.
func (l *Logger) WithField(key string, value interface{}) *Entry {
	return &Entry{Entry: l.Logger.WithField(key, value)}
}

// WithFields adds multiple structured fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Entry {
	return &Entry{Entry: l.Logger.WithFields(logrus.Fields(fields))}
}

// WithError adds an error field.
func (l *Logger) WithError(err error) *Entry {
	return &Entry{Entry: l.Logger.WithError(err)}
}

// WithField adds a field to an existing entry.
func (e *Entry) WithField(key string, value interface{}) *Entry {
	return &Entry{Entry: e.Entry.WithField(key, value)}
}

// WithFields adds fields to an existing entry.
func (e *Entry) WithFields(fields map[string]interface{}) *Entry {
	return &Entry{Entry: e.Entry.WithFields(logrus.Fields(fields))}
}

// WithError adds an error field to an existing entry.
func (e *Entry) WithError(err error) *Entry {
	return &Entry{Entry: e.Entry.WithError(err)}
}
