package logger

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/getsentry/sentry-go"
)

// Fields represents structured log fields
type Fields map[string]interface{}

// Info logs an informational message with structured fields
func Info(msg string, fields Fields) {
	log.Printf("[INFO] %s%s", msg, formatFields(fields))
	breadcrumb(sentry.LevelInfo, msg, fields)
}

// Warn logs a warning message with structured fields
func Warn(msg string, fields Fields) {
	log.Printf("[WARN] %s%s", msg, formatFields(fields))
	breadcrumb(sentry.LevelWarning, msg, fields)
}

// Error logs an error message with structured fields and sends it to Sentry
// when a client is bound.
func Error(msg string, err error, fields Fields) {
	log.Printf("[ERROR] %s: %v%s", msg, err, formatFields(fields))

	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		if len(fields) > 0 {
			scope.SetContext("fields", sentry.Context(fields))
		}
		if instrument, ok := fields["instrument"].(string); ok {
			scope.SetTag("instrument", instrument)
		}
		hub.CaptureException(fmt.Errorf("%s: %w", msg, err))
	})
}

func breadcrumb(level sentry.Level, msg string, fields Fields) {
	if sentry.CurrentHub().Client() == nil {
		return
	}
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Type:     "default",
		Category: "log",
		Message:  msg,
		Data:     map[string]interface{}(fields),
		Level:    level,
	})
}

func formatFields(fields Fields) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}
