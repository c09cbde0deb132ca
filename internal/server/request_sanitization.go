package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/wethinkt/go-swatchsheet/internal/runlog"
)

// redactingLogFormatter wraps chi's default formatter and redacts sensitive query params.
type redactingLogFormatter struct {
	base middleware.LogFormatter
}

func (f *redactingLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return f.base.NewLogEntry(redactRequestForLogging(r))
}

// requestLogger logs each request to the run log with tokens redacted.
func requestLogger() func(http.Handler) http.Handler {
	return middleware.RequestLogger(&redactingLogFormatter{
		base: &middleware.DefaultLogFormatter{Logger: logAdapter{}, NoColor: true},
	})
}

// logAdapter sends chi request logs to the run log.
type logAdapter struct{}

func (logAdapter) Print(v ...any) {
	runlog.Log.Info(fmt.Sprint(v...))
}

func redactRequestForLogging(r *http.Request) *http.Request {
	if r == nil || r.URL == nil || r.URL.RawQuery == "" {
		return r
	}

	query := r.URL.Query()
	changed := false
	for key := range query {
		if isSensitiveQueryKey(key) {
			query.Set(key, "[REDACTED]")
			changed = true
		}
	}
	if !changed {
		return r
	}

	cloned := r.Clone(r.Context())
	cloned.URL.RawQuery = query.Encode()
	cloned.RequestURI = cloned.URL.RequestURI()
	return cloned
}

func isSensitiveQueryKey(key string) bool {
	switch strings.ToLower(key) {
	case "token", "access_token", "authorization", "auth", "api_key", "apikey":
		return true
	default:
		return false
	}
}
