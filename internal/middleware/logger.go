package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RequestLogger logs one zerolog entry per request. Panics are logged with
// their stack; recovering is left to chimw.Recoverer.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return chimw.RequestLogger(&zerologFormatter{logger: logger})
}

type zerologFormatter struct {
	logger zerolog.Logger
}

func (f *zerologFormatter) NewLogEntry(r *http.Request) chimw.LogEntry {
	l := f.logger.With().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("host", r.Host).
		Str("remote", r.RemoteAddr)
	if id := chimw.GetReqID(r.Context()); id != "" {
		l = l.Str("request_id", id)
	}
	return &zerologEntry{logger: l.Logger()}
}

type zerologEntry struct {
	logger zerolog.Logger
}

func (e *zerologEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	ev := e.logger.Info()
	if status >= http.StatusInternalServerError {
		ev = e.logger.Error()
	}
	ev.Int("status", status).
		Int("bytes", bytes).
		Dur("elapsed", elapsed).
		Msg("Request")
}

func (e *zerologEntry) Panic(v interface{}, stack []byte) {
	e.logger.Error().
		Interface("panic", v).
		Bytes("stack", stack).
		Msg("Request panicked")
}
