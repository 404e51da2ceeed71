package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/getmockd/sessiontrace/pkg/httputil"
	"github.com/getmockd/sessiontrace/pkg/metrics"
	"github.com/getmockd/sessiontrace/pkg/requestid"
)

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader captures the status code and writes it to the underlying ResponseWriter.
func (w *statusRecorder) WriteHeader(code int) {
	if !w.written {
		w.statusCode = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}

// Flush implements http.Flusher if the underlying ResponseWriter supports it.
func (w *statusRecorder) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// accessLog writes one log line per request and records request metrics.
// Session and request identifiers come from the request context.
func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			log.InfoContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.statusCode,
				"duration", duration,
			)

			if metrics.RequestsTotal != nil {
				if vec, err := metrics.RequestsTotal.WithLabels(r.Method, strconv.Itoa(rec.statusCode)); err == nil {
					_ = vec.Inc()
				}
			}
			if metrics.RequestDuration != nil {
				if vec, err := metrics.RequestDuration.WithLabels(r.Method); err == nil {
					vec.Observe(duration.Seconds())
				}
			}
		})
	}
}

// recoverPanics turns a handler panic into a JSON 500 carrying the request
// identifier. http.ErrAbortHandler is re-raised.
func recoverPanics(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := newStatusRecorder(w)
			defer func() {
				p := recover()
				if p == nil {
					return
				}
				if p == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity
					panic(p)
				}

				if metrics.PanicsTotal != nil {
					_ = metrics.PanicsTotal.Inc()
				}
				log.ErrorContext(r.Context(), "handler panic",
					"panic", p,
					"method", r.Method,
					"path", r.URL.Path,
					requestid.LogKey, w.Header().Get(requestid.Header),
				)
				if !rec.written {
					httputil.WriteInternalError(rec, "internal_error", "internal server error")
				}
			}()
			next.ServeHTTP(rec, r)
		})
	}
}

// skipProbes applies mw to everything except the health and metrics endpoints.
func skipProbes(mw func(http.Handler) http.Handler, next http.Handler) http.Handler {
	wrapped := mw(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case pathHealth, pathMetrics:
			next.ServeHTTP(w, r)
		default:
			wrapped.ServeHTTP(w, r)
		}
	})
}
