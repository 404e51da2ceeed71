// Package requestid tags every inbound HTTP request with a fresh request
// identifier for tracing one request's lifecycle through log output.
package requestid

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/getmockd/sessiontrace/internal/id"
	"github.com/getmockd/sessiontrace/pkg/logging"
)

// Header is the response header carrying the request identifier.
const Header = "X-Request-ID"

// LogKey is the log attribute key for the request identifier.
const LogKey = "request"

type ctxKey struct{}

// NewContext returns a copy of ctx carrying rid.
func NewContext(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ctxKey{}, rid)
}

// FromContext returns the request identifier stored in ctx, or "".
func FromContext(ctx context.Context) string {
	rid, _ := ctx.Value(ctxKey{}).(string)
	return rid
}

// Middleware returns middleware that issues a new request identifier from gen
// for every request. A nil gen uses id.Default.
//
// Any X-Request-ID sent by the client is ignored: the identifier is minted
// here so its format and randomness are known.
func Middleware(gen *id.Generator) func(http.Handler) http.Handler {
	if gen == nil {
		gen = id.Default
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := gen.RequestID()
			w.Header().Set(Header, rid)

			ctx := NewContext(r.Context(), rid)
			ctx = logging.ContextWithAttrs(ctx, slog.String(LogKey, rid))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
