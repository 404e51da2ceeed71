// Package session tracks browser sessions by an opaque, randomly generated
// identifier carried in a cookie.
//
// Full identifiers stay server side and in the cookie. Log lines and
// responses use the short form, which is enough to correlate activity
// without exposing a usable session token.
package session

import (
	"context"
	"time"

	"github.com/getmockd/sessiontrace/internal/id"
)

// LogKey is the log attribute key for the short session identifier.
const LogKey = "session"

// Data is the server-side record for one session.
type Data struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	LastSeen  time.Time `json:"lastSeen"`
}

// New returns a session with a fresh identifier from gen.
// A nil gen uses id.Default.
func New(gen *id.Generator) *Data {
	if gen == nil {
		gen = id.Default
	}
	now := time.Now()
	return &Data{
		ID:        gen.SessionID(),
		CreatedAt: now,
		LastSeen:  now,
	}
}

// Short returns the display form of the session identifier.
func (d *Data) Short() string {
	if d == nil {
		return ""
	}
	return id.Short(d.ID)
}

// clone returns a copy the caller may modify freely.
func (d *Data) clone() *Data {
	c := *d
	return &c
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying d.
func NewContext(ctx context.Context, d *Data) context.Context {
	return context.WithValue(ctx, ctxKey{}, d)
}

// FromContext returns the session stored in ctx by the manager middleware.
func FromContext(ctx context.Context) (*Data, bool) {
	d, ok := ctx.Value(ctxKey{}).(*Data)
	return d, ok && d != nil
}
