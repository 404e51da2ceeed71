package id

import (
	"io"
	"sync"

	"github.com/google/uuid"
)

const (
	// ShortLength is the number of characters kept by Short.
	ShortLength = 6

	// RequestPrefix tags request identifiers so they are never mistaken for
	// session identifiers in log output.
	RequestPrefix = "r_"

	// requestLength is the number of UUID text characters after RequestPrefix.
	requestLength = 8
)

// Generator draws UUIDs from a randomness source.
// The zero value is not usable; use NewGenerator or Default.
type Generator struct {
	mu   sync.Mutex
	rand io.Reader
}

// Default is the process-wide generator. It is initialized once at startup,
// is never reset, and is safe for concurrent use.
var Default = NewGenerator(nil)

// NewGenerator returns a Generator that reads from r.
// A nil reader selects the uuid package's default source (crypto/rand).
// Reads from a non-nil reader are serialized, so r need not be safe for
// concurrent use.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// uuid draws a fresh random UUID. It panics if the randomness source fails:
// returning a fixed or partially random value would break uniqueness.
func (g *Generator) uuid() uuid.UUID {
	if g.rand == nil {
		return uuid.New()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return uuid.Must(uuid.NewRandomFromReader(g.rand))
}

// SessionID returns a new session identifier in canonical UUID text form:
// xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx (lowercase hex).
func (g *Generator) SessionID() string {
	return g.uuid().String()
}

// RequestID returns a new request identifier: RequestPrefix followed by the
// first eight characters of a freshly drawn UUID's text form.
// The draw is independent of any session identifier.
func (g *Generator) RequestID() string {
	return RequestPrefix + g.uuid().String()[:requestLength]
}

// SessionID returns a new session identifier from Default.
func SessionID() string {
	return Default.SessionID()
}

// RequestID returns a new request identifier from Default.
func RequestID() string {
	return Default.RequestID()
}

// Short returns the first ShortLength characters of full, or all of full when
// it is shorter. It counts runes, not bytes, so it never splits a character.
// The result is for display only and is not unique across sessions.
func Short(full string) string {
	n := 0
	for i := range full {
		if n == ShortLength {
			return full[:i]
		}
		n++
	}
	return full
}

// IsSessionID reports whether s is a UUID in canonical lowercase text form.
func IsSessionID(s string) bool {
	if len(s) != 36 {
		return false
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return u.String() == s
}
