package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/getmockd/sessiontrace/internal/id"
	"github.com/getmockd/sessiontrace/pkg/logging"
	"github.com/getmockd/sessiontrace/pkg/metrics"
)

const (
	// DefaultCookieName is the cookie carrying the full session identifier.
	DefaultCookieName = "sessiontrace_session"

	// DefaultTTL is the idle timeout used when none is configured.
	DefaultTTL = 30 * time.Minute
)

// Manager issues and resolves sessions for HTTP requests.
type Manager struct {
	store      Store
	gen        *id.Generator
	cookieName string
	secure     bool
	ttl        time.Duration
	ttlSet     bool
	log        *slog.Logger
	now        func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithCookieName sets the session cookie name.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.cookieName = name
		}
	}
}

// WithSecure marks the session cookie Secure.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithTTL overrides the cookie lifetime. Without it the lifetime follows
// the store's TTL when the store exposes one. A ttl <= 0 issues a
// browser-session cookie.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.ttl = ttl
		m.ttlSet = true
	}
}

// ttlStore is implemented by stores with a fixed idle timeout.
type ttlStore interface {
	TTL() time.Duration
}

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithGenerator sets the identifier source.
func WithGenerator(gen *id.Generator) Option {
	return func(m *Manager) {
		if gen != nil {
			m.gen = gen
		}
	}
}

// NewManager creates a Manager backed by store.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:      store,
		gen:        id.Default,
		cookieName: DefaultCookieName,
		ttl:        DefaultTTL,
		log:        logging.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if ts, ok := store.(ttlStore); ok && !m.ttlSet {
		m.ttl = ts.TTL()
	}
	return m
}

// TTL returns the cookie lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Store returns the backing store.
func (m *Manager) Store() Store {
	return m.store
}

// Load returns the session referenced by the request cookie, or creates a
// new one. created reports whether a new session was issued.
//
// Cookies that are not canonical session identifiers, or that reference
// an unknown or expired session, are treated as absent.
func (m *Manager) Load(r *http.Request) (d *Data, created bool) {
	if c, err := r.Cookie(m.cookieName); err == nil && id.IsSessionID(c.Value) {
		if m.store.Touch(c.Value, m.now()) {
			if d, ok := m.store.Get(c.Value); ok {
				return d, false
			}
		}
	}

	d = New(m.gen)
	now := m.now()
	d.CreatedAt, d.LastSeen = now, now
	m.store.Set(d)

	if metrics.SessionsCreatedTotal != nil {
		_ = metrics.SessionsCreatedTotal.Inc()
	}
	m.updateGauge()
	m.log.InfoContext(r.Context(), "session created", LogKey, d.Short())
	return d, true
}

// Middleware resolves the session for each request, refreshes the cookie,
// and stores the session in the request context and log attributes.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, _ := m.Load(r)
		http.SetCookie(w, m.cookie(d.ID))

		ctx := NewContext(r.Context(), d)
		ctx = logging.ContextWithAttrs(ctx, slog.String(LogKey, d.Short()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Manager) cookie(value string) *http.Cookie {
	c := &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if m.ttl > 0 {
		c.MaxAge = int(m.ttl / time.Second)
	}
	return c
}

// Sweep removes expired sessions once and refreshes the active gauge.
func (m *Manager) Sweep() int {
	removed := m.store.Sweep(m.now())
	m.updateGauge()
	if removed > 0 {
		m.log.Debug("expired sessions removed", "count", removed)
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

func (m *Manager) updateGauge() {
	if metrics.ActiveSessions != nil {
		_ = metrics.ActiveSessions.Set(float64(m.store.Live(m.now())))
	}
}
