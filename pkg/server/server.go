// Package server provides the sessiontrace HTTP server: every request is
// tagged with a request identifier and bound to a session, and log lines
// carry both in short, non-reversible form.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/getmockd/sessiontrace/internal/id"
	"github.com/getmockd/sessiontrace/pkg/logging"
	"github.com/getmockd/sessiontrace/pkg/metrics"
	"github.com/getmockd/sessiontrace/pkg/requestid"
	"github.com/getmockd/sessiontrace/pkg/session"
)

// Config holds server settings.
type Config struct {
	// Port to listen on; 0 picks a free port.
	Port int

	// ReadTimeout and WriteTimeout in seconds; 0 disables.
	ReadTimeout  int
	WriteTimeout int

	SessionCookie string
	SessionTTL    time.Duration
	SweepInterval time.Duration
	CookieSecure  bool

	// Metrics serves /metrics when true.
	Metrics bool
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Port:          8080,
		ReadTimeout:   30,
		WriteTimeout:  30,
		SessionCookie: session.DefaultCookieName,
		SessionTTL:    session.DefaultTTL,
		SweepInterval: time.Minute,
		Metrics:       true,
	}
}

// Server is the sessiontrace HTTP server.
type Server struct {
	cfg      Config
	log      *slog.Logger
	gen      *id.Generator
	store    session.Store
	sessions *session.Manager
	registry *metrics.Registry
	handler  http.Handler

	mu          sync.Mutex
	running     bool
	httpServer  *http.Server
	listener    net.Listener
	stopSweeper context.CancelFunc
	sweeperDone chan struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the operational logger for the server.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithGenerator sets the identifier source for sessions and requests.
func WithGenerator(gen *id.Generator) Option {
	return func(s *Server) {
		if gen != nil {
			s.gen = gen
		}
	}
}

// WithStore sets the session store. Defaults to a MemoryStore using the
// configured TTL.
func WithStore(store session.Store) Option {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// New creates a Server. The handler chain is built immediately so Handler
// can be used without Start.
func New(cfg Config, opts ...Option) *Server {
	s := &Server{
		cfg: cfg,
		log: logging.Nop(),
		gen: id.Default,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = session.NewMemoryStore(cfg.SessionTTL)
	}

	sessionOpts := []session.Option{
		session.WithCookieName(cfg.SessionCookie),
		session.WithSecure(cfg.CookieSecure),
		session.WithLogger(s.log),
		session.WithGenerator(s.gen),
	}
	// Cookie lifetime follows the store when it has its own TTL.
	if _, ok := s.store.(interface{ TTL() time.Duration }); !ok {
		sessionOpts = append(sessionOpts, session.WithTTL(cfg.SessionTTL))
	}
	s.sessions = session.NewManager(s.store, sessionOpts...)

	if cfg.Metrics {
		s.registry = metrics.Init()
	}

	s.handler = s.buildHandler()
	return s
}

// Handler returns the full middleware chain and routes.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Sessions returns the session manager.
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// buildHandler wires: recover -> request id -> session -> access log -> routes.
// Probe endpoints skip the session layer so health checks and scrapes do not
// mint sessions.
func (s *Server) buildHandler() http.Handler {
	var h http.Handler = s.routes()
	h = accessLog(s.log)(h)
	h = skipProbes(s.sessions.Middleware, h)
	h = requestid.Middleware(s.gen)(h)
	h = recoverPanics(s.log)(h)
	return h
}

// Start begins listening and serving in the background, and starts the
// expired-session sweeper.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server is already running")
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.cfg.Port, err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:      s.handler,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeout) * time.Second,
	}

	s.log.Info("starting HTTP server", "addr", ln.Addr().String())
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("HTTP server error", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	s.stopSweeper = cancel
	s.sweeperDone = make(chan struct{})
	go func() {
		defer close(s.sweeperDone)
		s.sessions.RunSweeper(ctx, s.cfg.SweepInterval)
	}()

	s.running = true
	return nil
}

// Stop gracefully shuts the server down, waiting for in-flight requests
// until ctx is done.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	s.stopSweeper()
	<-s.sweeperDone

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP shutdown: %w", err)
	}
	s.log.Info("HTTP server stopped")
	return nil
}

// Addr returns the listening address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
