package server

import (
	"net/http"

	"github.com/getmockd/sessiontrace/pkg/httputil"
	"github.com/getmockd/sessiontrace/pkg/requestid"
	"github.com/getmockd/sessiontrace/pkg/session"
)

const (
	pathIndex   = "/"
	pathHealth  = "/health"
	pathMetrics = "/metrics"
)

// IndexResponse is returned by GET /.
type IndexResponse struct {
	Session string `json:"session"`
	Request string `json:"request"`
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(pathIndex, s.handleIndex)
	mux.HandleFunc(pathHealth, s.handleHealth)
	if s.registry != nil {
		metricsHandler := s.registry.Handler()
		mux.HandleFunc(pathMetrics, func(w http.ResponseWriter, r *http.Request) {
			if !allowRead(w, r) {
				return
			}
			metricsHandler.ServeHTTP(w, r)
		})
	}
	return mux
}

// allowRead rejects anything but GET and HEAD.
func allowRead(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	httputil.WriteMethodNotAllowed(w, http.MethodGet, http.MethodHead)
	return false
}

// handleIndex reports the short session id and the request id.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != pathIndex {
		httputil.WriteNotFound(w, "not_found", "no route for "+r.URL.Path)
		return
	}
	if !allowRead(w, r) {
		return
	}

	d, _ := session.FromContext(r.Context())
	httputil.WriteOK(w, IndexResponse{
		Session: d.Short(),
		Request: requestid.FromContext(r.Context()),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	httputil.WriteOK(w, map[string]string{"status": "ok"})
}
