// Package health exposes a loopback-only HTTP server with /healthz and
// /metrics, modeled on ENSIAS-3A-Projects-Projet-Federateur's HealthServer:
// a small JSON status payload plus promhttp.HandlerFor against the engine's
// own registry, started as a goroutine
// that never touches the hot sampling path.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status is the JSON payload served at /healthz.
type Status struct {
	Healthy       bool      `json:"healthy"`
	ActiveTargets int       `json:"activeTargets"`
	StartTime     time.Time `json:"startTime"`
	Uptime        string    `json:"uptime"`
}

// ActiveCounter is the narrow capability the engine exposes so the health
// server can report the current active-set size without importing engine.
type ActiveCounter interface {
	ActiveCount() int
}

// Server serves /healthz and /metrics on a loopback address.
type Server struct {
	mu sync.RWMutex

	active    ActiveCounter
	reg       prometheus.Gatherer
	startTime time.Time

	httpSrv *http.Server
}

// New builds a health server bound to addr (expected to be a loopback
// address such as "127.0.0.1:9731").
func New(addr string, active ActiveCounter, reg prometheus.Gatherer) *Server {
	s := &Server{
		active:    active,
		reg:       reg,
		startTime: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.serveHealthz)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	s.httpSrv = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

func (s *Server) status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Healthy:       true,
		ActiveTargets: s.active.ActiveCount(),
		StartTime:     s.startTime,
		Uptime:        time.Since(s.startTime).Round(time.Second).String(),
	}
}

func (s *Server) serveHealthz(w http.ResponseWriter, r *http.Request) {
	st := s.status()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(st)
}

// Start runs the server in the background until ctx is canceled.
func (s *Server) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
	}()

	go func() {
		_ = s.httpSrv.ListenAndServe()
	}()
}
