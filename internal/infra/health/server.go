// Package health exposes liveness and metrics endpoints for the wallet
// daemon.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status is the aggregate daemon state.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusDegraded Status = "degraded"
	StatusCritical Status = "critical"
)

// Checker reports one subsystem's view for the health endpoint.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Report is the detailed health payload.
type Report struct {
	Status     Status            `json:"status"`
	Subsystems map[string]string `json:"subsystems"`
}

// Server provides HTTP endpoints for health monitoring.
type Server struct {
	checkers []Checker
	server   *http.Server
}

// NewServer creates a health server over the given subsystem checkers.
func NewServer(port int, checkers ...Checker) *Server {
	mux := http.NewServeMux()
	s := &Server{
		checkers: checkers,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/health/detailed", s.handleDetailed)
	mux.Handle("/metrics", promhttp.Handler())

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) check(ctx context.Context) Report {
	report := Report{Status: StatusHealthy, Subsystems: make(map[string]string)}
	failed := 0

	for _, c := range s.checkers {
		if err := c.Check(ctx); err != nil {
			report.Subsystems[c.Name()] = err.Error()
			failed++
		} else {
			report.Subsystems[c.Name()] = "ok"
		}
	}

	// All subsystems down is critical; a partial failure only degrades
	if failed == len(s.checkers) && failed > 0 {
		report.Status = StatusCritical
	} else if failed > 0 {
		report.Status = StatusDegraded
	}
	return report
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.check(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if report.Status == StatusCritical {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	json.NewEncoder(w).Encode(map[string]string{"status": string(report.Status)})
}

func (s *Server) handleDetailed(w http.ResponseWriter, r *http.Request) {
	report := s.check(r.Context())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// CheckerFunc adapts a named function to the Checker interface.
type CheckerFunc struct {
	Label string
	Fn    func(ctx context.Context) error
}

func (c CheckerFunc) Name() string                    { return c.Label }
func (c CheckerFunc) Check(ctx context.Context) error { return c.Fn(ctx) }
