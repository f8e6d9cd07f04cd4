package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/graphlens/pkg/logging"
	"github.com/dd0wney/graphlens/pkg/metrics"
)

// Server serves the GraphQL API plus health and metrics endpoints for
// one viewer.
type Server struct {
	state   ViewState
	handler *GraphQLHandler
	log     logging.Logger
	met     *metrics.Registry
	server  *http.Server
}

// NewServer builds the server. A nil logger or registry disables that
// concern.
func NewServer(state ViewState, addr string, log logging.Logger, met *metrics.Registry) (*Server, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	schema, err := GenerateSchema(state)
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}

	s := &Server{
		state:   state,
		handler: NewGraphQLHandler(schema),
		log:     log,
		met:     met,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/graphql", s.handler)
	if met != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(
			met.GetPrometheusRegistry(), promhttp.HandlerOpts{}))
	}

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.loggingMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Start serves until Shutdown or a listener error.
func (s *Server) Start() error {
	s.log.Info("API server starting", logging.String("addr", s.server.Addr))
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	nodes := 0
	if l := s.state.Layout(); l != nil {
		nodes = l.Snap.NodeCount()
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","nodes":%d}`, nodes)
}

// statusRecorder captures the response code for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		if s.met != nil {
			s.met.HTTPRequestsInFlight.Inc()
		}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		if s.met != nil {
			s.met.HTTPRequestsInFlight.Dec()
			s.met.RecordHTTPRequest(r.Method, r.URL.Path, strconv.Itoa(rec.status), elapsed)
		}
		s.log.Debug("HTTP request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", rec.status),
			logging.Int64("duration_us", elapsed.Microseconds()))
	})
}
