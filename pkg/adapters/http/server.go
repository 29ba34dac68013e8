package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/portcfg/internal/logging"
	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/aretw0/portcfg/pkg/flow"
	"github.com/aretw0/portcfg/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// PortsEntity is the body of the port listing.
type PortsEntity struct {
	Ports []*domain.PortEntity `json:"ports"`
}

// Server exposes a flow.Service over HTTP.
type Server struct {
	service        *flow.Service
	logger         *slog.Logger
	metrics        *observability.Metrics
	metricsHandler http.Handler
	validate       bool
}

// ServerOption configures the HTTP handler.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records request metrics into m and serves h at /metrics.
func WithMetrics(m *observability.Metrics, h http.Handler) ServerOption {
	return func(s *Server) {
		s.metrics = m
		s.metricsHandler = h
	}
}

// WithoutRequestValidation disables OpenAPI request validation.
func WithoutRequestValidation() ServerOption {
	return func(s *Server) {
		s.validate = false
	}
}

// NewHandler creates the HTTP handler for the port service.
func NewHandler(service *flow.Service, opts ...ServerOption) (http.Handler, error) {
	s := &Server{
		service:  service,
		validate: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}
	if s.metricsHandler != nil {
		r.Handle("/metrics", s.metricsHandler)
	}

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(Spec())
	})
	r.Get("/health", s.GetHealth)

	var validator func(http.Handler) http.Handler
	if s.validate {
		router, err := newRouter(context.Background())
		if err != nil {
			return nil, err
		}
		validator = requestValidator(router, s.logger)
	}

	r.Route("/nifi-api", func(r chi.Router) {
		if validator != nil {
			r.Use(validator)
		}
		r.Get("/flow/ports", s.ListPorts)
		r.Get("/input-ports/{id}", s.GetPort(domain.TypeInputPort))
		r.Put("/input-ports/{id}", s.UpdatePort(domain.TypeInputPort))
		r.Get("/output-ports/{id}", s.GetPort(domain.TypeOutputPort))
		r.Put("/output-ports/{id}", s.UpdatePort(domain.TypeOutputPort))
	})

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

// ListPorts handles GET /nifi-api/flow/ports.
func (s *Server) ListPorts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, PortsEntity{Ports: s.service.ListPorts(r.Context())})
}

// GetPort handles GET on a port resource.
func (s *Server) GetPort(kind domain.ComponentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		port, err := s.service.GetPort(r.Context(), kind, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, s.logger, port)
	}
}

// UpdatePort handles PUT on a port resource.
func (s *Server) UpdatePort(kind domain.ComponentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var body domain.PortUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.logger.Warn("UpdatePort: Invalid request body", "port_id", id, "err", err)
			writeError(w, &domain.ValidationError{Messages: []string{"Unable to parse the port update request."}})
			return
		}

		port, err := s.service.UpdatePort(r.Context(), kind, id, body)
		if err != nil {
			status := writeError(w, err)
			if status >= http.StatusInternalServerError {
				s.logger.Error("UpdatePort failed", "port_id", id, "err", err)
			}
			return
		}
		writeJSON(w, s.logger, port)
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "err", err)
	}
}
