package observability

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for the editor and the HTTP server.
type Metrics struct {
	DialogOpens   *prometheus.CounterVec
	Applies       *prometheus.CounterVec
	ApplyDuration *prometheus.HistogramVec
	Requests      *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DialogOpens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portcfg_dialog_open_total",
				Help: "Total number of port configuration dialogs opened",
			},
			[]string{"port_type"},
		),
		Applies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portcfg_apply_total",
				Help: "Total number of port updates by outcome",
			},
			[]string{"outcome"},
		),
		ApplyDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portcfg_apply_duration_seconds",
				Help:    "Round trip of port update requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portcfg_http_requests_total",
				Help: "Total number of HTTP requests served by route and status",
			},
			[]string{"method", "route", "code"},
		),
	}
	reg.MustRegister(m.DialogOpens, m.Applies, m.ApplyDuration, m.Requests)
	return m
}

// Hooks returns editor lifecycle hooks that record into m.
// Each hook also runs the matching hook of next, if set.
func (m *Metrics) Hooks(next domain.EditorHooks) domain.EditorHooks {
	outcome := func(name string, chained func(context.Context, *domain.EditorEvent)) func(context.Context, *domain.EditorEvent) {
		return func(ctx context.Context, e *domain.EditorEvent) {
			m.Applies.WithLabelValues(name).Inc()
			m.ApplyDuration.WithLabelValues(name).Observe(e.Duration.Seconds())
			if chained != nil {
				chained(ctx, e)
			}
		}
	}

	return domain.EditorHooks{
		OnOpen: func(ctx context.Context, e *domain.EditorEvent) {
			m.DialogOpens.WithLabelValues(string(e.PortType)).Inc()
			if next.OnOpen != nil {
				next.OnOpen(ctx, e)
			}
		},
		OnSubmit:   next.OnSubmit,
		OnApplied:  outcome(string(domain.EventApplied), next.OnApplied),
		OnRejected: outcome(string(domain.EventRejected), next.OnRejected),
		OnFailed:   outcome(string(domain.EventFailed), next.OnFailed),
		OnClose:    next.OnClose,
	}
}

// Middleware counts requests by chi route pattern. Requests that matched no route
// are recorded under "unmatched".
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.Requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}

// LogHooks returns hooks that log every editor event at debug level.
func LogHooks(logger *slog.Logger) domain.EditorHooks {
	log := func(ctx context.Context, e *domain.EditorEvent) {
		attrs := []any{"event", e.Type, "port_id", e.PortID}
		if e.Duration > 0 {
			attrs = append(attrs, "duration", e.Duration)
		}
		if e.Err != nil {
			attrs = append(attrs, "err", e.Err)
		}
		logger.DebugContext(ctx, "Editor event", attrs...)
	}
	return domain.EditorHooks{
		OnOpen:     log,
		OnSubmit:   log,
		OnApplied:  log,
		OnRejected: log,
		OnFailed:   log,
		OnClose:    log,
	}
}
