// Package http provides the HTTP transport adapter for the gateway.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fn-gate/fngate/internal/domain/audit"
	"github.com/fn-gate/fngate/internal/domain/auth"
	"github.com/fn-gate/fngate/internal/domain/coerce"
	"github.com/fn-gate/fngate/internal/service"
	"github.com/fn-gate/fngate/pkg/handler"
)

// maxRequestBodySize is the maximum allowed request body size (2 MB).
const maxRequestBodySize = 2 << 20

// Route binds a route name to a resolved handler. Routes are served under
// POST /v1/<name>.
type Route struct {
	Name   string
	Invoke handler.Func
}

// Gateway dispatches HTTP requests to handlers. Each request runs a linear
// state machine: parse, authenticate, normalize, invoke, respond. Failures
// at any step yield exactly one HTTP response.
type Gateway struct {
	authToken string
	routes    []Route
	logger    *slog.Logger
	metrics   *Metrics
	audit     *service.AuditService
	tracer    trace.Tracer
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *Metrics) GatewayOption {
	return func(g *Gateway) {
		g.metrics = m
	}
}

// WithAuditService attaches the async audit trail.
func WithAuditService(a *service.AuditService) GatewayOption {
	return func(g *Gateway) {
		g.audit = a
	}
}

// NewGateway creates a Gateway. authToken may be empty; authenticated routes
// then answer 500 until it is configured. Handlers in routes must already be
// resolved - an unresolvable handler is a startup error, not a Gateway
// concern.
func NewGateway(authToken string, logger *slog.Logger, routes []Route, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		authToken: authToken,
		routes:    routes,
		logger:    logger,
		tracer:    otel.Tracer("fngate/gateway"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Handler returns the route mux: health and root probes plus one invocation
// route per registered handler.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /health", healthHandler())
	mux.Handle("GET /{$}", rootHandler())
	for _, rt := range g.routes {
		mux.Handle("POST /v1/"+rt.Name, g.invoke(rt.Name, rt.Invoke))
	}
	return mux
}

// invoke runs the per-request state machine for one route.
func (g *Gateway) invoke(name string, fn handler.Func) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		logger := LoggerFromContext(ctx)

		// Parse. Malformed or oversized bodies are rejected before
		// authentication or handler logic runs.
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer func() { _ = r.Body.Close() }()

		body, err := io.ReadAll(r.Body)
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				g.reject(ctx, w, name, http.StatusRequestEntityTooLarge, "request body too large", audit.OutcomeBadRequest, start, nil)
				return
			}
			g.reject(ctx, w, name, http.StatusBadRequest, "failed to read request body", audit.OutcomeBadRequest, start, nil)
			return
		}

		parsed, err := coerce.Decode(body)
		if err != nil {
			g.reject(ctx, w, name, http.StatusBadRequest, "malformed JSON body", audit.OutcomeBadRequest, start, body)
			return
		}

		// Authenticate.
		switch auth.Authenticate(r.Header.Get("Authorization"), g.authToken) {
		case auth.MissingServerSecret:
			logger.Error("auth token not configured; rejecting request", "route", name)
			if g.metrics != nil {
				g.metrics.AuthFailuresTotal.WithLabelValues("missing_server_secret").Inc()
			}
			g.reject(ctx, w, name, http.StatusInternalServerError, "Internal error", audit.OutcomeMisconfigured, start, body)
			return
		case auth.Unauthorized:
			if g.metrics != nil {
				g.metrics.AuthFailuresTotal.WithLabelValues("unauthorized").Inc()
			}
			g.reject(ctx, w, name, http.StatusUnauthorized, "Unauthorized", audit.OutcomeUnauthorized, start, body)
			return
		case auth.Authorized:
		}

		// Normalize. Coercion is total: every leaf becomes a string while
		// the container shape is preserved.
		normalized, err := json.Marshal(coerce.Coerce(parsed))
		if err != nil {
			logger.Error("failed to serialize normalized body", "route", name, "error", err)
			g.reject(ctx, w, name, http.StatusInternalServerError, "Internal error", audit.OutcomeError, start, body)
			return
		}

		event := handler.Event{
			Body:    string(normalized),
			Headers: flattenHeaders(r.Header),
		}

		// Invoke. The call is awaited with no timeout; a hung handler holds
		// this request until the process terminates.
		invokeCtx, span := g.tracer.Start(ctx, "gateway.invoke",
			trace.WithAttributes(attribute.String("route", name)),
		)
		result, err := fn(invokeCtx, event)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()

			if g.metrics != nil {
				g.metrics.HandlerErrorsTotal.WithLabelValues(name).Inc()
			}
			logger.Error("handler failed", "route", name, "error", err)

			msg := err.Error()
			if msg == "" {
				msg = "Internal error"
			}
			g.reject(ctx, w, name, http.StatusInternalServerError, msg, audit.OutcomeError, start, body)
			return
		}
		span.End()

		// Respond. Zero-value result fields carry the defaults: 200, empty.
		status := result.HTTPStatus()
		w.WriteHeader(status)
		if result.Body != "" {
			_, _ = io.WriteString(w, result.Body)
		}

		g.record(ctx, name, status, audit.OutcomeOK, start, body)
	})
}

// reject writes a JSON error response and records the audit outcome.
func (g *Gateway) reject(ctx context.Context, w http.ResponseWriter, route string, status int, msg, outcome string, start time.Time, body []byte) {
	writeError(w, status, msg)
	g.record(ctx, route, status, outcome, start, body)
}

// record enqueues an audit record when auditing is enabled.
func (g *Gateway) record(ctx context.Context, route string, status int, outcome string, start time.Time, body []byte) {
	if g.audit == nil {
		return
	}
	g.audit.Record(audit.Record{
		Timestamp:  time.Now().UTC(),
		RequestID:  RequestIDFromContext(ctx),
		Route:      route,
		Status:     status,
		Outcome:    outcome,
		DurationMS: time.Since(start).Milliseconds(),
		BodyDigest: audit.BodyDigest(body),
	})
}

// writeError writes a uniform JSON error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// flattenHeaders converts the inbound header map to the envelope form:
// lowercased names mapped to their first value.
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		if len(values) == 0 {
			continue
		}
		out[strings.ToLower(name)] = values[0]
	}
	return out
}
