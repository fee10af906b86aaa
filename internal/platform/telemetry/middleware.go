package telemetry

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/dailydose/dailydose/internal/platform/logging"
)

const instrumentationName = "github.com/dailydose/dailydose/internal/platform/telemetry"

// HeaderTraceID carries the trace ID back to callers.
const HeaderTraceID = "X-Trace-ID"

// Metrics records HTTP server metrics to both OpenTelemetry and the
// Prometheus registry scraped at /-/metrics.
type Metrics struct {
	otelDuration metric.Float64Histogram
	otelActive   metric.Int64UpDownCounter

	promDuration *prometheus.HistogramVec
	promTotal    *prometheus.CounterVec
}

// NewMetrics creates the instruments and registers the Prometheus
// collectors with reg. Collectors already registered by an earlier call
// are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	otelDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	otelActive, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of in-flight HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	promDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dailydose",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	promTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dailydose",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})

	if promDuration, err = register(reg, promDuration); err != nil {
		return nil, err
	}

	if promTotal, err = register(reg, promTotal); err != nil {
		return nil, err
	}

	return &Metrics{
		otelDuration: otelDuration,
		otelActive:   otelActive,
		promDuration: promDuration,
		promTotal:    promTotal,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if reg == nil {
		return c, nil
	}

	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}

	return c, nil
}

// Middleware returns the otelgin tracing handler followed by the metrics
// handler. Register both with engine.Use(Middleware(...)...).
func Middleware(serviceName string, reg prometheus.Registerer) []gin.HandlerFunc {
	metrics, err := NewMetrics(reg)
	if err != nil {
		otel.Handle(err)
	}

	return []gin.HandlerFunc{
		otelgin.Middleware(serviceName),
		metrics.handler(),
	}
}

func (m *Metrics) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		if m != nil {
			active := metric.WithAttributes(attribute.String("http.method", c.Request.Method))
			m.otelActive.Add(ctx, 1, active)
			defer m.otelActive.Add(ctx, -1, active)
		}

		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.HasTraceID() {
			traceID := sc.TraceID().String()
			c.Header(HeaderTraceID, traceID)
			c.Request = c.Request.WithContext(logging.WithTraceID(ctx, traceID))
		}

		c.Next()

		if m == nil {
			return
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		status := c.Writer.Status()
		elapsed := time.Since(start).Seconds()

		m.otelDuration.Record(ctx, elapsed, metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		))

		labels := prometheus.Labels{"method": c.Request.Method, "route": route, "status": strconv.Itoa(status)}
		m.promDuration.With(labels).Observe(elapsed)
		m.promTotal.With(labels).Inc()
	}
}
