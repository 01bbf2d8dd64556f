package metrics

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	api "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"

	"github.com/johnathanacortesd/johnascriber-sub000/models"
)

type Metrics struct {
	registry       *prom.Registry
	provider       *metric.MeterProvider
	meter          api.Meter
	apiTimeMetric  api.Float64Histogram
	transcriptions api.Int64Counter
	remoteTime     api.Float64Histogram
}

// SetupMetrics bootstraps the OpenTelemetry pipeline on its own Prometheus
// registry. Call Shutdown for proper cleanup.
func SetupMetrics() (*Metrics, error) {
	registry := prom.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, err
	}
	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	meter := provider.Meter("github.com/johnathanacortesd/johnascriber-sub000")

	apiTimeMetric, err := meter.Float64Histogram("api_call", api.WithDescription("api calls"))
	if err != nil {
		return nil, err
	}
	transcriptions, err := meter.Int64Counter("transcriptions", api.WithDescription("transcription requests by outcome"))
	if err != nil {
		return nil, err
	}
	remoteTime, err := meter.Float64Histogram("transcription_remote_call", api.WithDescription("remote transcription call latency in seconds"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		registry:       registry,
		provider:       provider,
		meter:          meter,
		apiTimeMetric:  apiTimeMetric,
		transcriptions: transcriptions,
		remoteTime:     remoteTime,
	}, nil
}

func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}

func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

type apiMiddlewareConfig struct {
	Filter  func(c *fiber.Ctx) bool
	metrics *Metrics
}

func APIMiddleware(metrics *Metrics) fiber.Handler {
	cfg := apiMiddlewareConfig{
		metrics: metrics,
		Filter: func(c *fiber.Ctx) bool {
			return c.Path() == "/metrics"
		},
	}

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}
		method := c.Method()

		start := time.Now()
		err := c.Next()
		elapsed := float64(time.Since(start)) / float64(time.Second)
		// Route patterns keep label cardinality bounded.
		cfg.metrics.ObserveAPICall(method, c.Route().Path, elapsed)
		return err
	}
}

func (m *Metrics) ObserveAPICall(method string, path string, duration float64) {
	opts := api.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
	)
	m.apiTimeMetric.Record(context.Background(), duration, opts)
}

// ObserveTranscription counts one pipeline run. A nil err is recorded as "ok",
// anything else by its error kind.
func (m *Metrics) ObserveTranscription(ctx context.Context, err error) {
	outcome := "ok"
	if err != nil {
		outcome = string(models.KindOf(err))
	}
	m.transcriptions.Add(ctx, 1, api.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *Metrics) ObserveRemoteCall(ctx context.Context, model string, duration time.Duration) {
	m.remoteTime.Record(ctx, duration.Seconds(), api.WithAttributes(attribute.String("model", model)))
}
