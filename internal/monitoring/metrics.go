package monitoring

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ohuvaht/ohuvaht/internal/monitoring"

// Metrics holds the OpenTelemetry instruments for the refresh engine.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	cyclesTotal   metric.Int64Counter
	cycleDuration metric.Float64Histogram
	fetchTotal    metric.Int64Counter
	fallbackDepth metric.Int64Histogram
}

// NewMetrics creates engine metrics instruments on the global meter.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)

	cyclesTotal, err := meter.Int64Counter(
		"monitoring.refresh.cycles",
		metric.WithDescription("Total number of refresh cycles"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	cycleDuration, err := meter.Float64Histogram(
		"monitoring.refresh.cycle.duration",
		metric.WithDescription("Duration of refresh cycles in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	fetchTotal, err := meter.Int64Counter(
		"monitoring.fetch.attempts",
		metric.WithDescription("Total upstream fetch attempts by category and outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	fallbackDepth, err := meter.Int64Histogram(
		"monitoring.fallback.depth",
		metric.WithDescription("Days of historical lookback needed to find data"),
		metric.WithUnit("d"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		cyclesTotal:   cyclesTotal,
		cycleDuration: cycleDuration,
		fetchTotal:    fetchTotal,
		fallbackDepth: fallbackDepth,
	}, nil
}

func (m *Metrics) recordCycle(ctx context.Context, d time.Duration, ok bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.cyclesTotal.Add(ctx, 1, attrs)
	if ok {
		m.cycleDuration.Record(ctx, d.Seconds(), attrs)
	}
}

func (m *Metrics) recordFetch(ctx context.Context, cat Category, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		status, _ := classify(err)
		outcome = string(status)
	}
	m.fetchTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", string(cat)),
		attribute.String("outcome", outcome),
	))
}

func (m *Metrics) recordFallbackDepth(ctx context.Context, cat Category, days int) {
	if m == nil {
		return
	}
	m.fallbackDepth.Record(ctx, int64(days), metric.WithAttributes(
		attribute.String("category", string(cat)),
	))
}
