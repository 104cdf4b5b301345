package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names
const (
	MetricCodeExchanged        = "pinterest.oauth.code.exchanged"
	MetricCodeExchangeDuration = "pinterest.oauth.code.exchange.duration"
	MetricAPIRequestsTotal     = "pinterest.api.requests.total"
	MetricAPIRequestDuration   = "pinterest.api.request.duration"
	MetricRateLimitWaited      = "pinterest.api.rate_limit.waited"
)

// Result attribute values
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics holds all metric instruments for the Pinterest client
type Metrics struct {
	// OAuth Metrics
	CodeExchanged        metric.Int64Counter
	CodeExchangeDuration metric.Float64Histogram

	// API Metrics
	APIRequestsTotal   metric.Int64Counter
	APIRequestDuration metric.Float64Histogram
	RateLimitWaited    metric.Int64Counter
}

// newMetrics creates and registers all metric instruments
func newMetrics(inst *Instrumentation) (*Metrics, error) {
	m := &Metrics{}
	oauthMeter := inst.Meter("oauth")
	apiMeter := inst.Meter("api")

	var err error
	m.CodeExchanged, err = oauthMeter.Int64Counter(
		MetricCodeExchanged,
		metric.WithDescription("Number of authorization codes exchanged for tokens"),
		metric.WithUnit("{exchange}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricCodeExchanged, err)
	}

	m.CodeExchangeDuration, err = oauthMeter.Float64Histogram(
		MetricCodeExchangeDuration,
		metric.WithDescription("Authorization code exchange duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s histogram: %w", MetricCodeExchangeDuration, err)
	}

	m.APIRequestsTotal, err = apiMeter.Int64Counter(
		MetricAPIRequestsTotal,
		metric.WithDescription("Total number of Pinterest API requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricAPIRequestsTotal, err)
	}

	m.APIRequestDuration, err = apiMeter.Float64Histogram(
		MetricAPIRequestDuration,
		metric.WithDescription("Pinterest API request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s histogram: %w", MetricAPIRequestDuration, err)
	}

	m.RateLimitWaited, err = apiMeter.Int64Counter(
		MetricRateLimitWaited,
		metric.WithDescription("Number of API requests delayed by the client-side rate limiter"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricRateLimitWaited, err)
	}

	return m, nil
}

func resultOf(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}

// RecordCodeExchange records an authorization code exchange
func (m *Metrics) RecordCodeExchange(ctx context.Context, clientID string, durationMs float64, err error) {
	attrs := metric.WithAttributes(
		attribute.String(AttrClientID, clientID),
		attribute.String(AttrResult, resultOf(err)),
	)
	m.CodeExchanged.Add(ctx, 1, attrs)
	m.CodeExchangeDuration.Record(ctx, durationMs, attrs)
}

// RecordAPIRequest records a Pinterest API request.
// statusCode is 0 when no response was received.
func (m *Metrics) RecordAPIRequest(ctx context.Context, method, endpoint string, statusCode int, durationMs float64) {
	m.APIRequestsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrHTTPEndpoint, endpoint),
		attribute.Int(AttrHTTPStatusCode, statusCode),
	))
	m.APIRequestDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String(AttrHTTPEndpoint, endpoint),
	))
}

// RecordRateLimitWait records a request that had to wait for the rate limiter
func (m *Metrics) RecordRateLimitWait(ctx context.Context, endpoint string) {
	m.RateLimitWaited.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrHTTPEndpoint, endpoint)))
}
