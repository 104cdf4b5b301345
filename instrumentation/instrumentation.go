package instrumentation

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const (
	// DefaultServiceName is the service name used when none is provided
	DefaultServiceName = "go-pinterest"

	// DefaultServiceVersion is the default service version used when none is provided
	DefaultServiceVersion = "unknown"

	// instrumentationPrefix is prepended to every meter and tracer scope
	instrumentationPrefix = "github.com/giantswarm/go-pinterest/"
)

// Config holds instrumentation configuration
type Config struct {
	// ServiceName is the name of the service (e.g., "pinterest-auth", "my-pin-sync")
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Enabled controls whether instrumentation is active
	// When false, uses no-op providers (zero overhead)
	Enabled bool

	// MetricReader is an optional reader attached to the SDK meter provider
	// (e.g. a periodic OTLP reader, or a ManualReader in tests).
	// Ignored when Enabled is false.
	MetricReader sdkmetric.Reader

	// SpanProcessor is an optional processor attached to the SDK tracer provider
	// (e.g. a batch exporter, or a tracetest.SpanRecorder in tests).
	// Ignored when Enabled is false.
	SpanProcessor sdktrace.SpanProcessor

	// Resource allows custom resource attributes
	// If nil, default resource is created with service name and version
	Resource *resource.Resource
}

// Instrumentation provides OpenTelemetry instrumentation components
type Instrumentation struct {
	config   Config
	resource *resource.Resource

	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider

	metrics *Metrics

	// Shutdown functions (must be registered during New() only, not thread-safe after initialization)
	shutdownFuncs []func(context.Context) error
	shutdownOnce  sync.Once
}

// New creates a new instrumentation instance
func New(config Config) (*Instrumentation, error) {
	if config.ServiceName == "" {
		config.ServiceName = DefaultServiceName
	}
	if config.ServiceVersion == "" {
		config.ServiceVersion = DefaultServiceVersion
	}

	var res *resource.Resource
	var err error
	if config.Resource != nil {
		res = config.Resource
	} else {
		res, err = resource.New(
			context.Background(),
			resource.WithAttributes(
				semconv.ServiceName(config.ServiceName),
				semconv.ServiceVersion(config.ServiceVersion),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create resource: %w", err)
		}
	}

	inst := &Instrumentation{
		config:   config,
		resource: res,
	}

	if config.Enabled {
		inst.initializeProviders()
	} else {
		// Use no-op providers for zero overhead
		inst.meterProvider = noop.NewMeterProvider()
		inst.tracerProvider = tracenoop.NewTracerProvider()
	}

	inst.metrics, err = newMetrics(inst)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	return inst, nil
}

// initializeProviders creates SDK meter and tracer providers bound to the
// instrumentation resource and registers their shutdown hooks.
func (i *Instrumentation) initializeProviders() {
	meterOpts := []sdkmetric.Option{sdkmetric.WithResource(i.resource)}
	if i.config.MetricReader != nil {
		meterOpts = append(meterOpts, sdkmetric.WithReader(i.config.MetricReader))
	}
	mp := sdkmetric.NewMeterProvider(meterOpts...)

	tracerOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(i.resource)}
	if i.config.SpanProcessor != nil {
		tracerOpts = append(tracerOpts, sdktrace.WithSpanProcessor(i.config.SpanProcessor))
	}
	tp := sdktrace.NewTracerProvider(tracerOpts...)

	i.meterProvider = mp
	i.tracerProvider = tp
	i.shutdownFuncs = append(i.shutdownFuncs, tp.Shutdown, mp.Shutdown)
}

// Shutdown flushes and shuts down all instrumentation providers.
// It is safe to call more than once.
func (i *Instrumentation) Shutdown(ctx context.Context) error {
	var shutdownErr error

	i.shutdownOnce.Do(func() {
		for _, fn := range i.shutdownFuncs {
			if err := fn(ctx); err != nil {
				// Capture first error, but continue shutting down other components
				if shutdownErr == nil {
					shutdownErr = err
				}
			}
		}
	})

	return shutdownErr
}

// Meter returns a named meter for the given scope
// Scopes are layer names like "oauth" or "api".
// The full name will be "github.com/giantswarm/go-pinterest/{scope}"
func (i *Instrumentation) Meter(scope string) metric.Meter {
	return i.meterProvider.Meter(instrumentationPrefix + scope)
}

// Tracer returns a named tracer for the given scope
// The full name will be "github.com/giantswarm/go-pinterest/{scope}"
func (i *Instrumentation) Tracer(scope string) trace.Tracer {
	return i.tracerProvider.Tracer(instrumentationPrefix + scope)
}

// Metrics returns the metrics holder for recording metric values
func (i *Instrumentation) Metrics() *Metrics {
	return i.metrics
}

// TracerProvider returns the underlying tracer provider
func (i *Instrumentation) TracerProvider() trace.TracerProvider {
	return i.tracerProvider
}

// MeterProvider returns the underlying meter provider
func (i *Instrumentation) MeterProvider() metric.MeterProvider {
	return i.meterProvider
}

// Resource returns the resource describing the instrumented service
func (i *Instrumentation) Resource() *resource.Resource {
	return i.resource
}
