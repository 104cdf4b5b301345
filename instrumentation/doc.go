// Package instrumentation provides OpenTelemetry (OTEL) instrumentation for the go-pinterest client.
//
// It exposes:
//   - Metrics: counters and histograms for code exchanges and API requests
//   - Traces: spans around the token exchange and every API call
//
// When Config.Enabled is false the package hands out no-op providers, so
// instrumented code paths cost nothing.
//
// # Quick Start
//
//	inst, err := instrumentation.New(instrumentation.Config{
//		ServiceName:    "my-pin-sync",
//		ServiceVersion: "1.0.0",
//		Enabled:        true,
//		MetricReader:   reader, // any sdkmetric.Reader
//		SpanProcessor:  sdktrace.NewBatchSpanProcessor(exporter),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer inst.Shutdown(context.Background())
//
//	builder := pinterest.NewTokenBuilder(pinterest.Config{
//		ClientID:        "...",
//		ClientSecret:    "...",
//		RedirectURL:     "https://example.com/callback",
//		Instrumentation: inst,
//	})
//
// # Metrics
//
//   - pinterest.oauth.code.exchanged: counter, attributes oauth.client_id, result
//   - pinterest.oauth.code.exchange.duration: histogram (ms)
//   - pinterest.api.requests.total: counter, attributes http.method, http.endpoint, http.status_code
//   - pinterest.api.request.duration: histogram (ms)
//   - pinterest.api.rate_limit.waited: counter of requests delayed by the client-side limiter
//
// Authorization codes, tokens and client secrets are never recorded.
package instrumentation
