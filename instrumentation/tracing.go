package instrumentation

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Common span and metric attribute keys
//
// SECURITY WARNING: Never record actual credential values (access tokens,
// authorization codes, client secrets) in traces or metrics. Only record
// metadata such as token types, scopes and results.
const (
	// OAuth attributes
	AttrClientID    = "oauth.client_id"  // Client identifier (non-secret)
	AttrScope       = "oauth.scope"      // Requested scopes
	AttrGrantType   = "oauth.grant_type" // OAuth grant type
	AttrTokenType   = "oauth.token_type" //nolint:gosec // Token type (bearer) - NOT the actual token
	AttrCodePresent = "oauth.code_present"
	AttrErrorCode   = "oauth.error" // OAuth error code (invalid_grant, ...)
	AttrResult      = "result"

	// HTTP attributes
	AttrHTTPEndpoint   = "http.endpoint"
	AttrHTTPMethod     = "http.method"
	AttrHTTPStatusCode = "http.status_code"
)

// RecordError records an error on a span with proper status codes (nil-safe)
func RecordError(span trace.Span, err error) {
	if span != nil && err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess marks a span as successful (nil-safe)
func SetSpanSuccess(span trace.Span) {
	if span != nil {
		span.SetStatus(codes.Ok, "")
	}
}

// SetSpanAttributes sets attributes on a span (nil-safe)
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	if span != nil {
		span.SetAttributes(attrs...)
	}
}

// AddOAuthAttributes adds client and scope attributes to a span (nil-safe).
// Empty values are skipped.
func AddOAuthAttributes(span trace.Span, clientID, scope string) {
	if clientID != "" {
		SetSpanAttributes(span, attribute.String(AttrClientID, clientID))
	}
	if scope != "" {
		SetSpanAttributes(span, attribute.String(AttrScope, scope))
	}
}

// AddHTTPAttributes adds HTTP request attributes to a span (nil-safe)
func AddHTTPAttributes(span trace.Span, method, endpoint string, statusCode int) {
	SetSpanAttributes(span,
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrHTTPEndpoint, endpoint),
		attribute.Int(AttrHTTPStatusCode, statusCode),
	)
}
