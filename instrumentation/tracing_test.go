package instrumentation

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingInstrumentation(t *testing.T) (*Instrumentation, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	inst, err := New(Config{Enabled: true, SpanProcessor: recorder})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = inst.Shutdown(context.Background()) })
	return inst, recorder
}

func TestRecordError(t *testing.T) {
	inst, recorder := newRecordingInstrumentation(t)

	_, span := inst.Tracer("oauth").Start(context.Background(), "test-span")
	RecordError(span, errors.New("test error"))
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("got %d ended spans, want 1", len(ended))
	}
	if ended[0].Status().Code != codes.Error {
		t.Errorf("status = %v, want %v", ended[0].Status().Code, codes.Error)
	}
	if ended[0].Status().Description != "test error" {
		t.Errorf("status description = %q, want %q", ended[0].Status().Description, "test error")
	}
	if len(ended[0].Events()) != 1 {
		t.Errorf("got %d events, want 1 exception event", len(ended[0].Events()))
	}
}

func TestSetSpanSuccess(t *testing.T) {
	inst, recorder := newRecordingInstrumentation(t)

	_, span := inst.Tracer("oauth").Start(context.Background(), "test-span")
	SetSpanSuccess(span)
	span.End()

	if got := recorder.Ended()[0].Status().Code; got != codes.Ok {
		t.Errorf("status = %v, want %v", got, codes.Ok)
	}
}

func TestAddOAuthAttributes(t *testing.T) {
	tests := []struct {
		name      string
		clientID  string
		scope     string
		wantAttrs map[string]string
	}{
		{
			name:      "both",
			clientID:  "client",
			scope:     "read_public write_public",
			wantAttrs: map[string]string{AttrClientID: "client", AttrScope: "read_public write_public"},
		},
		{
			name:      "empty scope skipped",
			clientID:  "client",
			wantAttrs: map[string]string{AttrClientID: "client"},
		},
		{
			name:      "nothing",
			wantAttrs: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, recorder := newRecordingInstrumentation(t)

			_, span := inst.Tracer("oauth").Start(context.Background(), "test-span")
			AddOAuthAttributes(span, tt.clientID, tt.scope)
			span.End()

			got := map[string]string{}
			for _, kv := range recorder.Ended()[0].Attributes() {
				got[string(kv.Key)] = kv.Value.Emit()
			}
			if len(got) != len(tt.wantAttrs) {
				t.Errorf("attributes = %v, want %v", got, tt.wantAttrs)
			}
			for k, v := range tt.wantAttrs {
				if got[k] != v {
					t.Errorf("attribute %s = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestAddHTTPAttributes(t *testing.T) {
	inst, recorder := newRecordingInstrumentation(t)

	_, span := inst.Tracer("api").Start(context.Background(), "test-span")
	AddHTTPAttributes(span, "GET", "me/", 200)
	span.End()

	attrs := attribute.NewSet(recorder.Ended()[0].Attributes()...)
	if v, _ := attrs.Value(AttrHTTPStatusCode); v.AsInt64() != 200 {
		t.Errorf("status code attribute = %v, want 200", v.AsInt64())
	}
	if v, _ := attrs.Value(AttrHTTPEndpoint); v.AsString() != "me/" {
		t.Errorf("endpoint attribute = %q, want %q", v.AsString(), "me/")
	}
}

func TestNilSafeHelpers_WithNilSpans(t *testing.T) {
	// Should not panic
	RecordError(nil, errors.New("boom"))
	SetSpanSuccess(nil)
	SetSpanAttributes(nil, attribute.String("k", "v"))
	AddOAuthAttributes(nil, "client", "scope")
	AddHTTPAttributes(nil, "GET", "me/", 200)
}
