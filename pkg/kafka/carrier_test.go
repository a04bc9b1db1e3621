package kafka

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestHeaderCarrier_SetAndGet(t *testing.T) {
	headers := []kafka.Header{{Key: "event_type", Value: []byte("order.submitted")}}
	carrier := NewHeaderCarrier(&headers)

	if got := carrier.Get("event_type"); got != "order.submitted" {
		t.Errorf("Get(event_type) = %q", got)
	}
	if got := carrier.Get("missing"); got != "" {
		t.Errorf("Get(missing) = %q, want empty", got)
	}

	carrier.Set("source", "storefront")
	carrier.Set("event_type", "order.retried")

	if len(headers) != 2 {
		t.Fatalf("headers len = %d, want 2", len(headers))
	}
	if got := carrier.Get("event_type"); got != "order.retried" {
		t.Errorf("Get(event_type) after overwrite = %q", got)
	}
	if got := carrier.Keys(); len(got) != 2 || got[0] != "event_type" || got[1] != "source" {
		t.Errorf("Keys() = %v", got)
	}
}

func TestHeaderCarrier_TraceContextRoundTrip(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	headers := []kafka.Header{}
	prop := propagation.TraceContext{}
	prop.Inject(ctx, NewHeaderCarrier(&headers))

	want := "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"
	if got := NewHeaderCarrier(&headers).Get("traceparent"); got != want {
		t.Fatalf("traceparent = %q, want %q", got, want)
	}

	extracted := trace.SpanContextFromContext(prop.Extract(context.Background(), NewHeaderCarrier(&headers)))
	if extracted.TraceID() != traceID {
		t.Errorf("extracted trace id = %s", extracted.TraceID())
	}
}

func TestHeaderCarrier_Empty(t *testing.T) {
	headers := []kafka.Header{}
	carrier := NewHeaderCarrier(&headers)

	if keys := carrier.Keys(); len(keys) != 0 {
		t.Errorf("Keys() = %v, want none", keys)
	}
	if got := carrier.Get("anything"); got != "" {
		t.Errorf("Get = %q, want empty", got)
	}
}
