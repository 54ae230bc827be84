package telemetry_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/prism/internal/adapters/telemetry"
	"go.trai.ch/prism/internal/core/ports"
)

func setupMonitor() (*tracetest.SpanRecorder, *trace.TracerProvider) {
	sr := tracetest.NewSpanRecorder()
	tp := trace.NewTracerProvider(trace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	return sr, tp
}

func attributeMap(attrs []attribute.KeyValue) map[string]any {
	out := make(map[string]any, len(attrs))
	for _, a := range attrs {
		switch a.Value.Type() {
		case attribute.STRING:
			out[string(a.Key)] = a.Value.AsString()
		case attribute.INT64:
			out[string(a.Key)] = a.Value.AsInt64()
		case attribute.FLOAT64:
			out[string(a.Key)] = a.Value.AsFloat64()
		case attribute.BOOL:
			out[string(a.Key)] = a.Value.AsBool()
		case attribute.STRINGSLICE:
			out[string(a.Key)] = a.Value.AsStringSlice()
		}
	}
	return out
}

func TestOTelTracer_EmitPlan(t *testing.T) {
	sr, tp := setupMonitor()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracer("test-tracer")

	ctx := context.Background()
	tracer.EmitPlan(ctx, []string{"//a:b"})
	assert.Empty(t, sr.Ended(), "no span in context")

	ctx, span := tracer.Start(ctx, "analysis")
	tracer.EmitPlan(ctx, []string{"//a:b", "//c:d"})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "plan_emitted", events[0].Name)
	assert.Equal(t, []string{"//a:b", "//c:d"}, attributeMap(events[0].Attributes)["targets"])
}

func TestOTelTracer_StartAttributes(t *testing.T) {
	sr, tp := setupMonitor()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracer("test-tracer")
	_, span := tracer.Start(context.Background(), "loading",
		ports.WithAttribute("labels", 3),
		ports.WithAttribute("keep_going", true),
	)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	attrs := attributeMap(spans[0].Attributes())
	assert.Equal(t, int64(3), attrs["labels"])
	assert.Equal(t, true, attrs["keep_going"])
}

func TestOTelSpan_SetAttribute(t *testing.T) {
	sr, tp := setupMonitor()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracer("test-tracer")
	_, span := tracer.Start(context.Background(), "attr-test")

	span.SetAttribute("str", "val")
	span.SetAttribute("int", 123)
	span.SetAttribute("int64", int64(456))
	span.SetAttribute("float", 3.14)
	span.SetAttribute("bool", true)
	span.SetAttribute("slice", []string{"a", "b"})
	span.SetAttribute("unknown", struct{}{})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	attrs := attributeMap(spans[0].Attributes())
	assert.Equal(t, "val", attrs["str"])
	assert.Equal(t, int64(123), attrs["int"])
	assert.Equal(t, int64(456), attrs["int64"])
	assert.InEpsilon(t, 3.14, attrs["float"], 0.001)
	assert.Equal(t, true, attrs["bool"])
	assert.Equal(t, []string{"a", "b"}, attrs["slice"])
	assert.Equal(t, "{}", attrs["unknown"])
}

func TestOTelSpan_RecordError(t *testing.T) {
	sr, tp := setupMonitor()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := telemetry.NewOTelTracer("test-tracer").Start(context.Background(), "analysis")
	span.RecordError(nil)
	span.RecordError(errors.New("boom"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
}

func TestOTelSpan_WriteBatchesIntoLogEvent(t *testing.T) {
	sr, tp := setupMonitor()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracer("test-tracer").WithClock(clockwork.NewFakeClock())
	_, span := tracer.Start(context.Background(), "analysis")
	_, err := fmt.Fprintln(span, "//a:b failed")
	require.NoError(t, err)
	_, err = fmt.Fprint(span, "//c:d failed")
	require.NoError(t, err)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "log", events[0].Name)
	attrs := attributeMap(events[0].Attributes)
	assert.Equal(t, []string{"//a:b failed", "//c:d failed"}, attrs["lines"])
	assert.Equal(t, int64(2), attrs["count"])
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	newCtx, span := tracer.Start(ctx, "test-span", ports.WithAttribute("k", "v"))
	assert.Equal(t, ctx, newCtx)
	tracer.EmitPlan(ctx, []string{"//a:b"})

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	n, err := span.Write([]byte("test log data"))
	require.NoError(t, err)
	assert.Equal(t, 13, n)
	span.End()
}
