package telemetry

import (
	"context"

	"go.trai.ch/prism/internal/core/ports"
)

var _ ports.Tracer = NoOpTracer{}

// NoOpTracer discards every span.
type NoOpTracer struct{}

// NewNoOpTracer returns a tracer that records nothing.
func NewNoOpTracer() NoOpTracer {
	return NoOpTracer{}
}

// Start returns ctx unchanged and a span that ignores every call.
func (NoOpTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, noOpSpan{}
}

// EmitPlan does nothing.
func (NoOpTracer) EmitPlan(context.Context, []string) {}

type noOpSpan struct{}

func (noOpSpan) End()                        {}
func (noOpSpan) RecordError(error)           {}
func (noOpSpan) SetAttribute(string, any)    {}
func (noOpSpan) Write(p []byte) (int, error) { return len(p), nil }
