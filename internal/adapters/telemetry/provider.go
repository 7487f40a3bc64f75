package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/bundle/internal/core/ports"
)

var (
	_ ports.Tracer = (*OTelTracer)(nil)
	_ ports.Span   = (*OTelSpan)(nil)
)

// OTelTracer implements ports.Tracer on a private OpenTelemetry provider whose
// spans are rendered as task progress.
type OTelTracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	renderer ports.Renderer
}

// NewOTelTracer creates a tracer named name. Extra span processors receive
// every span next to the renderer bridge.
func NewOTelTracer(name string, renderer ports.Renderer, processors ...sdktrace.SpanProcessor) *OTelTracer {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSpanProcessor(NewBridge(renderer)),
	}
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	tp := sdktrace.NewTracerProvider(opts...)

	return &OTelTracer{
		provider: tp,
		tracer:   tp.Tracer(name),
		renderer: renderer,
	}
}

// Start creates a new span. Output written to the span is batched to the renderer.
func (t *OTelTracer) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	ctx, span := t.tracer.Start(ctx, name)

	var batcher *BatchProcessor
	if t.renderer != nil {
		spanID := span.SpanContext().SpanID().String()
		batcher = NewBatchProcessor(0, 0, func(data []byte) {
			t.renderer.OnTaskLog(spanID, data)
		})
	}

	return ctx, &OTelSpan{span: span, batcher: batcher}
}

// Shutdown ends the provider and flushes the renderer.
func (t *OTelTracer) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}

// OTelSpan implements ports.Span using OpenTelemetry.
type OTelSpan struct {
	span    trace.Span
	batcher *BatchProcessor
}

// End flushes pending output and completes the span.
func (s *OTelSpan) End() {
	if s.batcher != nil {
		_ = s.batcher.Close()
	}
	s.span.End()
}

// RecordError records err and marks the span failed.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

// Write forwards output to the renderer, or records it as a span event when there is none.
func (s *OTelSpan) Write(p []byte) (int, error) {
	if s.batcher != nil {
		return s.batcher.Write(p)
	}
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	return len(p), nil
}
