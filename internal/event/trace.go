package event

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TraceSink records each event on the span carried by ctx. Events published
// outside a recording span are dropped.
func TraceSink() Publisher {
	return PublisherFunc(func(ctx context.Context, e Event) {
		span := trace.SpanFromContext(ctx)
		if !span.IsRecording() {
			return
		}
		attrs := []attribute.KeyValue{
			attribute.Int("level", e.Level),
			attribute.Int64("turn", int64(e.Turn)),
			attribute.Int("x", e.At.X),
			attribute.Int("y", e.At.Y),
		}
		if !e.Actor.IsZero() {
			attrs = append(attrs,
				attribute.String("actor.kind", e.Actor.Kind),
				attribute.String("actor.id", e.Actor.ID.String()))
		}
		if e.Amount != 0 {
			attrs = append(attrs, attribute.Int("amount", e.Amount))
		}
		if e.Remaining != 0 {
			attrs = append(attrs, attribute.Int("remaining", e.Remaining))
		}
		if e.Kind == LevelStarted {
			attrs = append(attrs, attribute.Bool("first", e.First))
		}
		span.AddEvent(string(e.Kind), trace.WithAttributes(attrs...))
	})
}
