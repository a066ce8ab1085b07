package event

import (
	"context"

	"github.com/go-logr/logr"
)

// LogSink writes events to a logr.Logger. Movement is logged at verbosity 2,
// everything else at verbosity 1.
func LogSink(logger logr.Logger) Publisher {
	logger = logger.WithName("event")
	return PublisherFunc(func(_ context.Context, e Event) {
		level := 1
		if e.Kind == ActorMoved {
			level = 2
		}
		kv := []any{"level", e.Level, "turn", e.Turn, "x", e.At.X, "y", e.At.Y}
		if !e.Actor.IsZero() {
			kv = append(kv, "actor", e.Actor.Kind, "actorID", e.Actor.ID.String())
		}
		if !e.Target.IsZero() {
			kv = append(kv, "target", e.Target.Kind)
		}
		if e.Amount != 0 {
			kv = append(kv, "amount", e.Amount)
		}
		if e.Remaining != 0 {
			kv = append(kv, "remaining", e.Remaining)
		}
		logger.V(level).Info(string(e.Kind), kv...)
	})
}
