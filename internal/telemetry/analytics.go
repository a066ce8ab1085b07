package telemetry

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/scavenger/internal/event"
)

// Analytics turns simulation events into one span per run milestone: level
// start, level success, level failure, food pickup and damage taken. Level
// and run durations are measured with the supplied clock.
type Analytics struct {
	tracer trace.Tracer
	now    func() time.Time
	logger logr.Logger

	player     string
	level      int
	levelStart time.Time
	runStart   time.Time
}

// NewAnalytics creates an analytics sink. A nil now uses time.Now.
func NewAnalytics(tracer trace.Tracer, now func() time.Time, logger logr.Logger) *Analytics {
	if now == nil {
		now = time.Now
	}
	return &Analytics{
		tracer: tracer,
		now:    now,
		logger: logger.WithName("analytics"),
		player: uuid.NewString(),
	}
}

// Player returns the anonymous id attached to every report.
func (a *Analytics) Player() string { return a.player }

func (a *Analytics) Publish(ctx context.Context, e event.Event) {
	now := a.now()
	switch e.Kind {
	case event.LevelStarted:
		a.level = e.Level
		a.levelStart = now
		if e.First || a.runStart.IsZero() {
			a.runStart = now
		}
		a.report(ctx, "level_start", attribute.Int("level", e.Level), attribute.Bool("first", e.First))
	case event.LevelAdvanced:
		a.report(ctx, "level_success",
			attribute.Int("level", a.level),
			attribute.Int("remaining_food", e.Remaining),
			attribute.Float64("level_time_s", now.Sub(a.levelStart).Seconds()),
			attribute.Float64("total_time_s", now.Sub(a.runStart).Seconds()))
	case event.GameOver:
		a.report(ctx, "level_failure",
			attribute.Int("level", a.level),
			attribute.Float64("level_time_s", now.Sub(a.levelStart).Seconds()),
			attribute.Float64("total_time_s", now.Sub(a.runStart).Seconds()))
	case event.FoodPickup:
		a.report(ctx, "pickup",
			attribute.Int("level", a.level),
			attribute.Int("new_food_count", e.Remaining),
			attribute.Float64("level_time_s", now.Sub(a.levelStart).Seconds()))
	case event.PlayerDamaged:
		a.report(ctx, "take_damage",
			attribute.Int("level", a.level),
			attribute.Int("remaining_food", e.Remaining),
			attribute.Float64("level_time_s", now.Sub(a.levelStart).Seconds()))
	}
}

func (a *Analytics) report(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	attrs = append(attrs, attribute.String("analytics.player", a.player))
	_, span := a.tracer.Start(ctx, "analytics."+name, trace.WithAttributes(attrs...))
	span.End()
	a.logger.V(1).Info(name, "level", a.level)
}
