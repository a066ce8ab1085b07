// Package session wires one player's game: simulation, event sinks, score
// recording and the terminal app.
package session

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/samdwyer/scavenger/internal/event"
	"github.com/samdwyer/scavenger/internal/game"
	"github.com/samdwyer/scavenger/internal/scores"
	"github.com/samdwyer/scavenger/internal/telemetry"
	"github.com/samdwyer/scavenger/internal/ui"
)

// Deps are the collaborators shared by every session of a process.
type Deps struct {
	Config game.Config
	Logger logr.Logger
	// Store records finished runs. Nil disables scores.
	Store scores.Store
	// Spectators, if set, receives every event of the session.
	Spectators event.Publisher
}

// Play runs a game on screen until the player quits, the screen closes or
// ctx is done.
func Play(ctx context.Context, screen *ui.Screen, d Deps) error {
	logger := d.Logger
	analytics := telemetry.NewAnalytics(telemetry.Tracer("analytics"), nil, logger)
	logger = logger.WithValues("player", analytics.Player())

	bus := event.NewBus(event.LogSink(logger), event.TraceSink(), analytics, d.Spectators)
	sim, err := game.New(d.Config, game.WithEvents(bus), game.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("new game: %w", err)
	}

	opts := []ui.AppOption{ui.WithAppLogger(logger)}
	if d.Store != nil {
		rec := scores.NewRecorder(ctx, d.Store, analytics.Player(), d.Config.Seed, logger)
		bus.Subscribe(event.Filter(rec, event.LevelStarted, event.GameOver))
		opts = append(opts, ui.WithBest(rec))
	}
	app := ui.NewApp(screen, sim, opts...)
	bus.Subscribe(app)

	logger.Info("session started")
	defer logger.Info("session ended", "level", sim.Level(), "turn", sim.Turn())
	return app.Run(ctx)
}
