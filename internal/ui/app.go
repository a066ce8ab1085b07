package ui

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"

	"github.com/samdwyer/scavenger/internal/event"
	"github.com/samdwyer/scavenger/internal/game"
)

// DefaultFrameTime is the redraw and simulation update interval.
const DefaultFrameTime = 33 * time.Millisecond

// BestSource reports the best level reached so far.
type BestSource interface {
	Best() int
}

// AppOption customizes an App.
type AppOption func(*App)

// WithBest shows the best level from src in the status line.
func WithBest(src BestSource) AppOption {
	return func(a *App) { a.best = src }
}

// WithAppLogger sets the logger.
func WithAppLogger(l logr.Logger) AppOption {
	return func(a *App) { a.logger = l }
}

// WithFrameTime sets the redraw interval.
func WithFrameTime(d time.Duration) AppOption {
	return func(a *App) { a.frame = d }
}

// WithNow sets the clock used for animation. It should match the
// simulation's clock.
func WithNow(now func() time.Time) AppOption {
	return func(a *App) { a.now = now }
}

// App runs one player's game on one screen. Subscribe the App to the
// simulation's events so moves animate and food changes float.
type App struct {
	screen   *Screen
	sim      *game.Simulation
	renderer *Renderer
	motion   *Motion
	popups   *Popups
	best     BestSource
	now      func() time.Time
	frame    time.Duration
	logger   logr.Logger
}

// NewApp creates an app driving sim on screen.
func NewApp(screen *Screen, sim *game.Simulation, opts ...AppOption) *App {
	a := &App{
		screen: screen,
		sim:    sim,
		motion: NewMotion(DefaultMoveTime),
		popups: NewPopups(DefaultPopupTime),
		now:    time.Now,
		frame:  DefaultFrameTime,
		logger: logr.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.WithName("ui")
	a.renderer = NewRenderer(screen, a.motion, a.popups)
	return a
}

func (a *App) Publish(ctx context.Context, e event.Event) {
	a.motion.Publish(ctx, e)
	a.popups.Publish(ctx, e)
}

// Run starts level 1 if no level exists yet and loops until the player
// quits, the screen closes or ctx is done.
func (a *App) Run(ctx context.Context) error {
	if a.sim.Level() == 0 {
		if _, err := a.sim.Restart(ctx); err != nil {
			return err
		}
	}

	events := a.screen.Events()
	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()

	for {
		a.Draw()
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			quit, err := a.Handle(ctx, ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		case <-ticker.C:
			a.sim.Update(ctx)
		}
	}
}

// Handle applies one terminal event and reports whether the app should
// stop.
func (a *App) Handle(ctx context.Context, ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		cmd, dir := Translate(ev)
		switch cmd {
		case CmdQuit:
			return true, nil
		case CmdRestart:
			if a.sim.State() == game.StateGameOver {
				if _, err := a.sim.Restart(ctx); err != nil {
					return false, err
				}
			}
		case CmdMove:
			if a.sim.State() != game.StatePlayerTurn {
				return false, nil
			}
			if _, err := a.sim.AttemptPlayerMove(ctx, dir); err != nil {
				if errors.Is(err, game.ErrNotPlayersTurn) {
					a.logger.V(2).Info("move ignored", "state", a.sim.State().String())
					return false, nil
				}
				return false, err
			}
		}
	}
	return false, nil
}

// Draw renders the current state.
func (a *App) Draw() {
	best := 0
	if a.best != nil {
		best = a.best.Best()
	}
	a.renderer.Render(Frame{
		Grid:   a.sim.Snapshot(),
		Actors: a.sim.Actors(),
		Player: a.sim.Player(),
		Level:  a.sim.Level(),
		Best:   best,
		State:  a.sim.State(),
		Now:    a.now(),
	})
}
