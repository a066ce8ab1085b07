// Package movement moves actors on the grid and resolves what happens when
// a move is blocked.
package movement

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/samdwyer/scavenger/internal/entity"
	"github.com/samdwyer/scavenger/internal/event"
	"github.com/samdwyer/scavenger/internal/world"
)

// InteractionRadius bounds the search for the actor blocking a move: only
// actors inside the 5x5 square around the mover are considered.
const InteractionRadius = 2

// DefaultSenseRange is how far an enemy notices the player on both axes.
const DefaultSenseRange = 8

// MoveResult is the outcome of a move attempt.
type MoveResult int

const (
	Moved MoveResult = iota
	Blocked
)

// String returns the result name.
func (m MoveResult) String() string {
	switch m {
	case Moved:
		return "Moved"
	case Blocked:
		return "Blocked"
	default:
		return "Unknown"
	}
}

// Resolver commits moves to the grid of the current level.
type Resolver struct {
	grid       *world.Grid
	roster     *entity.Roster
	effects    entity.Effects
	events     event.Publisher
	senseRange int
	logger     logr.Logger
}

// NewResolver creates a resolver that hands interactions to effects.
// events may be nil; a non-positive senseRange uses DefaultSenseRange.
func NewResolver(effects entity.Effects, events event.Publisher, senseRange int, logger logr.Logger) *Resolver {
	if events == nil {
		events = event.Nop()
	}
	if senseRange <= 0 {
		senseRange = DefaultSenseRange
	}
	return &Resolver{
		effects:    effects,
		events:     events,
		senseRange: senseRange,
		logger:     logger.WithName("movement"),
	}
}

// Bind points the resolver at a freshly generated level.
func (r *Resolver) Bind(grid *world.Grid, roster *entity.Roster) {
	r.grid = grid
	r.roster = roster
}

// AttemptMove moves mover one step in dir. When the target cell is free the
// mover's flag moves with it and the result is Moved. Otherwise the result
// is Blocked and, if an actor of the kind the mover expects stands on the
// target cell, the mover interacts with it; that actor is returned. hint is
// checked before the roster is searched and may be nil.
func (r *Resolver) AttemptMove(ctx context.Context, mover entity.Mover, dir world.Direction, hint entity.Actor) (MoveResult, entity.Actor) {
	from := mover.Position()
	to := from.Add(dir)

	flags, err := r.grid.Get(to)
	if err != nil {
		return Blocked, nil
	}

	if flags.CanMoveTo() {
		flag := mover.Kind().Flag()
		if err := r.grid.Clear(from, flag); err != nil {
			r.logger.Error(err, "clear mover", "kind", mover.Kind().String())
		}
		if err := r.grid.Set(to, flag); err != nil {
			r.logger.Error(err, "place mover", "kind", mover.Kind().String())
		}
		mover.SetPosition(to)
		r.events.Publish(ctx, event.Event{
			Kind:  event.ActorMoved,
			Actor: event.Ref{ID: mover.ID(), Kind: mover.Kind().String()},
			From:  from,
			At:    to,
		})
		return Moved, nil
	}

	target := r.blocker(mover, to, hint)
	if target != nil {
		mover.Interact(ctx, target, r.effects)
	}
	return Blocked, target
}

// blocker finds the actor at p that mover interacts with.
func (r *Resolver) blocker(mover entity.Mover, p world.Point, hint entity.Actor) entity.Actor {
	want := mover.Expects()
	if hint != nil && hint.Alive() && hint.Kind() == want && hint.Position() == p {
		return hint
	}
	if r.roster == nil {
		return nil
	}
	for _, a := range r.roster.Near(mover.Position(), InteractionRadius) {
		if a.Kind() == want && a.Position() == p {
			return a
		}
	}
	return nil
}

// MoveEnemy runs one turn of enemy e. It returns false, changing nothing,
// when the player is out of sensing range on both axes. Otherwise it returns
// true: the enemy either sits out a skipped turn or takes one greedy step
// toward the player, attacking if the player blocks the step.
func (r *Resolver) MoveEnemy(ctx context.Context, e *entity.Enemy, player *entity.Player) bool {
	ep, pp := e.Position(), player.Position()
	dx, dy := pp.X-ep.X, pp.Y-ep.Y
	if abs(dx) > r.senseRange && abs(dy) > r.senseRange {
		return false
	}
	if !e.Ready() {
		return true
	}
	r.AttemptMove(ctx, e, Chase(dx, dy), player)
	e.Acted()
	return true
}

// Chase returns the single-axis step toward a target dx, dy away. Only a
// target in the same column (dx == 0) is approached vertically. Any other
// target is approached horizontally, including one on a diagonal where
// |dx| == |dy|.
func Chase(dx, dy int) world.Direction {
	if dx == 0 {
		if dy > 0 {
			return world.Up
		}
		return world.Down
	}
	if dx > 0 {
		return world.Right
	}
	return world.Left
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
