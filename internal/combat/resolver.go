// Package combat resolves damage between actors: enemies biting the player
// and the player chopping breakable walls.
package combat

import (
	"context"
	"math/rand"

	"github.com/go-logr/logr"

	"github.com/samdwyer/scavenger/internal/entity"
	"github.com/samdwyer/scavenger/internal/event"
	"github.com/samdwyer/scavenger/internal/world"
)

// Resolver applies damage and its consequences to the grid and roster of the
// current level. It implements entity.Effects.
type Resolver struct {
	grid   *world.Grid
	roster *entity.Roster
	rng    *rand.Rand
	events event.Publisher
	logger logr.Logger

	onStarved func(ctx context.Context)
}

var _ entity.Effects = (*Resolver)(nil)

// NewResolver creates a resolver. events may be nil.
func NewResolver(rng *rand.Rand, events event.Publisher, logger logr.Logger) *Resolver {
	if events == nil {
		events = event.Nop()
	}
	return &Resolver{
		rng:    rng,
		events: events,
		logger: logger.WithName("combat"),
	}
}

// Bind points the resolver at a freshly generated level.
func (r *Resolver) Bind(grid *world.Grid, roster *entity.Roster) {
	r.grid = grid
	r.roster = roster
}

// OnStarved registers the hook run when the player's food first drops to
// zero or below.
func (r *Resolver) OnStarved(fn func(ctx context.Context)) {
	r.onStarved = fn
}

// HitPlayer records the attack and takes amount food from target.
func (r *Resolver) HitPlayer(ctx context.Context, attacker *entity.Enemy, target *entity.Player, amount int) {
	r.events.Publish(ctx, event.Event{
		Kind:   event.PlayerAttacked,
		Actor:  ref(attacker),
		Target: ref(target),
		At:     target.Position(),
		From:   attacker.Position(),
		Amount: amount,
	})
	r.LoseFood(ctx, target, amount)
}

// LoseFood takes amount food from the player as damage.
func (r *Resolver) LoseFood(ctx context.Context, p *entity.Player, amount int) {
	before := p.Food
	remaining := p.LoseFood(amount)
	r.events.Publish(ctx, event.Event{
		Kind:      event.PlayerDamaged,
		Actor:     ref(p),
		At:        p.Position(),
		Amount:    amount,
		Remaining: remaining,
	})
	r.checkStarved(ctx, p, before)
}

// SpendFood charges the player for an action. Unlike LoseFood it is not
// reported as damage.
func (r *Resolver) SpendFood(ctx context.Context, p *entity.Player, amount int) {
	before := p.Food
	p.LoseFood(amount)
	r.checkStarved(ctx, p, before)
}

func (r *Resolver) checkStarved(ctx context.Context, p *entity.Player, before int) {
	if p.Food > 0 || before <= 0 {
		return
	}
	r.logger.V(1).Info("player starved", "food", p.Food)
	r.events.Publish(ctx, event.Event{Kind: event.ActorDied, Actor: ref(p), At: p.Position()})
	if r.onStarved != nil {
		r.onStarved(ctx)
	}
}

// DamageWall removes amount hit points from wall. A wall that breaks leaves
// the roster and the grid, and drops food with its configured chance.
func (r *Resolver) DamageWall(ctx context.Context, wall *entity.BreakableWall, amount int) {
	if !wall.Alive() {
		return
	}
	broke := wall.TakeDamage(amount)
	at := wall.Position()
	r.events.Publish(ctx, event.Event{
		Kind:      event.WallDamaged,
		Actor:     ref(wall),
		At:        at,
		Amount:    amount,
		Remaining: max(wall.HP, 0),
	})
	if !broke {
		return
	}

	if r.roster != nil {
		r.roster.Remove(wall.ID())
	}
	if err := r.grid.Clear(at, world.Wall); err != nil {
		r.logger.Error(err, "clear broken wall", "x", at.X, "y", at.Y)
	}
	r.events.Publish(ctx, event.Event{Kind: event.WallDestroyed, Actor: ref(wall), At: at})
	r.events.Publish(ctx, event.Event{Kind: event.ActorDied, Actor: ref(wall), At: at})

	if r.rng.Float64() <= wall.FoodDropChance {
		if err := r.grid.Set(at, world.Food); err != nil {
			r.logger.Error(err, "drop food", "x", at.X, "y", at.Y)
			return
		}
		r.events.Publish(ctx, event.Event{Kind: event.FoodDropped, At: at})
	}
	r.logger.V(1).Info("wall destroyed", "x", at.X, "y", at.Y)
}

func ref(a entity.Actor) event.Ref {
	return event.Ref{ID: a.ID(), Kind: a.Kind().String()}
}
