package entity

import (
	"context"

	"github.com/samdwyer/scavenger/internal/gamedata"
	"github.com/samdwyer/scavenger/internal/world"
)

// Enemy chases the player and bites when adjacent.
type Enemy struct {
	body
	Def    *gamedata.EnemyDef // nil for enemies built without a definition
	KindID string
	Damage int // food taken from the player per hit

	skipMove bool
	dead     bool
}

// NewEnemy creates an enemy of the given kind.
func NewEnemy(kindID string, damage int, at world.Point) *Enemy {
	return &Enemy{
		body:   newBody(at),
		KindID: kindID,
		Damage: damage,
	}
}

// NewEnemyFromDef creates an enemy from a data-driven definition.
func NewEnemyFromDef(def *gamedata.EnemyDef, at world.Point) *Enemy {
	e := NewEnemy(def.ID, def.Damage, at)
	e.Def = def
	return e
}

func (e *Enemy) Kind() Kind { return KindEnemy }

func (e *Enemy) Alive() bool { return !e.dead }

// Kill takes the enemy out of play.
func (e *Enemy) Kill() { e.dead = true }

func (e *Enemy) Expects() Kind { return KindPlayer }

// Interact attacks the player.
func (e *Enemy) Interact(ctx context.Context, target Actor, fx Effects) {
	if player, ok := target.(*Player); ok {
		fx.HitPlayer(ctx, e, player, e.Damage)
	}
}

// Ready reports whether the enemy acts this turn. A pending skip is
// consumed and reported as false.
func (e *Enemy) Ready() bool {
	if e.skipMove {
		e.skipMove = false
		return false
	}
	return true
}

// Acted records a committed move attempt; the enemy sits out its next turn.
func (e *Enemy) Acted() { e.skipMove = true }

// Skipping reports whether the enemy will sit out its next turn.
func (e *Enemy) Skipping() bool { return e.skipMove }

// Name returns the display name.
func (e *Enemy) Name() string {
	if e.Def != nil {
		return e.Def.Name
	}
	return e.KindID
}
