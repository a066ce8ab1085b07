// Package entity provides the actors that live on the grid: the player,
// enemies and breakable walls.
package entity

import (
	"context"

	"github.com/google/uuid"

	"github.com/samdwyer/scavenger/internal/world"
)

// Kind is the kind of an actor.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindWall
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Flag returns the tile flag that marks an actor of this kind on the grid.
func (k Kind) Flag() world.TileFlags {
	switch k {
	case KindPlayer:
		return world.Player
	case KindEnemy:
		return world.Zombie
	case KindWall:
		return world.Wall
	default:
		return 0
	}
}

// Actor is anything with a logical position on the grid. The position is
// authoritative; the grid cell at Position always carries Kind().Flag().
type Actor interface {
	ID() uuid.UUID
	Kind() Kind
	Position() world.Point
	SetPosition(p world.Point)
	Alive() bool
}

// Effects applies the outcome of an interaction.
type Effects interface {
	// HitPlayer makes attacker take amount food from target.
	HitPlayer(ctx context.Context, attacker *Enemy, target *Player, amount int)
	// DamageWall removes amount hit points from wall.
	DamageWall(ctx context.Context, wall *BreakableWall, amount int)
}

// Mover is an actor that moves and interacts with what blocks it.
type Mover interface {
	Actor
	// Expects is the kind of actor this mover interacts with when blocked.
	Expects() Kind
	// Interact handles being blocked by target, whose kind is Expects().
	Interact(ctx context.Context, target Actor, fx Effects)
}

type body struct {
	id  uuid.UUID
	pos world.Point
}

func newBody(at world.Point) body {
	return body{id: uuid.New(), pos: at}
}

func (b *body) ID() uuid.UUID { return b.id }

func (b *body) Position() world.Point { return b.pos }

func (b *body) SetPosition(p world.Point) { b.pos = p }
