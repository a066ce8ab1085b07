package entity

import (
	"context"

	"github.com/samdwyer/scavenger/internal/world"
)

// Player is the scavenger. Food is both its health and its score.
type Player struct {
	body
	Food       int
	WallDamage int // hit points removed from a wall per chop
}

// NewPlayer creates a player at the given cell.
func NewPlayer(at world.Point, food, wallDamage int) *Player {
	return &Player{
		body:       newBody(at),
		Food:       food,
		WallDamage: wallDamage,
	}
}

func (p *Player) Kind() Kind { return KindPlayer }

// Alive reports whether the player still has food.
func (p *Player) Alive() bool { return p.Food > 0 }

func (p *Player) Expects() Kind { return KindWall }

// Interact chops at a breakable wall.
func (p *Player) Interact(ctx context.Context, target Actor, fx Effects) {
	if wall, ok := target.(*BreakableWall); ok {
		fx.DamageWall(ctx, wall, p.WallDamage)
	}
}

// LoseFood subtracts amount and returns what is left.
func (p *Player) LoseFood(amount int) int {
	p.Food -= amount
	return p.Food
}

// AddFood adds amount and returns the new total.
func (p *Player) AddFood(amount int) int {
	p.Food += amount
	return p.Food
}
