package entity

import "github.com/samdwyer/scavenger/internal/world"

// BreakableWall is rubble the player can chop through.
type BreakableWall struct {
	body
	HP             int
	FoodDropChance float64
}

// NewBreakableWall creates a wall with the given hit points.
func NewBreakableWall(at world.Point, hp int, foodDropChance float64) *BreakableWall {
	return &BreakableWall{
		body:           newBody(at),
		HP:             hp,
		FoodDropChance: foodDropChance,
	}
}

func (w *BreakableWall) Kind() Kind { return KindWall }

// Alive reports whether the wall still stands.
func (w *BreakableWall) Alive() bool { return w.HP > 0 }

// TakeDamage removes amount hit points and reports whether this call broke
// the wall. Non-positive amounts and hits on a broken wall change nothing.
func (w *BreakableWall) TakeDamage(amount int) bool {
	if amount <= 0 || w.HP <= 0 {
		return false
	}
	w.HP -= amount
	return w.HP <= 0
}
