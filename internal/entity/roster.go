package entity

import (
	"slices"

	"github.com/google/uuid"

	"github.com/samdwyer/scavenger/internal/world"
)

// Roster holds the actors of one level in registration order.
type Roster struct {
	actors []Actor
	player *Player
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{}
}

// Add registers a. Adding a player also makes it the roster's player.
func (r *Roster) Add(a Actor) {
	if p, ok := a.(*Player); ok {
		r.player = p
	}
	r.actors = append(r.actors, a)
}

// Remove drops the actor with the given id, keeping the order of the rest.
func (r *Roster) Remove(id uuid.UUID) bool {
	i := slices.IndexFunc(r.actors, func(a Actor) bool { return a.ID() == id })
	if i < 0 {
		return false
	}
	if r.player != nil && r.player.ID() == id {
		r.player = nil
	}
	r.actors = slices.Delete(r.actors, i, i+1)
	return true
}

// Player returns the registered player, or nil.
func (r *Roster) Player() *Player { return r.player }

// Len returns the number of registered actors.
func (r *Roster) Len() int { return len(r.actors) }

// All returns the actors in registration order. The slice is a copy.
func (r *Roster) All() []Actor {
	return slices.Clone(r.actors)
}

// Get returns the actor with the given id.
func (r *Roster) Get(id uuid.UUID) (Actor, bool) {
	for _, a := range r.actors {
		if a.ID() == id {
			return a, true
		}
	}
	return nil, false
}

// Enemies returns the living enemies in registration order.
func (r *Roster) Enemies() []*Enemy {
	var out []*Enemy
	for _, a := range r.actors {
		if e, ok := a.(*Enemy); ok && e.Alive() {
			out = append(out, e)
		}
	}
	return out
}

// Walls returns the standing breakable walls in registration order.
func (r *Roster) Walls() []*BreakableWall {
	var out []*BreakableWall
	for _, a := range r.actors {
		if w, ok := a.(*BreakableWall); ok && w.Alive() {
			out = append(out, w)
		}
	}
	return out
}

// Near returns the living actors inside the square of the given radius
// around center, in registration order.
func (r *Roster) Near(center world.Point, radius int) []Actor {
	var out []Actor
	for _, a := range r.actors {
		if !a.Alive() {
			continue
		}
		p := a.Position()
		if abs(p.X-center.X) <= radius && abs(p.Y-center.Y) <= radius {
			out = append(out, a)
		}
	}
	return out
}

// At returns the first living actor of kind k at p.
func (r *Roster) At(p world.Point, k Kind) (Actor, bool) {
	for _, a := range r.actors {
		if a.Kind() == k && a.Alive() && a.Position() == p {
			return a, true
		}
	}
	return nil, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
