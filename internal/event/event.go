// Package event defines the notifications the simulation raises for
// presentation, persistence and telemetry collaborators.
package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/scavenger/internal/world"
)

// Kind names an event.
type Kind string

const (
	LevelStarted   Kind = "level.started"
	LevelAdvanced  Kind = "level.advanced"
	FoodPickup     Kind = "food.pickup"
	PlayerDamaged  Kind = "player.damaged"
	PlayerAttacked Kind = "player.attacked"
	WallDamaged    Kind = "wall.damaged"
	WallDestroyed  Kind = "wall.destroyed"
	FoodDropped    Kind = "food.dropped"
	ActorMoved     Kind = "actor.moved"
	ActorDied      Kind = "actor.died"
	GameOver       Kind = "game.over"
)

// Ref identifies the actor an event is about.
type Ref struct {
	ID   uuid.UUID `json:"id"`
	Kind string    `json:"kind"`
}

// IsZero reports whether the ref points at no actor.
func (r Ref) IsZero() bool { return r.ID == uuid.Nil }

// Event is one notification. Fields that do not apply to a kind are zero.
type Event struct {
	Kind  Kind      `json:"kind"`
	Level int       `json:"level"`
	Turn  uint64    `json:"turn"`
	Time  time.Time `json:"time"`

	Actor  Ref `json:"actor,omitzero"`
	Target Ref `json:"target,omitzero"`

	At   world.Point `json:"at"`
	From world.Point `json:"from,omitzero"`

	// Amount is the damage dealt, food gained or food lost.
	Amount int `json:"amount,omitempty"`
	// Remaining is the player's food or the wall's hit points after the event.
	Remaining int `json:"remaining,omitempty"`
	// First is set on level.started for the opening level of a run.
	First bool `json:"first,omitempty"`
}
