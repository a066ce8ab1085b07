package ui

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/scavenger/internal/event"
	"github.com/samdwyer/scavenger/internal/world"
)

// DefaultMoveTime is how long an actor takes to slide one cell on screen.
const DefaultMoveTime = 100 * time.Millisecond

type track struct {
	from, to world.Point
	start    time.Time
}

// Motion animates actor moves. It listens for actor.moved events and
// reports where each actor should be drawn while it slides between cells.
// The simulation has already committed the move; Motion only delays what the
// screen shows.
type Motion struct {
	moveTime time.Duration
	tracks   map[uuid.UUID]track
}

// NewMotion creates a Motion. A non-positive moveTime uses DefaultMoveTime.
func NewMotion(moveTime time.Duration) *Motion {
	if moveTime <= 0 {
		moveTime = DefaultMoveTime
	}
	return &Motion{moveTime: moveTime, tracks: make(map[uuid.UUID]track)}
}

func (m *Motion) Publish(_ context.Context, e event.Event) {
	switch e.Kind {
	case event.ActorMoved:
		m.tracks[e.Actor.ID] = track{from: e.From, to: e.At, start: e.Time}
	case event.ActorDied:
		delete(m.tracks, e.Actor.ID)
	case event.LevelStarted:
		clear(m.tracks)
	}
}

// Position returns the cell to draw actor id in. at is the actor's committed
// position; a track that does not end there is stale and ignored.
func (m *Motion) Position(id uuid.UUID, at world.Point, now time.Time) world.Point {
	t, ok := m.tracks[id]
	if !ok || t.to != at {
		return at
	}
	elapsed := now.Sub(t.start)
	if elapsed >= m.moveTime {
		delete(m.tracks, id)
		return at
	}
	if elapsed < 0 {
		elapsed = 0
	}
	frac := float64(elapsed) / float64(m.moveTime)
	return world.Point{
		X: t.from.X + int(math.Round(float64(t.to.X-t.from.X)*frac)),
		Y: t.from.Y + int(math.Round(float64(t.to.Y-t.from.Y)*frac)),
	}
}

// Moving reports whether any actor is still sliding at now.
func (m *Motion) Moving(now time.Time) bool {
	for _, t := range m.tracks {
		if now.Sub(t.start) < m.moveTime {
			return true
		}
	}
	return false
}
