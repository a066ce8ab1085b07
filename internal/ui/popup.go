package ui

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/samdwyer/scavenger/internal/event"
	"github.com/samdwyer/scavenger/internal/world"
)

// DefaultPopupTime is how long floating food text stays on screen.
const DefaultPopupTime = time.Second

// Popup is a short piece of text floating up from a cell.
type Popup struct {
	Text  string
	At    world.Point
	Gain  bool
	start time.Time
}

// Popups shows the food the player gains or loses as text that rises one
// cell and fades out.
type Popups struct {
	duration time.Duration
	items    []Popup
}

// NewPopups creates a Popups. A non-positive duration uses DefaultPopupTime.
func NewPopups(duration time.Duration) *Popups {
	if duration <= 0 {
		duration = DefaultPopupTime
	}
	return &Popups{duration: duration}
}

func (p *Popups) Publish(_ context.Context, e event.Event) {
	switch e.Kind {
	case event.FoodPickup:
		p.items = append(p.items, Popup{Text: "+" + strconv.Itoa(e.Amount), At: e.At, Gain: true, start: e.Time})
	case event.PlayerDamaged:
		p.items = append(p.items, Popup{Text: "-" + strconv.Itoa(e.Amount), At: e.At, start: e.Time})
	case event.LevelStarted:
		p.items = p.items[:0]
	}
}

// Active drops expired popups and returns the rest, each lifted by how far
// it has risen at now, with the fraction of its life remaining.
func (p *Popups) Active(now time.Time) ([]Popup, []float64) {
	live := p.items[:0]
	for _, it := range p.items {
		if now.Sub(it.start) < p.duration {
			live = append(live, it)
		}
	}
	p.items = live

	out := make([]Popup, len(live))
	fade := make([]float64, len(live))
	for i, it := range live {
		frac := float64(max(now.Sub(it.start), 0)) / float64(p.duration)
		it.At.Y += int(math.Round(frac))
		out[i] = it
		fade[i] = 1 - frac
	}
	return out, fade
}
