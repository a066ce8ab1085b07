package event

import "context"

// Publisher receives events. Implementations must not call back into the
// simulation.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, e Event)

func (f PublisherFunc) Publish(ctx context.Context, e Event) {
	if f == nil {
		return
	}
	f(ctx, e)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) {}

// Nop returns a publisher that drops every event.
func Nop() Publisher { return nopPublisher{} }

// Bus fans each event out to its subscribers in subscription order.
type Bus struct {
	subs []Publisher
}

// NewBus creates a bus with the given subscribers. Nil entries are skipped.
func NewBus(subs ...Publisher) *Bus {
	b := &Bus{}
	for _, s := range subs {
		b.Subscribe(s)
	}
	return b
}

// Subscribe adds p to the end of the delivery order.
func (b *Bus) Subscribe(p Publisher) {
	if p == nil {
		return
	}
	b.subs = append(b.subs, p)
}

func (b *Bus) Publish(ctx context.Context, e Event) {
	for _, s := range b.subs {
		s.Publish(ctx, e)
	}
}

// Filter forwards only events of the listed kinds.
func Filter(next Publisher, kinds ...Kind) Publisher {
	if next == nil {
		return Nop()
	}
	allowed := make(map[Kind]struct{}, len(kinds))
	for _, k := range kinds {
		allowed[k] = struct{}{}
	}
	return PublisherFunc(func(ctx context.Context, e Event) {
		if _, ok := allowed[e.Kind]; ok {
			next.Publish(ctx, e)
		}
	})
}
