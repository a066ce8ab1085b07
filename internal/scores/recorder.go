package scores

import (
	"context"
	"sync/atomic"

	"github.com/go-logr/logr"

	"github.com/samdwyer/scavenger/internal/event"
)

// Recorder listens to a run's events, records each game over in a store
// and tracks the best level for display.
type Recorder struct {
	store  Store
	player string
	seed   int64
	logger logr.Logger
	best   atomic.Int64
}

// NewRecorder creates a recorder and loads the stored best. A failed load
// starts the best at 0.
func NewRecorder(ctx context.Context, store Store, player string, seed int64, logger logr.Logger) *Recorder {
	r := &Recorder{store: store, player: player, seed: seed, logger: logger.WithName("scores")}
	best, err := store.Best(ctx)
	if err != nil {
		r.logger.Error(err, "load best score")
	}
	r.best.Store(int64(best))
	return r
}

// Best returns the most days survived, counting the run in progress.
func (r *Recorder) Best() int { return int(r.best.Load()) }

func (r *Recorder) raise(level int) {
	for {
		cur := r.best.Load()
		if int64(level) <= cur || r.best.CompareAndSwap(cur, int64(level)) {
			return
		}
	}
}

func (r *Recorder) Publish(ctx context.Context, e event.Event) {
	switch e.Kind {
	case event.LevelStarted:
		r.raise(e.Level)
	case event.GameOver:
		r.raise(e.Level)
		entry := Entry{Player: r.player, Days: e.Level, Turns: e.Turn, Seed: r.seed, EndedAt: e.Time}
		if err := r.store.Record(ctx, entry); err != nil {
			r.logger.Error(err, "record score", "days", e.Level)
			return
		}
		r.logger.V(1).Info("score recorded", "days", e.Level, "turns", e.Turn)
	}
}
