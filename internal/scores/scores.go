// Package scores keeps the results of finished runs and the best level
// reached.
package scores

import (
	"context"
	"errors"
	"time"
)

// ErrClosed is returned by a store used after Close.
var ErrClosed = errors.New("score store closed")

// Entry is one finished run.
type Entry struct {
	Player  string    `json:"player"`
	Days    int       `json:"days"`
	Turns   uint64    `json:"turns"`
	Seed    int64     `json:"seed,omitempty"`
	EndedAt time.Time `json:"ended_at"`
}

// Store persists entries.
type Store interface {
	Record(ctx context.Context, e Entry) error
	// Best returns the most days any run survived, or 0.
	Best(ctx context.Context) (int, error)
	// Top returns up to n entries, most days first.
	Top(ctx context.Context, n int) ([]Entry, error)
	Close() error
}
