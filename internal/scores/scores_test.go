package scores

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-logr/logr"

	"github.com/samdwyer/scavenger/internal/event"
)

func TestDefaultPathUsesXDGDataHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "scavenger", "scores.jsonl"); got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}

func TestDefaultPathFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", home)
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".local", "share", "scavenger", "scores.jsonl"); got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}

func TestFileStoreRecordAndRank(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "nested", "scores.jsonl"))

	if best, err := s.Best(ctx); err != nil || best != 0 {
		t.Fatalf("Best on missing file = %d, %v; want 0, nil", best, err)
	}

	end := time.Unix(1_700_000_000, 0).UTC()
	for i, days := range []int{3, 7, 1, 7} {
		e := Entry{Player: "p", Days: days, Turns: uint64(days * 10), EndedAt: end.Add(time.Duration(i) * time.Minute)}
		if err := s.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	best, err := s.Best(ctx)
	if err != nil || best != 7 {
		t.Errorf("Best = %d, %v; want 7", best, err)
	}
	top, err := s.Top(ctx, 3)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Top(3) returned %d entries", len(top))
	}
	if top[0].Days != 7 || top[1].Days != 7 || top[2].Days != 3 {
		t.Errorf("Top order = %d,%d,%d; want 7,7,3", top[0].Days, top[1].Days, top[2].Days)
	}
	// Ties keep file order.
	if !top[0].EndedAt.Before(top[1].EndedAt) {
		t.Errorf("tied entries out of order: %v then %v", top[0].EndedAt, top[1].EndedAt)
	}
}

func TestFileStoreSkipsBadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.jsonl")
	content := "{\"player\":\"a\",\"days\":4}\nnot json\n{\"player\":\"b\",\"days\":2}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	top, err := NewFileStore(path).Top(context.Background(), -1)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 2 {
		t.Errorf("read %d entries, want 2", len(top))
	}
}

func TestFileStoreClosed(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "scores.jsonl"))
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Record(context.Background(), Entry{Days: 1}); !errors.Is(err, ErrClosed) {
		t.Errorf("Record after Close = %v, want ErrClosed", err)
	}
}

func TestRecorderTracksBestAndRecordsGameOver(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "scores.jsonl"))
	if err := store.Record(ctx, Entry{Player: "old", Days: 4}); err != nil {
		t.Fatal(err)
	}

	r := NewRecorder(ctx, store, "me", 42, logr.Discard())
	if r.Best() != 4 {
		t.Fatalf("initial Best = %d, want 4", r.Best())
	}

	for level := 1; level <= 6; level++ {
		r.Publish(ctx, event.Event{Kind: event.LevelStarted, Level: level})
	}
	if r.Best() != 6 {
		t.Errorf("Best during run = %d, want 6", r.Best())
	}

	end := time.Unix(1_700_000_000, 0).UTC()
	r.Publish(ctx, event.Event{Kind: event.GameOver, Level: 6, Turn: 88, Time: end})

	top, err := store.Top(ctx, 1)
	if err != nil || len(top) != 1 {
		t.Fatalf("Top = %v, %v", top, err)
	}
	want := Entry{Player: "me", Days: 6, Turns: 88, Seed: 42, EndedAt: end}
	if top[0] != want {
		t.Errorf("recorded %+v, want %+v", top[0], want)
	}
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("SCAVENGER_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("SCAVENGER_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dsn)
	if err != nil {
		t.Fatalf("NewPostgresStore: %v", err)
	}
	defer s.Close()

	before, err := s.Best(ctx)
	if err != nil {
		t.Fatalf("Best: %v", err)
	}
	e := Entry{Player: "pg-test", Days: before + 1, Turns: 5, EndedAt: time.Now().UTC().Truncate(time.Second)}
	if err := s.Record(ctx, e); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if best, err := s.Best(ctx); err != nil || best != before+1 {
		t.Errorf("Best = %d, %v; want %d", best, err, before+1)
	}
	top, err := s.Top(ctx, 1)
	if err != nil || len(top) != 1 || top[0].Player != "pg-test" {
		t.Errorf("Top(1) = %+v, %v", top, err)
	}
}
