package movement

import (
	"context"
	"testing"

	"github.com/go-logr/logr"

	"github.com/samdwyer/scavenger/internal/entity"
	"github.com/samdwyer/scavenger/internal/event"
	"github.com/samdwyer/scavenger/internal/world"
)

type recordingEffects struct {
	hits  int
	chops int
	last  entity.Actor
}

func (r *recordingEffects) HitPlayer(_ context.Context, _ *entity.Enemy, target *entity.Player, amount int) {
	r.hits++
	r.last = target
	target.LoseFood(amount)
}

func (r *recordingEffects) DamageWall(_ context.Context, wall *entity.BreakableWall, amount int) {
	r.chops++
	r.last = wall
	wall.TakeDamage(amount)
}

type arena struct {
	grid    *world.Grid
	roster  *entity.Roster
	effects *recordingEffects
	sink    *event.MemorySink
	r       *Resolver
}

// newArena builds a size x size room: an outer wall ring around ground.
func newArena(t *testing.T, size int) *arena {
	t.Helper()
	prev := world.SetInvariantAssertions(true)
	t.Cleanup(func() { world.SetInvariantAssertions(prev) })

	g := world.NewGrid(size, size)
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			flag := world.Ground
			if x == 0 || y == 0 || x == size-1 || y == size-1 {
				flag = world.OuterWall
			}
			if err := g.Set(world.Point{X: x, Y: y}, flag); err != nil {
				t.Fatal(err)
			}
		}
	}
	a := &arena{
		grid:    g,
		roster:  entity.NewRoster(),
		effects: &recordingEffects{},
		sink:    event.NewMemorySink(),
	}
	a.r = NewResolver(a.effects, a.sink, 0, logr.Discard())
	a.r.Bind(a.grid, a.roster)
	return a
}

func (a *arena) place(t *testing.T, actor entity.Actor) {
	t.Helper()
	if err := a.grid.Set(actor.Position(), actor.Kind().Flag()); err != nil {
		t.Fatal(err)
	}
	a.roster.Add(actor)
}

func (a *arena) cells() []world.TileFlags {
	var out []world.TileFlags
	for y := 0; y < a.grid.Height(); y++ {
		for x := 0; x < a.grid.Width(); x++ {
			f, _ := a.grid.Get(world.Point{X: x, Y: y})
			out = append(out, f)
		}
	}
	return out
}

func TestSuccessfulMoveChangesExactlyTwoCells(t *testing.T) {
	a := newArena(t, 7)
	p := entity.NewPlayer(world.Point{X: 2, Y: 2}, 100, 1)
	a.place(t, p)

	before := a.cells()
	result, target := a.r.AttemptMove(context.Background(), p, world.Up, nil)
	after := a.cells()

	if result != Moved || target != nil {
		t.Fatalf("AttemptMove = %v, %v; want Moved, nil", result, target)
	}
	if p.Position() != (world.Point{X: 2, Y: 3}) {
		t.Errorf("position = %v, want (2,3)", p.Position())
	}

	changed := 0
	for i := range before {
		if before[i] != after[i] {
			changed++
		}
	}
	if changed != 2 {
		t.Errorf("%d cells changed, want 2", changed)
	}
	src, _ := a.grid.Get(world.Point{X: 2, Y: 2})
	dst, _ := a.grid.Get(world.Point{X: 2, Y: 3})
	if src.HasPlayer() || !dst.HasPlayer() {
		t.Errorf("flags not moved: src=%v dst=%v", src, dst)
	}

	moved := a.sink.OfKind(event.ActorMoved)
	if len(moved) != 1 || moved[0].From != (world.Point{X: 2, Y: 2}) || moved[0].At != (world.Point{X: 2, Y: 3}) {
		t.Errorf("actor.moved events = %+v", moved)
	}
}

func TestBlockedMoveMutatesNothing(t *testing.T) {
	tests := []struct {
		name string
		at   world.Point
		dir  world.Direction
	}{
		{"outer wall", world.Point{X: 1, Y: 1}, world.Left},
		{"out of bounds", world.Point{X: 1, Y: 1}, world.Direction{DX: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArena(t, 5)
			p := entity.NewPlayer(tt.at, 100, 1)
			a.place(t, p)

			before := a.cells()
			result, target := a.r.AttemptMove(context.Background(), p, tt.dir, nil)
			after := a.cells()

			if result != Blocked || target != nil {
				t.Errorf("AttemptMove = %v, %v; want Blocked, nil", result, target)
			}
			for i := range before {
				if before[i] != after[i] {
					t.Fatalf("cell %d changed from %v to %v", i, before[i], after[i])
				}
			}
			if p.Position() != tt.at {
				t.Errorf("position moved to %v", p.Position())
			}
			if a.effects.hits+a.effects.chops != 0 {
				t.Error("no interaction expected")
			}
		})
	}
}

func TestPlayerChopsWallItBumps(t *testing.T) {
	a := newArena(t, 7)
	p := entity.NewPlayer(world.Point{X: 2, Y: 2}, 100, 1)
	w := entity.NewBreakableWall(world.Point{X: 3, Y: 2}, 3, 0)
	a.place(t, p)
	a.place(t, w)

	result, target := a.r.AttemptMove(context.Background(), p, world.Right, nil)
	if result != Blocked {
		t.Fatalf("result = %v, want Blocked", result)
	}
	if target != entity.Actor(w) {
		t.Errorf("target = %v, want the wall", target)
	}
	if a.effects.chops != 1 || w.HP != 2 {
		t.Errorf("chops=%d hp=%d, want 1 and 2", a.effects.chops, w.HP)
	}
	if p.Position() != (world.Point{X: 2, Y: 2}) {
		t.Error("player should not move into a wall")
	}
}

func TestPlayerIgnoresEnemyItBumps(t *testing.T) {
	a := newArena(t, 7)
	p := entity.NewPlayer(world.Point{X: 2, Y: 2}, 100, 1)
	e := entity.NewEnemy("zombie", 10, world.Point{X: 2, Y: 3})
	a.place(t, p)
	a.place(t, e)

	result, target := a.r.AttemptMove(context.Background(), p, world.Up, nil)
	if result != Blocked || target != nil {
		t.Errorf("AttemptMove = %v, %v; want Blocked, nil", result, target)
	}
	if a.effects.hits+a.effects.chops != 0 {
		t.Error("player must not interact with enemies")
	}
}

func TestHintMustBeOnTarget(t *testing.T) {
	a := newArena(t, 9)
	p := entity.NewPlayer(world.Point{X: 4, Y: 4}, 100, 1)
	e := entity.NewEnemy("zombie", 10, world.Point{X: 4, Y: 5})
	blocker := entity.NewEnemy("zombie", 10, world.Point{X: 5, Y: 5})
	a.place(t, p)
	a.place(t, e)
	a.place(t, blocker)

	// The hint is the player but the step hits another enemy.
	result, target := a.r.AttemptMove(context.Background(), e, world.Right, p)
	if result != Blocked || target != nil {
		t.Errorf("AttemptMove = %v, %v; want Blocked, nil", result, target)
	}
	if a.effects.hits != 0 {
		t.Error("enemy must not hit a player it did not bump")
	}
}

func TestEnemyFindsPlayerWithoutHint(t *testing.T) {
	a := newArena(t, 7)
	p := entity.NewPlayer(world.Point{X: 2, Y: 2}, 100, 1)
	e := entity.NewEnemy("zombie", 10, world.Point{X: 3, Y: 2})
	a.place(t, p)
	a.place(t, e)

	_, target := a.r.AttemptMove(context.Background(), e, world.Left, nil)
	if target != entity.Actor(p) || p.Food != 90 {
		t.Errorf("target=%v food=%d, want player hit for 10", target, p.Food)
	}
}

func TestMoveEnemyAlternatesActAndSkip(t *testing.T) {
	a := newArena(t, 12)
	p := entity.NewPlayer(world.Point{X: 1, Y: 1}, 100, 1)
	e := entity.NewEnemy("zombie", 10, world.Point{X: 8, Y: 1})
	a.place(t, p)
	a.place(t, e)

	xs := []int{}
	for i := 0; i < 6; i++ {
		if !a.r.MoveEnemy(context.Background(), e, p) {
			t.Fatalf("turn %d: enemy in range reported no attempt", i)
		}
		xs = append(xs, e.Position().X)
	}
	want := []int{7, 7, 6, 6, 5, 5}
	for i := range want {
		if xs[i] != want[i] {
			t.Fatalf("x positions = %v, want %v", xs, want)
		}
	}
}

func TestMoveEnemyOutOfRangeDoesNothing(t *testing.T) {
	a := newArena(t, 14)
	p := entity.NewPlayer(world.Point{X: 1, Y: 1}, 100, 1)
	e := entity.NewEnemy("zombie", 10, world.Point{X: 11, Y: 11})
	a.place(t, p)
	a.place(t, e)

	before := a.cells()
	for i := 0; i < 3; i++ {
		if a.r.MoveEnemy(context.Background(), e, p) {
			t.Fatal("enemy beyond sense range on both axes should not act")
		}
	}
	if e.Skipping() {
		t.Error("out-of-range turns must not touch the skip flag")
	}
	after := a.cells()
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("out-of-range enemy changed the grid")
		}
	}

	// In range on one axis is enough.
	e2 := entity.NewEnemy("zombie", 10, world.Point{X: 11, Y: 2})
	a.place(t, e2)
	if !a.r.MoveEnemy(context.Background(), e2, p) {
		t.Error("enemy within range on y should act")
	}
}

func TestEnemyAttacksAdjacentPlayer(t *testing.T) {
	a := newArena(t, 7)
	p := entity.NewPlayer(world.Point{X: 2, Y: 2}, 100, 1)
	e := entity.NewEnemy("ghoul", 20, world.Point{X: 2, Y: 4})
	a.place(t, p)
	a.place(t, e)

	ctx := context.Background()
	a.r.MoveEnemy(ctx, e, p) // steps down to (2,3)
	a.r.MoveEnemy(ctx, e, p) // skipped
	a.r.MoveEnemy(ctx, e, p) // bumps the player

	if e.Position() != (world.Point{X: 2, Y: 3}) {
		t.Errorf("enemy at %v, want (2,3)", e.Position())
	}
	if a.effects.hits != 1 || p.Food != 80 {
		t.Errorf("hits=%d food=%d, want 1 and 80", a.effects.hits, p.Food)
	}
}

func TestChase(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   world.Direction
	}{
		{0, 3, world.Up},
		{0, -3, world.Down},
		{2, 2, world.Right},
		{-3, -3, world.Left},
		{1, -7, world.Right},
		{-1, 5, world.Left},
		{4, 0, world.Right},
	}
	for _, tt := range tests {
		if got := Chase(tt.dx, tt.dy); got != tt.want {
			t.Errorf("Chase(%d,%d) = %v, want %v", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestMoveResultString(t *testing.T) {
	if Moved.String() != "Moved" || Blocked.String() != "Blocked" || MoveResult(9).String() != "Unknown" {
		t.Error("unexpected MoveResult names")
	}
}
