package combat

import (
	"context"
	"math/rand"
	"testing"

	"github.com/go-logr/logr"

	"github.com/samdwyer/scavenger/internal/entity"
	"github.com/samdwyer/scavenger/internal/event"
	"github.com/samdwyer/scavenger/internal/world"
)

// newArena builds a 5x5 all-ground grid with one breakable wall at (2,2)
// and the player at (1,1).
func newArena(t *testing.T, seed int64, dropChance float64) (*Resolver, *event.MemorySink, *entity.BreakableWall, *entity.Player) {
	t.Helper()
	prev := world.SetInvariantAssertions(true)
	t.Cleanup(func() { world.SetInvariantAssertions(prev) })

	grid := world.NewGrid(5, 5)
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			if err := grid.Set(world.Point{X: x, Y: y}, world.Ground); err != nil {
				t.Fatal(err)
			}
		}
	}
	wall := entity.NewBreakableWall(world.Point{X: 2, Y: 2}, 3, dropChance)
	player := entity.NewPlayer(world.Point{X: 1, Y: 1}, 100, 1)
	if err := grid.Set(wall.Position(), world.Wall); err != nil {
		t.Fatal(err)
	}
	if err := grid.Set(player.Position(), world.Player); err != nil {
		t.Fatal(err)
	}

	roster := entity.NewRoster()
	roster.Add(player)
	roster.Add(wall)

	sink := event.NewMemorySink()
	r := NewResolver(rand.New(rand.NewSource(seed)), sink, logr.Discard())
	r.Bind(grid, roster)
	return r, sink, wall, player
}

func TestDamageWallDestroysOnThirdHit(t *testing.T) {
	r, sink, wall, _ := newArena(t, 1, 0)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		r.DamageWall(ctx, wall, 1)
		flags, _ := r.grid.Get(wall.Position())
		destroyed := len(sink.OfKind(event.WallDestroyed)) > 0
		if i < 3 {
			if destroyed || !flags.HasWall() {
				t.Fatalf("wall destroyed after %d hits", i)
			}
			continue
		}
		if !destroyed {
			t.Fatal("wall not destroyed after 3 hits")
		}
		if flags.HasWall() {
			t.Error("Wall flag still set after destruction")
		}
		if flags != world.Ground {
			t.Errorf("cell = %v, want bare ground (drop chance 0)", flags)
		}
	}

	if _, ok := r.roster.Get(wall.ID()); ok {
		t.Error("destroyed wall still in roster")
	}

	damaged := sink.OfKind(event.WallDamaged)
	if len(damaged) != 3 {
		t.Fatalf("wall.damaged events = %d, want 3", len(damaged))
	}
	for i, e := range damaged {
		if e.Remaining != 2-i {
			t.Errorf("hit %d: remaining = %d, want %d", i+1, e.Remaining, 2-i)
		}
	}

	// Further hits on rubble that is gone change nothing.
	r.DamageWall(ctx, wall, 1)
	if n := len(sink.OfKind(event.WallDamaged)); n != 3 {
		t.Errorf("hitting a broken wall emitted events: %d", n)
	}
}

func TestDamageWallDropsFood(t *testing.T) {
	r, sink, wall, _ := newArena(t, 1, 1)
	r.DamageWall(context.Background(), wall, 5)

	flags, _ := r.grid.Get(wall.Position())
	if !flags.HasFood() {
		t.Errorf("cell = %v, want food after a certain drop", flags)
	}
	if len(sink.OfKind(event.FoodDropped)) != 1 {
		t.Error("expected one food.dropped event")
	}
}

func TestFoodDropRate(t *testing.T) {
	drops := 0
	const trials = 2000
	for seed := int64(0); seed < trials; seed++ {
		r, _, wall, _ := newArena(t, seed, 0.4)
		r.DamageWall(context.Background(), wall, 3)
		if flags, _ := r.grid.Get(wall.Position()); flags.HasFood() {
			drops++
		}
	}
	if drops < 700 || drops > 900 {
		t.Errorf("food dropped %d/%d times, want about 800", drops, trials)
	}
}

func TestHitPlayerStarvesOnce(t *testing.T) {
	r, sink, _, player := newArena(t, 1, 0)
	ctx := context.Background()
	enemy := entity.NewEnemy("ghoul", 20, world.Point{X: 1, Y: 2})
	player.Food = 30

	starved := 0
	r.OnStarved(func(context.Context) { starved++ })

	r.HitPlayer(ctx, enemy, player, 20)
	if player.Food != 10 || starved != 0 {
		t.Fatalf("after first hit food=%d starved=%d", player.Food, starved)
	}
	r.HitPlayer(ctx, enemy, player, 20)
	if player.Food != -10 {
		t.Errorf("food = %d, want -10", player.Food)
	}
	r.HitPlayer(ctx, enemy, player, 20)
	if starved != 1 {
		t.Errorf("OnStarved ran %d times, want 1", starved)
	}

	attacks := sink.OfKind(event.PlayerAttacked)
	if len(attacks) != 3 || attacks[0].Actor.ID != enemy.ID() || attacks[0].Target.ID != player.ID() {
		t.Errorf("player.attacked events wrong: %+v", attacks)
	}
	damaged := sink.OfKind(event.PlayerDamaged)
	if len(damaged) != 3 || damaged[0].Remaining != 10 || damaged[0].Amount != 20 {
		t.Errorf("player.damaged events wrong: %+v", damaged)
	}
	if len(sink.OfKind(event.ActorDied)) != 1 {
		t.Error("expected exactly one actor.died for the player")
	}
}

func TestSpendFoodIsNotDamage(t *testing.T) {
	r, sink, _, player := newArena(t, 1, 0)
	player.Food = 1
	starved := false
	r.OnStarved(func(context.Context) { starved = true })

	r.SpendFood(context.Background(), player, 1)
	if !starved {
		t.Error("spending the last food should starve the player")
	}
	if len(sink.OfKind(event.PlayerDamaged)) != 0 {
		t.Error("spending food must not be reported as damage")
	}
}
