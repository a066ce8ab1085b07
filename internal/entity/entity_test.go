package entity

import (
	"context"
	"testing"

	"github.com/samdwyer/scavenger/internal/gamedata"
	"github.com/samdwyer/scavenger/internal/world"
)

type recordedHit struct {
	attacker *Enemy
	target   *Player
	amount   int
}

type recordingEffects struct {
	hits  []recordedHit
	chops map[*BreakableWall]int
}

func (r *recordingEffects) HitPlayer(_ context.Context, attacker *Enemy, target *Player, amount int) {
	r.hits = append(r.hits, recordedHit{attacker, target, amount})
}

func (r *recordingEffects) DamageWall(_ context.Context, wall *BreakableWall, amount int) {
	if r.chops == nil {
		r.chops = map[*BreakableWall]int{}
	}
	r.chops[wall] += amount
}

func TestKindFlags(t *testing.T) {
	tests := []struct {
		kind Kind
		name string
		flag world.TileFlags
	}{
		{KindPlayer, "player", world.Player},
		{KindEnemy, "enemy", world.Zombie},
		{KindWall, "wall", world.Wall},
		{Kind(42), "unknown", 0},
	}
	for _, tt := range tests {
		if tt.kind.String() != tt.name {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, tt.kind.String(), tt.name)
		}
		if tt.kind.Flag() != tt.flag {
			t.Errorf("Kind(%d).Flag() = %v, want %v", tt.kind, tt.kind.Flag(), tt.flag)
		}
	}
}

func TestWallDestroyedExactlyWhenDamageReachesHP(t *testing.T) {
	wall := NewBreakableWall(world.Point{X: 2, Y: 2}, 3, 0.4)

	hp := wall.HP
	for i, amount := range []int{1, 1, 1} {
		broke := wall.TakeDamage(amount)
		if wall.HP >= hp {
			t.Errorf("hit %d: hp %d did not decrease from %d", i+1, wall.HP, hp)
		}
		hp = wall.HP
		if want := i == 2; broke != want {
			t.Errorf("hit %d: broke = %v, want %v", i+1, broke, want)
		}
	}
	if wall.Alive() {
		t.Error("wall should be broken after three hits")
	}
	if wall.TakeDamage(1) {
		t.Error("a broken wall cannot break again")
	}
}

func TestWallIgnoresNonPositiveDamage(t *testing.T) {
	wall := NewBreakableWall(world.Point{}, 3, 0)
	for _, amount := range []int{0, -5} {
		if wall.TakeDamage(amount) || wall.HP != 3 {
			t.Errorf("TakeDamage(%d) changed the wall: hp=%d", amount, wall.HP)
		}
	}
	if !wall.TakeDamage(7) {
		t.Error("overkill damage should break the wall")
	}
}

func TestPlayerFood(t *testing.T) {
	p := NewPlayer(world.Point{X: 1, Y: 1}, 100, 1)
	if got := p.LoseFood(30); got != 70 {
		t.Errorf("LoseFood(30) = %d, want 70", got)
	}
	if got := p.AddFood(10); got != 80 {
		t.Errorf("AddFood(10) = %d, want 80", got)
	}
	p.LoseFood(80)
	if p.Alive() {
		t.Error("player with 0 food should not be alive")
	}
}

func TestEnemyCadence(t *testing.T) {
	e := NewEnemy("zombie", 10, world.Point{})
	var acted []bool
	for i := 0; i < 6; i++ {
		ready := e.Ready()
		acted = append(acted, ready)
		if ready {
			e.Acted()
		}
	}
	want := []bool{true, false, true, false, true, false}
	for i := range want {
		if acted[i] != want[i] {
			t.Fatalf("turn pattern = %v, want %v", acted, want)
		}
	}
}

func TestInteractDispatch(t *testing.T) {
	ctx := context.Background()
	fx := &recordingEffects{}
	player := NewPlayer(world.Point{X: 1, Y: 1}, 100, 1)
	wall := NewBreakableWall(world.Point{X: 2, Y: 1}, 3, 0.4)
	def := &gamedata.EnemyDef{ID: "ghoul", Name: "Ghoul", Damage: 20}
	enemy := NewEnemyFromDef(def, world.Point{X: 1, Y: 2})

	player.Interact(ctx, wall, fx)
	player.Interact(ctx, enemy, fx) // players do not fight enemies
	enemy.Interact(ctx, player, fx)
	enemy.Interact(ctx, wall, fx) // enemies do not chop walls

	if fx.chops[wall] != 1 {
		t.Errorf("wall took %d damage, want 1", fx.chops[wall])
	}
	if len(fx.hits) != 1 {
		t.Fatalf("player hit %d times, want 1", len(fx.hits))
	}
	if hit := fx.hits[0]; hit.attacker != enemy || hit.target != player || hit.amount != 20 {
		t.Errorf("hit = %+v, want ghoul hitting player for 20", hit)
	}
	if player.Expects() != KindWall || enemy.Expects() != KindPlayer {
		t.Error("wrong interaction targets")
	}
	if enemy.Name() != "Ghoul" {
		t.Errorf("Name() = %q, want Ghoul", enemy.Name())
	}
}

func TestRosterOrderAndQueries(t *testing.T) {
	r := NewRoster()
	player := NewPlayer(world.Point{X: 1, Y: 1}, 100, 1)
	e1 := NewEnemy("zombie", 10, world.Point{X: 3, Y: 3})
	w1 := NewBreakableWall(world.Point{X: 2, Y: 1}, 3, 0)
	e2 := NewEnemy("ghoul", 20, world.Point{X: 9, Y: 9})
	e3 := NewEnemy("zombie", 10, world.Point{X: 0, Y: 2})
	for _, a := range []Actor{player, e1, w1, e2, e3} {
		r.Add(a)
	}

	if r.Player() != player {
		t.Error("Player() should return the registered player")
	}
	if got := r.Enemies(); len(got) != 3 || got[0] != e1 || got[1] != e2 || got[2] != e3 {
		t.Errorf("Enemies() not in registration order: %v", got)
	}

	near := r.Near(world.Point{X: 1, Y: 1}, 2)
	if len(near) != 4 {
		t.Fatalf("Near returned %d actors, want 4 (player, e1, w1, e3)", len(near))
	}
	if near[0] != Actor(player) || near[1] != Actor(e1) || near[2] != Actor(w1) || near[3] != Actor(e3) {
		t.Errorf("Near not in registration order")
	}

	if a, ok := r.At(world.Point{X: 2, Y: 1}, KindWall); !ok || a != Actor(w1) {
		t.Error("At should find the wall")
	}
	if _, ok := r.At(world.Point{X: 2, Y: 1}, KindEnemy); ok {
		t.Error("At must match kind")
	}

	e2.Kill()
	if got := r.Enemies(); len(got) != 2 {
		t.Errorf("dead enemies should be skipped, got %d", len(got))
	}

	if !r.Remove(e1.ID()) {
		t.Fatal("Remove(e1) = false")
	}
	if r.Remove(e1.ID()) {
		t.Error("second Remove should report false")
	}
	if _, ok := r.Get(e1.ID()); ok {
		t.Error("removed actor still found")
	}
	all := r.All()
	if len(all) != 4 || all[2] != Actor(e2) {
		t.Errorf("order after removal wrong: %v", all)
	}
	if len(r.Walls()) != 1 {
		t.Errorf("Walls() = %d, want 1", len(r.Walls()))
	}
}
