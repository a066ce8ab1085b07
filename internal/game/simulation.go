package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/scavenger/internal/combat"
	"github.com/samdwyer/scavenger/internal/entity"
	"github.com/samdwyer/scavenger/internal/event"
	"github.com/samdwyer/scavenger/internal/gamedata"
	"github.com/samdwyer/scavenger/internal/movement"
	"github.com/samdwyer/scavenger/internal/telemetry"
	"github.com/samdwyer/scavenger/internal/world"
)

var (
	// ErrNotPlayersTurn is returned for player moves outside the player's turn.
	ErrNotPlayersTurn = errors.New("not the player's turn")
	// ErrInvalidLevel is returned for level numbers below 1.
	ErrInvalidLevel = world.ErrInvalidLevel
)

// Option customizes a Simulation.
type Option func(*Simulation)

// WithClock sets the clock the turn delays are measured against.
func WithClock(c Clock) Option {
	return func(s *Simulation) { s.clock = c }
}

// WithEvents sets the publisher that receives every event.
func WithEvents(p event.Publisher) Option {
	return func(s *Simulation) { s.out = p }
}

// WithLogger sets the logger.
func WithLogger(l logr.Logger) Option {
	return func(s *Simulation) { s.logger = l }
}

// WithEnemies sets the enemy kinds. The embedded enemies.json is used
// otherwise.
func WithEnemies(r *gamedata.EnemyRegistry) Option {
	return func(s *Simulation) { s.enemies = r }
}

// Simulation owns the state of one game. It is not safe for concurrent use;
// a single goroutine drives it.
type Simulation struct {
	cfg     Config
	rng     *rand.Rand
	clock   Clock
	out     event.Publisher
	events  event.Publisher
	logger  logr.Logger
	tracer  trace.Tracer
	enemies *gamedata.EnemyRegistry

	gen    *world.Generator
	combat *combat.Resolver
	moves  *movement.Resolver
	sched  *Scheduler

	level  int
	turn   uint64
	food   int
	layout *world.Layout
	roster *entity.Roster
	player *entity.Player
}

// New creates a simulation. No level exists until GenerateLevel or Restart.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Simulation{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		clock:  SystemClock,
		out:    event.Nop(),
		logger: logr.Discard(),
		tracer: telemetry.Tracer("game"),
		food:   cfg.Tuning.Player.StartingFood,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.enemies == nil {
		registry, err := gamedata.LoadEnemyRegistry()
		if err != nil {
			return nil, fmt.Errorf("load enemies: %w", err)
		}
		s.enemies = registry
	}
	s.logger = s.logger.WithName("game").WithValues("seed", seed)
	s.events = event.PublisherFunc(s.stamp)

	t := cfg.Tuning
	s.gen = world.NewGenerator(t.Dungeon, s.enemies, s.rng, s.logger)
	s.combat = combat.NewResolver(s.rng, s.events, s.logger)
	s.combat.OnStarved(s.lose)
	s.moves = movement.NewResolver(s.combat, s.events, t.Enemy.SenseRange, s.logger)
	s.sched = NewScheduler(t.Turns.LevelStartDelay(), t.Turns.TurnDelay())
	return s, nil
}

// stamp fills in the session fields of an event before forwarding it.
func (s *Simulation) stamp(ctx context.Context, e event.Event) {
	if e.Level == 0 {
		e.Level = s.level
	}
	e.Turn = s.turn
	e.Time = s.clock.Now()
	s.out.Publish(ctx, e)
}

// GenerateLevel discards the current level and builds level n. The player
// keeps the food carried over from the previous level.
func (s *Simulation) GenerateLevel(ctx context.Context, n int) (world.GridSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "game.generate_level")
	defer span.End()
	span.SetAttributes(attribute.Int("level", n))

	layout, err := s.gen.Generate(ctx, n)
	if err != nil {
		return world.GridSnapshot{}, fmt.Errorf("generate level %d: %w", n, err)
	}

	t := s.cfg.Tuning
	roster := entity.NewRoster()
	player := entity.NewPlayer(layout.PlayerSpawn, s.food, t.Player.WallDamage)
	roster.Add(player)
	for _, spawn := range layout.Enemies {
		roster.Add(s.newEnemy(spawn))
	}
	for _, p := range layout.Walls {
		roster.Add(entity.NewBreakableWall(p, t.Wall.HP, t.Wall.FoodDropChance))
	}

	s.level = n
	s.layout = layout
	s.roster = roster
	s.player = player
	s.combat.Bind(layout.Grid, roster)
	s.moves.Bind(layout.Grid, roster)
	s.sched.BeginLevel(s.clock.Now())

	span.SetAttributes(
		attribute.Int("actors", roster.Len()),
		attribute.Int("food", s.food),
	)
	s.logger.Info("level started", "level", n, "food", s.food, "enemies", len(layout.Enemies))
	s.events.Publish(ctx, event.Event{
		Kind:      event.LevelStarted,
		Level:     n,
		At:        player.Position(),
		Remaining: s.food,
		First:     n == 1,
	})
	return layout.Grid.Snapshot(), nil
}

func (s *Simulation) newEnemy(spawn world.EnemySpawn) *entity.Enemy {
	if def := s.enemies.GetByID(spawn.Kind); def != nil {
		return entity.NewEnemyFromDef(def, spawn.At)
	}
	s.logger.V(1).Info("unknown enemy kind, spawning without damage", "kind", spawn.Kind)
	return entity.NewEnemy(spawn.Kind, 0, spawn.At)
}

// AttemptPlayerMove runs the player's turn: one step in dir, chopping a
// breakable wall that blocks it. A step into a cell nothing can enter or
// interact with is rejected without cost and the turn continues. Food is
// spent before the step; if that starves the player the game ends and the
// step is not taken, so game.over is the last event of the run.
func (s *Simulation) AttemptPlayerMove(ctx context.Context, dir world.Direction) (movement.MoveResult, error) {
	if s.sched.State() != StatePlayerTurn || s.player == nil {
		return movement.Blocked, fmt.Errorf("%w: state %s", ErrNotPlayersTurn, s.sched.State())
	}

	target := s.player.Position().Add(dir)
	flags, err := s.layout.Grid.Get(target)
	if err != nil || !(flags.CanMoveTo() || flags.CanInteractWith()) {
		return movement.Blocked, nil
	}

	ctx, span := s.tracer.Start(ctx, "game.player_move")
	defer span.End()

	s.turn++
	t := s.cfg.Tuning.Player
	s.combat.SpendFood(ctx, s.player, t.MoveCost)
	s.food = s.player.Food
	span.SetAttributes(
		attribute.String("direction", dir.String()),
		attribute.Int("food", s.player.Food),
	)
	if s.sched.State() == StateGameOver {
		span.SetAttributes(attribute.Bool("starved", true))
		return movement.Blocked, nil
	}

	result, blocker := s.moves.AttemptMove(ctx, s.player, dir, nil)
	span.SetAttributes(attribute.String("result", result.String()))
	if blocker != nil {
		span.SetAttributes(attribute.String("blocker", blocker.Kind().String()))
	}

	if result == movement.Moved {
		if advanced, err := s.enterCell(ctx); advanced || err != nil {
			return result, err
		}
	}

	if s.sched.State() == StateGameOver {
		return result, nil
	}
	s.sched.PlayerActed(s.clock.Now())
	return result, nil
}

// enterCell applies what the player finds on its new cell. It reports true
// when the player took the exit and the next level has been generated.
func (s *Simulation) enterCell(ctx context.Context) (bool, error) {
	at := s.player.Position()
	flags, err := s.layout.Grid.Get(at)
	if err != nil {
		return false, err
	}

	if flags.HasFood() {
		points := s.cfg.Tuning.Player.PointsPerFood
		if err := s.layout.Grid.Clear(at, world.Food); err != nil {
			return false, err
		}
		s.food = s.player.AddFood(points)
		s.events.Publish(ctx, event.Event{
			Kind:      event.FoodPickup,
			Actor:     event.Ref{ID: s.player.ID(), Kind: s.player.Kind().String()},
			At:        at,
			Amount:    points,
			Remaining: s.food,
		})
	}

	if flags.HasExit() {
		s.events.Publish(ctx, event.Event{
			Kind:      event.LevelAdvanced,
			Level:     s.level,
			At:        at,
			Remaining: s.food,
		})
		if _, err := s.GenerateLevel(ctx, s.level+1); err != nil {
			return true, err
		}
		return true, nil
	}
	return false, nil
}

// Update advances the scheduler to the current time and runs the enemies
// when their turn comes up.
func (s *Simulation) Update(ctx context.Context) {
	if s.sched.Update(s.clock.Now()) == ActionMoveEnemies {
		s.TickEnemies(ctx)
	}
}

// TickEnemies runs every living enemy once, in registration order. It
// stops early if the player starves.
func (s *Simulation) TickEnemies(ctx context.Context) {
	if s.roster == nil || s.player == nil {
		return
	}
	ctx, span := s.tracer.Start(ctx, "game.enemy_turn")
	defer span.End()

	acted := 0
	for _, e := range s.roster.Enemies() {
		if s.sched.State() == StateGameOver {
			break
		}
		if s.moves.MoveEnemy(ctx, e, s.player) {
			acted++
		}
	}
	s.food = s.player.Food
	span.SetAttributes(
		attribute.Int("enemies", len(s.roster.Enemies())),
		attribute.Int("acted", acted),
		attribute.Int("food", s.food),
	)
}

func (s *Simulation) lose(ctx context.Context) {
	if s.sched.State() == StateGameOver {
		return
	}
	s.sched.Lose()
	s.logger.Info("game over", "level", s.level, "turn", s.turn)
	s.events.Publish(ctx, event.Event{
		Kind:      event.GameOver,
		At:        s.player.Position(),
		Remaining: s.player.Food,
	})
}

// Restart starts a new run at level 1 with full food.
func (s *Simulation) Restart(ctx context.Context) (world.GridSnapshot, error) {
	s.sched.Restart()
	s.food = s.cfg.Tuning.Player.StartingFood
	s.turn = 0
	return s.GenerateLevel(ctx, 1)
}

// QueryTile returns the flags of a cell of the current level.
func (s *Simulation) QueryTile(p world.Point) (world.TileFlags, error) {
	if s.layout == nil {
		return 0, fmt.Errorf("%w: no level", world.ErrOutOfBounds)
	}
	return s.layout.Grid.Get(p)
}

// IsInBounds reports whether p is a cell of the current level.
func (s *Simulation) IsInBounds(p world.Point) bool {
	return s.layout != nil && s.layout.Grid.InBounds(p)
}

// Snapshot copies the current grid.
func (s *Simulation) Snapshot() world.GridSnapshot {
	if s.layout == nil {
		return world.GridSnapshot{}
	}
	return s.layout.Grid.Snapshot()
}

// State returns the turn state.
func (s *Simulation) State() State { return s.sched.State() }

// ReadyAt returns when the current delay ends.
func (s *Simulation) ReadyAt() time.Time { return s.sched.ReadyAt() }

// Level returns the current level number, 0 before the first level.
func (s *Simulation) Level() int { return s.level }

// Turn returns the number of committed player moves this run.
func (s *Simulation) Turn() uint64 { return s.turn }

// Player returns the player of the current level.
func (s *Simulation) Player() *entity.Player { return s.player }

// Actors returns the living actors of the current level in registration
// order.
func (s *Simulation) Actors() []entity.Actor {
	if s.roster == nil {
		return nil
	}
	var out []entity.Actor
	for _, a := range s.roster.All() {
		if a.Alive() {
			out = append(out, a)
		}
	}
	return out
}

// Enemies returns the enemy kinds in use.
func (s *Simulation) Enemies() *gamedata.EnemyRegistry { return s.enemies }
