package gamedata

import (
	"errors"
	"math/rand"
	"slices"
)

// EnemyRegistry holds loaded enemy definitions and picks kinds for spawns.
type EnemyRegistry struct {
	enemies     []EnemyDef
	byID        map[string]int
	totalWeight int
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	r := &EnemyRegistry{enemies: enemies, byID: make(map[string]int, len(enemies))}
	for i, e := range enemies {
		r.totalWeight += max(e.SpawnWeight, 0)
		if _, dup := r.byID[e.ID]; !dup {
			r.byID[e.ID] = i
		}
	}
	return r
}

// LoadEnemyRegistry builds a registry from the embedded enemies.json.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}
	return NewEnemyRegistry(enemies), nil
}

// MustLoadEnemyRegistry loads a registry, panicking on error.
func MustLoadEnemyRegistry() *EnemyRegistry {
	registry, err := LoadEnemyRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects an enemy definition with probability proportional to
// its spawn weight. It consumes exactly one draw from rng.
func (r *EnemyRegistry) SpawnRandom(rng *rand.Rand) *EnemyDef {
	if r.totalWeight <= 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)
	cumulative := 0
	for i := range r.enemies {
		cumulative += max(r.enemies[i].SpawnWeight, 0)
		if roll < cumulative {
			return &r.enemies[i]
		}
	}
	return &r.enemies[len(r.enemies)-1]
}

// PickKind returns the id of a weighted random enemy, or "" for an empty
// registry.
func (r *EnemyRegistry) PickKind(rng *rand.Rand) string {
	if def := r.SpawnRandom(rng); def != nil {
		return def.ID
	}
	return ""
}

// GetByID returns the definition with the given id, or nil. The first
// definition wins when ids repeat.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	i, ok := r.byID[id]
	if !ok {
		return nil
	}
	return &r.enemies[i]
}

// All returns a copy of the definitions in file order.
func (r *EnemyRegistry) All() []EnemyDef {
	return slices.Clone(r.enemies)
}

// Count returns the number of enemy kinds in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}
