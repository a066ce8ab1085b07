package gamedata

import (
	"time"

	"github.com/samdwyer/scavenger/internal/world"
)

// PlayerTuning holds the player's food economy.
type PlayerTuning struct {
	StartingFood  int `json:"startingFood"`
	PointsPerFood int `json:"pointsPerFood"`
	MoveCost      int `json:"moveCost"`
	WallDamage    int `json:"wallDamage"` // hit points removed per chop
}

// WallTuning describes breakable walls.
type WallTuning struct {
	HP             int     `json:"hp"`
	FoodDropChance float64 `json:"foodDropChance"`
}

// EnemyTuning holds values shared by every enemy kind.
type EnemyTuning struct {
	// SenseRange is how far away on both axes an enemy still notices the
	// player.
	SenseRange int `json:"senseRange"`
}

// TurnTuning holds the scheduler delays in milliseconds.
type TurnTuning struct {
	LevelStartDelayMS int `json:"levelStartDelayMs"`
	TurnDelayMS       int `json:"turnDelayMs"`
}

// LevelStartDelay returns the pause before the first turn of a level.
func (t TurnTuning) LevelStartDelay() time.Duration {
	return time.Duration(t.LevelStartDelayMS) * time.Millisecond
}

// TurnDelay returns the pause before and after the enemy phase.
func (t TurnTuning) TurnDelay() time.Duration {
	return time.Duration(t.TurnDelayMS) * time.Millisecond
}

// Tuning is the structure of tuning.json.
type Tuning struct {
	Dungeon world.Params `json:"dungeon"`
	Player  PlayerTuning `json:"player"`
	Wall    WallTuning   `json:"wall"`
	Enemy   EnemyTuning  `json:"enemy"`
	Turns   TurnTuning   `json:"turns"`
}

// LoadTuning loads the embedded tuning.json.
func LoadTuning() (Tuning, error) {
	return Load[Tuning]("tuning.json")
}

// MustLoadTuning loads the tuning table, panicking on error.
func MustLoadTuning() Tuning {
	return MustLoad[Tuning]("tuning.json")
}
