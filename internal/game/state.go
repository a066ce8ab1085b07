// Package game runs one scavenger session: level setup, the player and enemy
// turns, game over and restart.
package game

// State is the phase of the turn cycle.
type State int

const (
	// StateSetup shows the level card; no one acts until it times out.
	StateSetup State = iota
	// StatePlayerTurn waits for the player's move.
	StatePlayerTurn
	// StateEnemiesMoving runs the enemies between two short delays.
	StateEnemiesMoving
	// StateGameOver blocks everything until a restart.
	StateGameOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StatePlayerTurn:
		return "player_turn"
	case StateEnemiesMoving:
		return "enemies_moving"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
