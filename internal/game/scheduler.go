package game

import "time"

// Action tells the caller of Scheduler.Update what to run.
type Action int

const (
	ActionNone Action = iota
	// ActionMoveEnemies asks the caller to run every enemy once.
	ActionMoveEnemies
)

// Scheduler is the turn state machine. It never reads the clock itself;
// every transition takes the current time from the caller.
type Scheduler struct {
	levelStartDelay time.Duration
	turnDelay       time.Duration

	state       State
	readyAt     time.Time
	enemiesDone bool
}

// NewScheduler creates a scheduler in StateSetup with nothing pending.
func NewScheduler(levelStartDelay, turnDelay time.Duration) *Scheduler {
	return &Scheduler{
		levelStartDelay: levelStartDelay,
		turnDelay:       turnDelay,
		state:           StateSetup,
	}
}

// State returns the current state.
func (s *Scheduler) State() State { return s.state }

// ReadyAt returns when the pending delay ends.
func (s *Scheduler) ReadyAt() time.Time { return s.readyAt }

// BeginLevel enters Setup; the player's first turn starts once the level
// start delay has passed. It does nothing after a game over.
func (s *Scheduler) BeginLevel(now time.Time) bool {
	if s.state == StateGameOver {
		return false
	}
	s.state = StateSetup
	s.readyAt = now.Add(s.levelStartDelay)
	return true
}

// PlayerActed ends the player's turn. It reports false outside PlayerTurn.
func (s *Scheduler) PlayerActed(now time.Time) bool {
	if s.state != StatePlayerTurn {
		return false
	}
	s.state = StateEnemiesMoving
	s.readyAt = now.Add(s.turnDelay)
	s.enemiesDone = false
	return true
}

// Update advances timed transitions. In EnemiesMoving it returns
// ActionMoveEnemies exactly once, after the first turn delay; the player's
// turn follows a second turn delay later.
func (s *Scheduler) Update(now time.Time) Action {
	if now.Before(s.readyAt) {
		return ActionNone
	}
	switch s.state {
	case StateSetup:
		s.state = StatePlayerTurn
	case StateEnemiesMoving:
		if !s.enemiesDone {
			s.enemiesDone = true
			s.readyAt = now.Add(s.turnDelay)
			return ActionMoveEnemies
		}
		s.state = StatePlayerTurn
	}
	return ActionNone
}

// Lose enters GameOver.
func (s *Scheduler) Lose() {
	s.state = StateGameOver
}

// Restart leaves GameOver so the next BeginLevel takes effect.
func (s *Scheduler) Restart() {
	s.state = StateSetup
	s.enemiesDone = false
}
