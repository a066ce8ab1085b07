package game

import (
	"testing"
	"time"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateSetup, "setup"},
		{StatePlayerTurn, "player_turn"},
		{StateEnemiesMoving, "enemies_moving"},
		{StateGameOver, "game_over"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.expected)
		}
	}
}

func TestSchedulerTurnCycle(t *testing.T) {
	start := time.Unix(0, 0)
	s := NewScheduler(2*time.Second, 100*time.Millisecond)
	s.BeginLevel(start)

	steps := []struct {
		at     time.Duration
		acted  bool
		action Action
		state  State
	}{
		{at: 0, state: StateSetup},
		{at: 1999 * time.Millisecond, state: StateSetup},
		{at: 2 * time.Second, state: StatePlayerTurn},
		{at: 5 * time.Second, state: StatePlayerTurn},
		{at: 5 * time.Second, acted: true, state: StateEnemiesMoving},
		{at: 5050 * time.Millisecond, state: StateEnemiesMoving},
		{at: 5100 * time.Millisecond, action: ActionMoveEnemies, state: StateEnemiesMoving},
		{at: 5150 * time.Millisecond, state: StateEnemiesMoving},
		{at: 5200 * time.Millisecond, state: StatePlayerTurn},
		{at: 6 * time.Second, state: StatePlayerTurn},
	}
	for i, step := range steps {
		now := start.Add(step.at)
		var action Action
		if step.acted {
			if !s.PlayerActed(now) {
				t.Fatalf("step %d: PlayerActed refused in %s", i, s.State())
			}
		} else {
			action = s.Update(now)
		}
		if action != step.action {
			t.Errorf("step %d: action = %v, want %v", i, action, step.action)
		}
		if s.State() != step.state {
			t.Errorf("step %d: state = %s, want %s", i, s.State(), step.state)
		}
	}
}

func TestSchedulerMovesEnemiesOncePerTurn(t *testing.T) {
	start := time.Unix(0, 0)
	s := NewScheduler(0, 100*time.Millisecond)
	s.BeginLevel(start)
	s.Update(start)
	s.PlayerActed(start)

	moves := 0
	for ms := 0; ms <= 1000; ms += 10 {
		if s.Update(start.Add(time.Duration(ms)*time.Millisecond)) == ActionMoveEnemies {
			moves++
		}
	}
	if moves != 1 {
		t.Errorf("enemies moved %d times for one player turn, want 1", moves)
	}
}

func TestSchedulerRefusesOutOfTurnActions(t *testing.T) {
	now := time.Unix(0, 0)
	s := NewScheduler(time.Second, 0)
	s.BeginLevel(now)
	if s.PlayerActed(now) {
		t.Error("PlayerActed should be refused during setup")
	}
}

func TestSchedulerGameOverBlocksUntilRestart(t *testing.T) {
	now := time.Unix(0, 0)
	s := NewScheduler(0, 0)
	s.BeginLevel(now)
	s.Update(now)
	s.Lose()

	if s.BeginLevel(now) {
		t.Error("BeginLevel should be refused after game over")
	}
	if s.Update(now.Add(time.Hour)) != ActionNone || s.State() != StateGameOver {
		t.Error("game over must not time out")
	}
	if s.PlayerActed(now) {
		t.Error("PlayerActed should be refused after game over")
	}

	s.Restart()
	if !s.BeginLevel(now) || s.State() != StateSetup {
		t.Errorf("after restart state = %s, want setup", s.State())
	}
}
