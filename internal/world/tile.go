// Package world provides the tile grid, dungeon generation and map queries.
package world

import "strings"

// TileFlags is the bitmask of everything occupying a single cell.
type TileFlags uint8

const (
	// OuterWall is the indestructible border. It never shares a cell.
	OuterWall TileFlags = 1 << iota
	// Ground is the walkable floor every occupant stands on.
	Ground
	Food
	// Wall is the breakable obstacle.
	Wall
	Player
	Zombie
	Exit
)

// occupants are the flags that must sit on Ground.
const occupants = Food | Wall | Player | Zombie | Exit

// blockers are the flags that stop movement into a cell.
const blockers = Wall | Player | Zombie

// Has reports whether every bit of flag is set.
func (t TileFlags) Has(flag TileFlags) bool {
	return t&flag == flag
}

// CanMoveTo reports whether a mover may step onto the cell: it must have
// ground and no wall, player or zombie.
func (t TileFlags) CanMoveTo() bool {
	if t&Ground == 0 {
		return false
	}
	return t&blockers == 0
}

// CanInteractWith reports whether the cell holds a wall, player or zombie.
func (t TileFlags) CanInteractWith() bool {
	return t&blockers != 0
}

func (t TileFlags) HasFood() bool   { return t&Food != 0 }
func (t TileFlags) HasWall() bool   { return t&Wall != 0 }
func (t TileFlags) HasPlayer() bool { return t&Player != 0 }
func (t TileFlags) HasZombie() bool { return t&Zombie != 0 }
func (t TileFlags) HasExit() bool   { return t&Exit != 0 }

// Valid reports whether the flags satisfy the cell invariants: an outer wall
// carries nothing else and any occupant implies ground.
func (t TileFlags) Valid() bool {
	if t&OuterWall != 0 && t != OuterWall {
		return false
	}
	if t&occupants != 0 && t&Ground == 0 {
		return false
	}
	return true
}

var flagNames = [...]string{"outerwall", "ground", "food", "wall", "player", "zombie", "exit"}

// String returns the set flag names joined with '|', or "empty".
func (t TileFlags) String() string {
	if t == 0 {
		return "empty"
	}
	var parts []string
	for i, name := range flagNames {
		if t&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}
