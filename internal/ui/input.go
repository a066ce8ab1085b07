package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/scavenger/internal/world"
)

// Command is what a key press asks the app to do.
type Command int

const (
	CmdNone Command = iota
	CmdMove
	CmdRestart
	CmdQuit
)

// Translate maps a key to a command. Moves accept the arrow keys, vi keys
// and WASD; dir is only meaningful for CmdMove.
func Translate(ev *tcell.EventKey) (cmd Command, dir world.Direction) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return CmdQuit, dir
	case tcell.KeyUp:
		return CmdMove, world.Up
	case tcell.KeyDown:
		return CmdMove, world.Down
	case tcell.KeyLeft:
		return CmdMove, world.Left
	case tcell.KeyRight:
		return CmdMove, world.Right
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k', 'w', 'K', 'W':
			return CmdMove, world.Up
		case 'j', 's', 'J', 'S':
			return CmdMove, world.Down
		case 'h', 'a', 'H', 'A':
			return CmdMove, world.Left
		case 'l', 'd', 'L', 'D':
			return CmdMove, world.Right
		case 'r', 'R':
			return CmdRestart, dir
		case 'q', 'Q':
			return CmdQuit, dir
		}
	}
	return CmdNone, dir
}
