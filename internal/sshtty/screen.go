package sshtty

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// ErrNoPty is returned for sessions opened without a terminal.
var ErrNoPty = errors.New("session has no pty")

// DefaultTerm is used when the client does not send TERM.
const DefaultTerm = "xterm-256color"

// termMu serializes the TERM swap around terminfo lookup, which reads the
// process environment.
var termMu sync.Mutex

// Term returns the TERM the client asked for, from the pty request or the
// session environment.
func Term(pty gossh.Pty, environ []string) string {
	if pty.Term != "" {
		return pty.Term
	}
	for _, env := range environ {
		if v, ok := strings.CutPrefix(env, "TERM="); ok && v != "" {
			return v
		}
	}
	return DefaultTerm
}

// NewScreen creates an uninitialized tcell screen drawing to s.
func NewScreen(s gossh.Session) (tcell.Screen, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, ErrNoPty
	}
	tty := NewSessionTty(s, pty, winCh)

	termMu.Lock()
	defer termMu.Unlock()
	prev, had := os.LookupEnv("TERM")
	_ = os.Setenv("TERM", Term(pty, s.Environ()))
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	if had {
		_ = os.Setenv("TERM", prev)
	} else {
		_ = os.Unsetenv("TERM")
	}
	if err != nil {
		return nil, fmt.Errorf("terminal setup: %w", err)
	}
	return screen, nil
}
