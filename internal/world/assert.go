package world

import "sync/atomic"

// assertInvariants makes grid mutations reject invariant violations and a
// generated grid that breaks them panic. It is switched on by the
// scavengerdebug build tag.
var assertInvariants atomic.Bool

// SetInvariantAssertions toggles invariant enforcement and returns the
// previous setting.
func SetInvariantAssertions(on bool) bool {
	return assertInvariants.Swap(on)
}

// InvariantAssertions reports whether invariants are enforced.
func InvariantAssertions() bool {
	return assertInvariants.Load()
}
