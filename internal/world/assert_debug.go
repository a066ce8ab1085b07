//go:build scavengerdebug

package world

func init() {
	assertInvariants.Store(true)
}
