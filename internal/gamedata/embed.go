// Package gamedata provides the embedded tuning tables and enemy definitions
// along with helpers for loading them.
package gamedata

import "embed"

// dataFS holds every JSON table in this directory.
//
//go:embed *.json
var dataFS embed.FS
