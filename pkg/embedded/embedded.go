package embedded

import (
	"embed"
)

// Songs holds the demo songbook loaded by `chordbook seed`
//
//go:embed data/songs/*.cho
var Songs embed.FS

// SongsDir is the directory of the .cho files inside Songs
const SongsDir = "data/songs"
