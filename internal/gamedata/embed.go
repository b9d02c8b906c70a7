// Package gamedata provides the embedded species and palette definitions and
// utilities for loading them.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
