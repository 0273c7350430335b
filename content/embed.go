// Package content embeds the Zuul's Dungeon world definitions.
package content

import "embed"

// FS holds the world's .lua files, loaded with loader.LoadFS.
//
//go:embed *.lua
var FS embed.FS
