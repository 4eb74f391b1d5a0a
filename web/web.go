// Package web embeds the browser calculator interface.
package web

import "embed"

// Static holds the calculator page and its assets.
//
//go:embed static
var Static embed.FS
