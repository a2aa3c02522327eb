// Package web embeds the static browser form served at the service root.
package web

import "embed"

//go:embed static
var StaticFS embed.FS
