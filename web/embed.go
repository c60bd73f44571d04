// Package web embeds the campaign dashboard served at the site root.
package web

import (
	"embed"
	"io/fs"
)

//go:embed dist
var dist embed.FS

// Dashboard returns the static dashboard rooted at its index.html.
func Dashboard() (fs.FS, error) {
	return fs.Sub(dist, "dist")
}
