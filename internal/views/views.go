// Package views embeds the server-rendered HTML templates.
package views

import "embed"

// FS holds every page, layout and partial, keyed by path relative to this directory.
//
//go:embed *.html layouts/*.html partials/*.html
var FS embed.FS
