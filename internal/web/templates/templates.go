// Package templates embeds the HTML pages served by the web layer.
package templates

import "embed"

//go:embed base.html pages
var FS embed.FS
