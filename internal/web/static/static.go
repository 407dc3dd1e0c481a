// Package static embeds the PWA assets served from the site root.
package static

import "embed"

//go:embed manifest.json service-worker.js
var FS embed.FS
