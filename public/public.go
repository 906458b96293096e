// Package public embeds the landing page and its plain-script survey client.
package public

import "embed"

//go:embed index.html app.js style.css
var Files embed.FS
