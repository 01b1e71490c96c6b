// Package templates embeds the HTML pages, the resume stylesheet and the
// JSON schemas used for validation.
package templates

import "embed"

//go:embed *.html *.css schema/*.json
var FS embed.FS
