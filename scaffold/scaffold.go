// Package scaffold provides embedded template files for the folio new
// command.
package scaffold

import "embed"

// Templates contains the files written for a new post, under templates/post.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS
