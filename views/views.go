// Package views renders the site's pages as templ components.
package views

import "github.com/andripurnomo/folio"

// Default returns the view set used by the folio command.
func Default() folio.ViewFuncs {
	return folio.ViewFuncs{
		Home:        Home,
		BlogIndex:   BlogIndex,
		Post:        Post,
		NotFound:    NotFound,
		ServerError: ServerError,
	}
}
