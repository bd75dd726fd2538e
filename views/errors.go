package views

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/andripurnomo/folio"
)

const (
	errorHeading = "Oops! Something went wrong."
	errorHint    = "Please refresh the page to try again."
)

// ErrorPanel is the generic failure message shown in place of page content.
func ErrorPanel() templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div class="error-panel" role="alert"><h1>`)
		h.text(errorHeading)
		h.raw(`</h1><p>`)
		h.text(errorHint)
		h.raw(`</p></div>`)
	})
}

// NotFound renders the 404 page.
func NotFound(cfg folio.SiteConfig) templ.Component {
	return Layout(cfg, folio.PageMeta{Title: http.StatusText(http.StatusNotFound)}, ErrorPanel())
}

// ServerError renders the 500 page.
func ServerError(cfg folio.SiteConfig) templ.Component {
	return Layout(cfg, folio.PageMeta{}, ErrorPanel())
}
