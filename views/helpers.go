package views

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/andripurnomo/folio"
)

// html writes markup to w and keeps the first error. Later writes are no-ops
// once a write has failed.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(parts ...string) {
	for _, s := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *html) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// attr renders name="value" with the value escaped, prefixed by a space.
func attr(name, value string) string {
	return " " + name + `="` + templ.EscapeString(value) + `"`
}

// component builds a templ.Component from a write function.
func component(fn func(ctx context.Context, h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		fn(ctx, h)
		return h.err
	})
}

// PageTitle returns the document title: the page title followed by the site
// name, or the site name alone when the page has no title.
func PageTitle(cfg folio.SiteConfig, meta folio.PageMeta) string {
	if meta.Title == "" {
		return cfg.Name
	}
	return meta.Title + " | " + cfg.Name
}

// Srcset lists optimizer candidates for a local image, skipping widths larger
// than the intrinsic width when it is known.
func Srcset(src string, intrinsic int) string {
	if !folio.IsLocalImage(src) {
		return ""
	}
	var parts []string
	for _, w := range folio.ImageWidths {
		if intrinsic > 0 && w > intrinsic {
			break
		}
		parts = append(parts, folio.OptimizedImageURL(src, w)+" "+strconv.Itoa(w)+"w")
	}
	return strings.Join(parts, ", ")
}
