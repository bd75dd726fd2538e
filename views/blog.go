package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/andripurnomo/folio"
)

// BlogIndex lists posts newest first as the caller ordered them.
func BlogIndex(cfg folio.SiteConfig, posts []folio.Post) templ.Component {
	meta := folio.PageMeta{
		Title:  "Blog",
		URL:    folio.BuildURL(cfg.URL, "blog"),
		OGType: "website",
	}
	return Layout(cfg, meta, component(func(_ context.Context, h *html) {
		h.raw(`<section class="post"><h1 class="post-title">Blog</h1>`)
		if len(posts) == 0 {
			h.raw(`<p>No posts yet.</p></section>`)
			return
		}
		h.raw(`<ul class="post-list">`)
		for _, p := range posts {
			h.raw(`<li><a`, attr("href", p.Link()), `><h2>`)
			h.text(p.Title)
			h.raw(`</h2></a><div class="post-meta"><p>`)
			h.text(folio.FormatDate(p.CreatedAt))
			h.raw(`</p><span class="dot" aria-hidden="true"></span><p>`)
			h.text(folio.ReadingTime(p.TimeToRead))
			h.raw(`</p></div></li>`)
		}
		h.raw(`</ul></section>`)
	}))
}
