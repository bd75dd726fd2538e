package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/andripurnomo/folio"
)

// Layout wraps body in the site shell: head metadata, navigation and footer.
func Layout(cfg folio.SiteConfig, meta folio.PageMeta, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *html) {
		title := PageTitle(cfg, meta)
		description := meta.Description
		if description == "" {
			description = cfg.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}
		jsonLD := meta.JSONLD
		if jsonLD == "" {
			jsonLD = folio.WebsiteJsonLD(cfg)
		}

		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(`</title>`)
		h.raw(`<meta name="description"`, attr("content", description), `>`)
		h.raw(`<meta property="og:title"`, attr("content", title), `>`)
		h.raw(`<meta property="og:description"`, attr("content", description), `>`)
		h.raw(`<meta property="og:type"`, attr("content", ogType), `>`)
		h.raw(`<meta property="og:site_name"`, attr("content", cfg.Name), `>`)
		if meta.URL != "" {
			h.raw(`<link rel="canonical"`, attr("href", meta.URL), `>`)
			h.raw(`<meta property="og:url"`, attr("content", meta.URL), `>`)
		}
		if meta.Image != "" {
			h.raw(`<meta property="og:image"`, attr("content", meta.Image), `>`)
			h.raw(`<meta name="twitter:card" content="summary_large_image">`)
		}
		h.raw(`<link rel="icon" href="/favicon.svg" type="image/svg+xml">`)
		h.raw(`<link rel="alternate" type="application/rss+xml"`, attr("title", cfg.Name), ` href="/feed.xml">`)
		h.raw(`<link rel="stylesheet" href="/public/site.css">`)
		// JSON-LD comes from json.Marshal, which escapes <, > and &.
		h.raw(`<script type="application/ld+json">`, jsonLD, `</script>`)
		h.raw(`</head><body>`)

		h.raw(`<header class="site-header"><a href="/" class="site-name">`)
		h.text(cfg.Name)
		h.raw(`</a><nav><a href="/">Home</a><a href="/blog/">Blog</a></nav></header>`)
		h.raw(`<main class="width-container">`)
		h.component(ctx, body)
		h.raw(`</main>`)
		h.raw(`<footer class="site-footer"><p>`)
		h.text(cfg.Name)
		h.raw(`</p><a href="/feed.xml">RSS</a></footer>`)
		h.raw(`</body></html>`)
	})
}
