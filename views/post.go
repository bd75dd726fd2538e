package views

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/andripurnomo/folio"
	"github.com/andripurnomo/folio/document"
)

const bodyUnavailable = "The content of this post could not be loaded. Please refresh the page to try again."

// Post renders a post page. A page whose post was not found, or could not be
// fetched, shows the error panel.
func Post(cfg folio.SiteConfig, page folio.PostPage) templ.Component {
	meta := page.Metadata(cfg)
	if !page.Found() {
		return Layout(cfg, meta, ErrorPanel())
	}
	return Layout(cfg, meta, postBody(page))
}

func postBody(page folio.PostPage) templ.Component {
	return component(func(ctx context.Context, h *html) {
		post := page.Post
		h.raw(`<article class="post"><header><h1 class="post-title">`)
		h.text(post.Title)
		h.raw(`</h1><div class="post-meta"><p>`)
		h.raw(`<time`, attr("datetime", post.CreatedAt.Format("2006-01-02")), `>`)
		h.text(folio.FormatDate(post.CreatedAt))
		h.raw(`</time></p><span class="dot" aria-hidden="true"></span><p>`)
		h.text(folio.ReadingTime(post.TimeToRead))
		h.raw(`</p></div></header>`)

		h.component(ctx, coverImage(page.Slug, post.Cover))

		switch {
		case page.BodyErr != nil:
			h.raw(`<div class="post-body"><p class="embed-fallback" role="alert">`)
			h.text(bodyUnavailable)
			h.raw(`</p></div>`)
		case page.Body != nil:
			h.raw(`<div class="post-body">`)
			h.component(ctx, document.Render(page.Body, EmbedRenderers()))
			h.raw(`</div>`)
		}
		h.raw(`</article>`)
	})
}

// coverImage renders the fixed-size cover and, when the post carries cover
// metadata, its photo attribution.
func coverImage(slug string, cover *folio.Cover) templ.Component {
	return component(func(_ context.Context, h *html) {
		src := folio.CoverImagePath(slug)
		alt := ""
		if cover != nil {
			alt = cover.Alt
		}
		h.raw(`<figure class="post-cover"><img`,
			attr("src", src),
			attr("alt", alt),
			attr("width", strconv.Itoa(folio.CoverWidth)),
			attr("height", strconv.Itoa(folio.CoverHeight)))
		if srcset := Srcset(src, folio.CoverWidth); srcset != "" {
			h.raw(attr("srcset", srcset), ` sizes="(max-width: 768px) 100vw, 700px"`)
		}
		h.raw(` fetchpriority="high" decoding="async">`)
		if cover != nil {
			h.raw(`<figcaption class="post-cover-credit">Photo by `)
			if link := safeURL(cover.OwnerLink); link != "" {
				h.raw(`<a`, attr("href", link), ` target="_blank" rel="noopener noreferrer">`)
				h.text(cover.Owner)
				h.raw(`</a>`)
			} else {
				h.text(cover.Owner)
			}
			h.raw(`</figcaption>`)
		}
		h.raw(`</figure>`)
	})
}
