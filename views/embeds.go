package views

import (
	"context"
	stdhtml "html"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/andripurnomo/folio/document"
)

const embedFallback = "This post could not be embedded."

// EmbedRenderers returns the presentation for every embed variant.
func EmbedRenderers() document.Renderers {
	return document.Renderers{
		YouTube: YouTubeEmbed,
		Twitter: TwitterEmbed,
		Image:   ImageEmbed,
		Unknown: UnknownEmbed,
	}
}

// TweetID extracts the numeric status ID from a tweet URL: the path segment
// after "/status/", cut at the first "?", "#" or "/". ok is false unless the
// result is a non-empty run of digits.
func TweetID(link string) (id string, ok bool) {
	_, rest, found := strings.Cut(link, "/status/")
	if !found {
		return "", false
	}
	if i := strings.IndexAny(rest, "?#/"); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "", false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return rest, true
}

// YouTubeID extracts the video ID from watch, youtu.be, embed and shorts URLs.
func YouTubeID(link string) (id string, ok bool) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "youtube-nocookie.com":
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"):
			id = strings.TrimPrefix(u.Path, "/embed/")
		case strings.HasPrefix(u.Path, "/shorts/"):
			id = strings.TrimPrefix(u.Path, "/shorts/")
		}
	}
	if i := strings.IndexByte(id, '/'); i >= 0 {
		id = id[:i]
	}
	if !validVideoID(id) {
		return "", false
	}
	return id, true
}

func validVideoID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// YouTubeEmbed renders a responsive video player, or a plain link when the
// URL has no recognisable video ID.
func YouTubeEmbed(e document.YouTubeEmbed) templ.Component {
	return component(func(_ context.Context, h *html) {
		id, ok := YouTubeID(e.Link)
		if !ok {
			fallback(h, e.Link)
			return
		}
		h.raw(`<div class="embed-video"><iframe`,
			attr("src", "https://www.youtube.com/embed/"+id),
			` title="YouTube video player" loading="lazy"`,
			` allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"`,
			` allowfullscreen></iframe></div>`)
	})
}

// TwitterEmbed renders a tweet frame. A URL without a numeric status ID
// renders the fallback notice instead of a frame.
func TwitterEmbed(e document.TwitterEmbed) templ.Component {
	return component(func(_ context.Context, h *html) {
		id, ok := TweetID(e.Tweet)
		if !ok {
			fallback(h, e.Tweet)
			return
		}
		h.raw(`<div class="embed-social"><iframe`,
			attr("src", "https://platform.twitter.com/embed/Tweet.html?id="+id),
			` title="Embedded post" loading="lazy" scrolling="no"></iframe></div>`)
	})
}

// ImageEmbed renders a responsive image at its intrinsic dimensions.
func ImageEmbed(e document.ImageEmbed) templ.Component {
	return component(func(_ context.Context, h *html) {
		src := safeURL(e.Src)
		if src == "" {
			return
		}
		h.raw(`<figure class="embed-image"><img`, attr("src", src), attr("alt", e.Alt))
		if e.Width > 0 && e.Height > 0 {
			h.raw(attr("width", strconv.Itoa(e.Width)), attr("height", strconv.Itoa(e.Height)))
		}
		if srcset := Srcset(e.Src, e.Width); srcset != "" {
			h.raw(attr("srcset", srcset), ` sizes="(max-width: 768px) 100vw, 768px"`)
		}
		h.raw(` loading="lazy" decoding="async"></figure>`)
	})
}

// UnknownEmbed leaves a marker for tags the site does not know how to render.
func UnknownEmbed(e document.UnknownEmbed) templ.Component {
	return component(func(_ context.Context, h *html) {
		name := strings.ReplaceAll(e.Name, "--", "")
		h.raw(`<!-- unsupported embed: `, templ.EscapeString(name), ` -->`)
	})
}

// safeURL returns the trimmed, unescaped URL when document.SafeURL accepts
// it, and "" otherwise. Attribute escaping is left to attr.
func safeURL(raw string) string {
	return stdhtml.UnescapeString(document.SafeURL(raw))
}

func fallback(h *html, link string) {
	h.raw(`<div class="embed-fallback"><p>`)
	h.text(embedFallback)
	h.raw(`</p>`)
	if u := safeURL(link); strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		h.raw(`<a`, attr("href", u), ` target="_blank" rel="noopener noreferrer">`)
		h.text(u)
		h.raw(`</a>`)
	}
	h.raw(`</div>`)
}
