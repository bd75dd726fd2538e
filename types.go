package folio

import (
	"context"
	"time"

	"github.com/andripurnomo/folio/document"
)

// ContentLoader resolves a post body on demand. Loading is a separate step
// from fetching the post and fails with its own error.
type ContentLoader func(ctx context.Context) (*document.Document, error)

// Post is a single blog entry as read from a content source. Posts are
// never mutated after loading.
type Post struct {
	Slug       string    `validate:"required"`
	Title      string    `validate:"required"`
	CreatedAt  time.Time `validate:"required"`
	TimeToRead int       `validate:"gte=0"`
	Cover      *Cover
	// Content is nil when the entry has no body.
	Content ContentLoader `validate:"-"`
}

// Cover carries the attribution of a post's cover photo. The image itself
// lives at CoverImagePath(slug), not in this record.
type Cover struct {
	Alt       string
	Owner     string
	OwnerLink string `validate:"omitempty,url"`
}

// Link returns the site-relative URL of the post page.
func (p Post) Link() string {
	return "/blog/" + p.Slug + "/"
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // og:image, absolute
	JSONLD      string
}

// StaticParams is one pre-generated route parameter set.
type StaticParams struct {
	Slug string
}
