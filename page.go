package folio

import (
	"context"
	"errors"
	"fmt"

	"github.com/andripurnomo/folio/document"
)

// Cover images are fixed-size and live at a path derived from the slug.
const (
	CoverWidth  = 700
	CoverHeight = 500
)

// CoverImagePath returns the conventional cover image URL for a post. It
// never looks at the post record.
func CoverImagePath(slug string) string {
	return "/images/blogs/" + slug + "/cover/resource.jpg"
}

// PostPage is everything a post view needs. Post is nil when the post
// could not be fetched. Body is nil when the post has no content or the
// content failed to resolve (BodyErr set).
type PostPage struct {
	Slug    string
	Post    *Post
	Body    *document.Document
	BodyErr error
}

// Found reports whether the post exists.
func (p PostPage) Found() bool {
	return p.Post != nil
}

// Metadata projects the page onto head metadata. Title stays empty when no
// post was found so the layout falls back to the site name.
func (p PostPage) Metadata(cfg SiteConfig) PageMeta {
	meta := PageMeta{
		URL:    BuildURL(cfg.URL, "blog", p.Slug),
		OGType: "article",
	}
	if p.Post == nil {
		return meta
	}
	meta.Title = p.Post.Title
	meta.Description = fmt.Sprintf("%s · %s", FormatDate(p.Post.CreatedAt), ReadingTime(p.Post.TimeToRead))
	meta.Image = AbsoluteURL(cfg.URL, CoverImagePath(p.Slug))
	meta.JSONLD = BlogPostingJsonLD(*p.Post, cfg)
	return meta
}

// LoadPostPage fetches the post for slug and resolves its body.
//
// The returned page is always renderable. The error is ErrNotFound for an
// unknown slug, a *ContentError when the post exists but its body failed to
// resolve, or the source's error when the fetch itself failed.
func LoadPostPage(ctx context.Context, src Source, slug string) (PostPage, error) {
	page := PostPage{Slug: slug}
	post, err := src.GetPost(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return page, ErrNotFound
		}
		return page, fmt.Errorf("fetch post %q: %w", slug, err)
	}
	page.Post = &post
	if post.Content == nil {
		return page, nil
	}
	doc, err := post.Content(ctx)
	if err != nil {
		cerr := &ContentError{Slug: slug, Err: err}
		page.BodyErr = cerr
		return page, cerr
	}
	page.Body = doc
	return page, nil
}

// GenerateStaticParams lists one parameter set per known post, in source
// order, dropping duplicate slugs.
func GenerateStaticParams(ctx context.Context, src Source) ([]StaticParams, error) {
	slugs, err := src.ListSlugs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slugs: %w", err)
	}
	seen := make(map[string]struct{}, len(slugs))
	params := make([]StaticParams, 0, len(slugs))
	for _, slug := range slugs {
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		params = append(params, StaticParams{Slug: slug})
	}
	return params, nil
}
