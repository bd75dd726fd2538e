package folio

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// IndexCache is an in-memory cache of post metadata with TTL. It backs the
// blog index, the feed and the sitemap. Post pages always read the source.
type IndexCache struct {
	mu      sync.RWMutex
	posts   []Post
	fetched time.Time
	ttl     time.Duration
	src     Source

	// OnSkip, when set, is called for every entry left out of a listing.
	OnSkip func(slug string, err error)
}

// NewIndexCache creates an IndexCache backed by src.
func NewIndexCache(src Source, ttl time.Duration) *IndexCache {
	return &IndexCache{src: src, ttl: ttl}
}

func (c *IndexCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *IndexCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

func (c *IndexCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	params, err := GenerateStaticParams(ctx, c.src)
	if err != nil {
		return err
	}
	posts := make([]Post, 0, len(params))
	var errs []error
	for _, p := range params {
		post, err := c.src.GetPost(ctx, p.Slug)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			// A slug can vanish between listing and reading; a broken entry
			// only drops itself from the listing.
			if !errors.Is(err, ErrNotFound) {
				errs = append(errs, err)
				if c.OnSkip != nil {
					c.OnSkip(p.Slug, err)
				}
			}
			continue
		}
		post.Content = nil
		posts = append(posts, post)
	}
	// Nothing loaded and every entry failed: the source itself is down.
	if len(posts) == 0 && len(errs) > 0 {
		return errors.Join(errs...)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	c.posts = posts
	c.fetched = time.Now()
	return nil
}

// ListPosts returns post metadata, newest first. Content loaders are
// stripped; use LoadPostPage to render a body.
func (c *IndexCache) ListPosts(ctx context.Context) ([]Post, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c.posts, nil
}
