package folio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotFound is returned when a requested post does not exist.
	ErrNotFound = errors.New("post not found")
	// ErrContentUnavailable is returned when a post body cannot be resolved.
	ErrContentUnavailable = errors.New("post content unavailable")
)

// Source is a read-only provider of posts.
type Source interface {
	// GetPost returns the post stored under slug, or ErrNotFound.
	GetPost(ctx context.Context, slug string) (Post, error)
	// ListSlugs returns the identifiers of every known post.
	ListSlugs(ctx context.Context) ([]string, error)
}

// ContentError reports a body that failed to resolve for a post that exists.
type ContentError struct {
	Slug string
	Err  error
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("resolve content for %q: %v", e.Slug, e.Err)
}

func (e *ContentError) Unwrap() []error {
	return []error{ErrContentUnavailable, e.Err}
}

var validate = validator.New()

func validatePost(p Post) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid post %q: %w", p.Slug, err)
	}
	if p.CreatedAt.IsZero() {
		return fmt.Errorf("invalid post %q: createdAt cannot be zero", p.Slug)
	}
	return nil
}

// ValidSlug reports whether slug is safe to use as a path segment.
func ValidSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	if strings.ContainsAny(slug, `/\`) || strings.HasPrefix(slug, ".") {
		return false
	}
	for _, r := range slug {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
