package folio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/araddon/dateparse"
	"gopkg.in/yaml.v3"

	"github.com/andripurnomo/folio/document"
)

const (
	entryFile   = "index.yaml"
	contentFile = "content.mdoc"
)

// FileSource reads posts from a directory tree:
//
//	{dir}/posts/{slug}/index.yaml    title, createdAt, timeToRead, cover
//	{dir}/posts/{slug}/content.mdoc  optional body
type FileSource struct {
	dir string
}

// entry mirrors index.yaml.
type entry struct {
	Title      string `yaml:"title"`
	CreatedAt  string `yaml:"createdAt"`
	TimeToRead int    `yaml:"timeToRead"`
	Cover      *struct {
		Alt       string `yaml:"alt"`
		Owner     string `yaml:"owner"`
		OwnerLink string `yaml:"ownerLink"`
	} `yaml:"cover"`
}

// NewFileSource returns a FileSource rooted at dir. The directory must exist.
func NewFileSource(dir string) (*FileSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open content dir: %s is not a directory", dir)
	}
	return &FileSource{dir: dir}, nil
}

func (s *FileSource) postsDir() string {
	return filepath.Join(s.dir, "posts")
}

// ListSlugs returns every directory under posts/ that holds an index.yaml,
// sorted by name.
func (s *FileSource) ListSlugs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.postsDir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list posts: %w", err)
	}
	var slugs []string
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.IsDir() || !ValidSlug(e.Name()) {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.postsDir(), e.Name(), entryFile)); err != nil {
			continue
		}
		slugs = append(slugs, e.Name())
	}
	sort.Strings(slugs)
	return slugs, nil
}

// GetPost reads and validates posts/{slug}/index.yaml. The body is not read
// until the returned post's Content loader is called.
func (s *FileSource) GetPost(ctx context.Context, slug string) (Post, error) {
	if err := ctx.Err(); err != nil {
		return Post{}, err
	}
	if !ValidSlug(slug) {
		return Post{}, ErrNotFound
	}
	dir := filepath.Join(s.postsDir(), slug)
	raw, err := os.ReadFile(filepath.Join(dir, entryFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Post{}, ErrNotFound
		}
		return Post{}, fmt.Errorf("read post %q: %w", slug, err)
	}
	post, err := decodeEntry(slug, raw)
	if err != nil {
		return Post{}, err
	}
	contentPath := filepath.Join(dir, contentFile)
	if _, err := os.Stat(contentPath); err == nil {
		post.Content = fileContentLoader(contentPath)
	}
	return post, nil
}

// ReadBody returns the raw body text of a post, or "" when it has none.
func (s *FileSource) ReadBody(slug string) (string, error) {
	if !ValidSlug(slug) {
		return "", ErrNotFound
	}
	b, err := os.ReadFile(filepath.Join(s.postsDir(), slug, contentFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read body %q: %w", slug, err)
	}
	return string(b), nil
}

func decodeEntry(slug string, raw []byte) (Post, error) {
	var e entry
	if err := yaml.Unmarshal(raw, &e); err != nil {
		return Post{}, fmt.Errorf("decode post %q: %w", slug, err)
	}
	post := Post{
		Slug:       slug,
		Title:      e.Title,
		TimeToRead: e.TimeToRead,
	}
	if e.CreatedAt != "" {
		t, err := dateparse.ParseAny(e.CreatedAt)
		if err != nil {
			return Post{}, fmt.Errorf("decode post %q: createdAt: %w", slug, err)
		}
		post.CreatedAt = t
	}
	if e.Cover != nil {
		post.Cover = &Cover{
			Alt:       e.Cover.Alt,
			Owner:     e.Cover.Owner,
			OwnerLink: e.Cover.OwnerLink,
		}
	}
	if err := validatePost(post); err != nil {
		return Post{}, err
	}
	return post, nil
}

func fileContentLoader(path string) ContentLoader {
	return func(ctx context.Context) (*document.Document, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return document.Parse(string(b)), nil
	}
}
