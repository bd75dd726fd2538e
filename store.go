package folio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/andripurnomo/folio/document"
)

// Store is a SQLite-backed content source. The server only reads from it;
// SavePost is used by the import command.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the import command write while a server reads. synchronous=NORMAL
	// is safe with WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    created_at TEXT NOT NULL,
    time_to_read INTEGER NOT NULL DEFAULT 0,
    cover_alt TEXT,
    cover_owner TEXT,
    cover_owner_link TEXT,
    has_cover INTEGER NOT NULL DEFAULT 0,
    content TEXT
);
`)
	return err
}

// ListSlugs returns every stored slug ordered by creation date, newest first.
func (s *Store) ListSlugs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

// GetPost returns the post stored under slug. The body is left in the
// database until the post's Content loader is called.
func (s *Store) GetPost(ctx context.Context, slug string) (Post, error) {
	var (
		title, createdAt                string
		timeToRead                      int
		coverAlt, coverOwner, coverLink sql.NullString
		hasCover                        int
		hasContent                      bool
	)
	err := s.db.QueryRowContext(ctx, `
SELECT title, created_at, time_to_read, cover_alt, cover_owner, cover_owner_link, has_cover, content IS NOT NULL
FROM posts WHERE slug = ?`, slug).
		Scan(&title, &createdAt, &timeToRead, &coverAlt, &coverOwner, &coverLink, &hasCover, &hasContent)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Post{}, ErrNotFound
		}
		return Post{}, fmt.Errorf("get post %q: %w", slug, err)
	}
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Post{}, fmt.Errorf("get post %q: created_at: %w", slug, err)
	}
	post := Post{
		Slug:       slug,
		Title:      title,
		CreatedAt:  created,
		TimeToRead: timeToRead,
	}
	if hasCover == 1 {
		post.Cover = &Cover{
			Alt:       coverAlt.String,
			Owner:     coverOwner.String,
			OwnerLink: coverLink.String,
		}
	}
	if hasContent {
		post.Content = s.contentLoader(slug)
	}
	return post, nil
}

func (s *Store) contentLoader(slug string) ContentLoader {
	return func(ctx context.Context) (*document.Document, error) {
		var body sql.NullString
		err := s.db.QueryRowContext(ctx, `SELECT content FROM posts WHERE slug = ?`, slug).Scan(&body)
		if err != nil {
			return nil, err
		}
		if !body.Valid {
			return nil, fmt.Errorf("content removed")
		}
		return document.Parse(body.String), nil
	}
}

// SavePost upserts a post and its raw body. An empty body is stored as NULL
// so the post renders without a body section.
func (s *Store) SavePost(ctx context.Context, p Post, body string) error {
	if !ValidSlug(p.Slug) {
		return fmt.Errorf("invalid post slug %q", p.Slug)
	}
	if err := validatePost(p); err != nil {
		return err
	}
	var content sql.NullString
	if body != "" {
		content = sql.NullString{String: body, Valid: true}
	}
	var alt, owner, link string
	hasCover := 0
	if p.Cover != nil {
		alt, owner, link = p.Cover.Alt, p.Cover.Owner, p.Cover.OwnerLink
		hasCover = 1
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO posts
(slug, title, created_at, time_to_read, cover_alt, cover_owner, cover_owner_link, has_cover, content)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.CreatedAt.UTC().Format(time.RFC3339), p.TimeToRead, alt, owner, link, hasCover, content)
	return err
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(ctx context.Context, slug string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE slug = ?`, slug)
	return err
}
