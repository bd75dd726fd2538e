package folio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const helloYAML = `
title: Hello World
createdAt: 2024-03-04
timeToRead: 5
cover:
  alt: A mountain
  owner: Jane Doe
  ownerLink: https://unsplash.com/@jane
`

func TestFileSourceGetPost(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "hello-world", helloYAML, "Hi there.")
	src, err := NewFileSource(dir)
	if err != nil {
		t.Fatal(err)
	}

	post, err := src.GetPost(context.Background(), "hello-world")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if post.Title != "Hello World" || post.TimeToRead != 5 {
		t.Fatalf("unexpected post: %+v", post)
	}
	if got := FormatDate(post.CreatedAt); got != "March 4, 2024" {
		t.Fatalf("CreatedAt = %s", got)
	}
	if post.Cover == nil || post.Cover.Owner != "Jane Doe" {
		t.Fatalf("cover = %+v", post.Cover)
	}
	if post.Content == nil {
		t.Fatal("expected a content loader")
	}
	doc, err := post.Content(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(doc.Blocks))
	}
}

func TestFileSourceAcceptsLooseDates(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "a", "title: A\ncreatedAt: \"2024-03-04T10:30:00Z\"\ntimeToRead: 1", "")
	writeEntry(t, dir, "b", "title: B\ncreatedAt: \"March 4, 2024\"\ntimeToRead: 1", "")
	src, _ := NewFileSource(dir)
	for _, slug := range []string{"a", "b"} {
		post, err := src.GetPost(context.Background(), slug)
		if err != nil {
			t.Fatalf("%s: %v", slug, err)
		}
		if post.CreatedAt.Format("2006-01-02") != "2024-03-04" {
			t.Errorf("%s: CreatedAt = %v", slug, post.CreatedAt)
		}
	}
}

func TestFileSourceNoBodyNoCover(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "bare", "title: Bare\ncreatedAt: 2024-01-01\ntimeToRead: 2", "")
	src, _ := NewFileSource(dir)
	post, err := src.GetPost(context.Background(), "bare")
	if err != nil {
		t.Fatal(err)
	}
	if post.Content != nil {
		t.Fatal("expected nil content")
	}
	if post.Cover != nil {
		t.Fatal("expected nil cover")
	}
	body, err := src.ReadBody("bare")
	if err != nil || body != "" {
		t.Fatalf("ReadBody = %q, %v", body, err)
	}
}

func TestFileSourceNotFound(t *testing.T) {
	src, _ := NewFileSource(t.TempDir())
	for _, slug := range []string{"missing", "../etc", ""} {
		if _, err := src.GetPost(context.Background(), slug); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetPost(%q) err = %v, want ErrNotFound", slug, err)
		}
	}
}

func TestFileSourceInvalidEntry(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "untitled", "createdAt: 2024-01-01\ntimeToRead: 1", "")
	writeEntry(t, dir, "broken", "title: [unclosed", "")
	src, _ := NewFileSource(dir)
	for _, slug := range []string{"untitled", "broken"} {
		_, err := src.GetPost(context.Background(), slug)
		if err == nil || errors.Is(err, ErrNotFound) {
			t.Errorf("GetPost(%q) err = %v, want a decode or validation error", slug, err)
		}
	}
}

func TestFileSourceContentErrorIsDeferred(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "gone", helloYAML, "body")
	src, _ := NewFileSource(dir)
	post, err := src.GetPost(context.Background(), "gone")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(dir, "posts", "gone", contentFile)); err != nil {
		t.Fatal(err)
	}
	if _, err := post.Content(context.Background()); err == nil {
		t.Fatal("expected the loader to fail once the body is removed")
	}
}

func TestFileSourceListSlugs(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "b-post", helloYAML, "")
	writeEntry(t, dir, "a-post", helloYAML, "")
	if err := os.MkdirAll(filepath.Join(dir, "posts", "drafts-without-entry"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "posts", "stray.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	src, _ := NewFileSource(dir)
	slugs, err := src.ListSlugs(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(slugs) != 2 || slugs[0] != "a-post" || slugs[1] != "b-post" {
		t.Fatalf("slugs = %v", slugs)
	}
}

func TestFileSourceEmptyDir(t *testing.T) {
	src, _ := NewFileSource(t.TempDir())
	slugs, err := src.ListSlugs(context.Background())
	if err != nil || len(slugs) != 0 {
		t.Fatalf("ListSlugs = %v, %v", slugs, err)
	}
}

func TestNewFileSourceMissingDir(t *testing.T) {
	if _, err := NewFileSource(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for a missing content dir")
	}
}
