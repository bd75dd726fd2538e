package folio_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/require"

	"github.com/andripurnomo/folio"
	"github.com/andripurnomo/folio/views"
)

// site is a content tree on disk plus an App serving it.
type site struct {
	root string
	app  *folio.App
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newSite(t *testing.T, opts ...folio.Option) *site {
	t.Helper()
	root := t.TempDir()
	content := filepath.Join(root, "content")
	static := filepath.Join(root, "public")

	writeFile(t, filepath.Join(content, "posts", "hello-world", "index.yaml"), `title: Hello World
createdAt: 2024-03-04
timeToRead: 5
cover:
  alt: A mountain
  owner: Jane Doe
  ownerLink: https://unsplash.com/@jane
`)
	writeFile(t, filepath.Join(content, "posts", "hello-world", "content.mdoc"),
		"Intro.\n\n{% twitterEmbed tweet=\"https://twitter.com/u/status/123?s=20\" /%}\n")
	writeFile(t, filepath.Join(content, "posts", "older", "index.yaml"),
		"title: Older\ncreatedAt: 2023-01-01\ntimeToRead: 2\n")
	writeFile(t, filepath.Join(static, "favicon.svg"), "<svg/>")

	img := image.NewRGBA(image.Rect(0, 0, 900, 600))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	writeFile(t, filepath.Join(static, "images", "blogs", "hello-world", "cover", "resource.jpg"), buf.String())

	cfg := folio.SiteConfig{
		URL:        "https://example.com",
		ContentDir: content,
		StaticDir:  static,
		ImagesDir:  filepath.Join(static, "images"),
		OutputDir:  filepath.Join(root, "out"),
		LogLevel:   "error",
	}
	app := folio.New(cfg, views.Default(), opts...)
	app.Echo.Logger.SetOutput(io.Discard)
	app.Echo.Logger.SetLevel(log.OFF)
	return &site{root: root, app: app}
}

func (s *site) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	require.NoError(t, s.app.Setup())
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.app.Echo.ServeHTTP(rec, req)
	return rec
}

func parseHTML(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

// failingSource returns err from every GetPost call.
type failingSource struct {
	slugs []string
	err   error
}

func (f failingSource) GetPost(context.Context, string) (folio.Post, error) {
	return folio.Post{}, f.err
}

func (f failingSource) ListSlugs(context.Context) ([]string, error) {
	return f.slugs, nil
}

var errBackend = errors.New("backend unavailable")
