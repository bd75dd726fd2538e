package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/andripurnomo/folio"
	"github.com/andripurnomo/folio/scaffold"
)

// postData holds the template variables passed to every post template.
type postData struct {
	Slug      string
	Title     string
	CreatedAt string
}

// runNew writes a post skeleton to {contentDir}/posts/{slug} and returns the
// files it created.
func runNew(contentDir, slug string, now time.Time) ([]string, error) {
	if !folio.ValidSlug(slug) {
		return nil, fmt.Errorf("invalid slug %q", slug)
	}
	dir := filepath.Join(contentDir, "posts", slug)
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("directory %q already exists", dir)
	}

	data := postData{
		Slug:      slug,
		Title:     toTitle(slug),
		CreatedAt: now.Format("2006-01-02"),
	}

	root := "templates/post"
	var created []string
	err := fs.WalkDir(scaffold.Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		outPath := strings.TrimSuffix(filepath.Join(dir, relPath), ".tmpl")
		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		content, err := scaffold.Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()
		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}
		created = append(created, outPath)
		return nil
	})
	return created, err
}

// toTitle converts a hyphenated slug to a title-case string.
// e.g. "my-first-post" -> "My First Post"
func toTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
