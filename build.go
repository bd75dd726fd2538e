package folio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/a-h/templ"
	"golang.org/x/sync/errgroup"
)

// BuildResult summarises a static build.
type BuildResult struct {
	Pages  int      // HTML pages written
	Failed []string // slugs whose page could not be written
}

// Build pre-renders every page into Config.OutputDir: the home page, the
// blog index, one page per StaticParams entry, 404.html, the feed, the
// sitemap and robots.txt, and copies static assets alongside.
//
// Post pages render concurrently and independently. A failing post does not
// stop the others; all failures are returned joined.
func (a *App) Build(ctx context.Context) (BuildResult, error) {
	var res BuildResult
	if err := a.open(); err != nil {
		return res, err
	}
	out := a.Config.OutputDir
	log := a.Echo.Logger

	if err := os.MkdirAll(out, 0o755); err != nil {
		return res, fmt.Errorf("create output dir: %w", err)
	}

	pages := []struct {
		name string
		cmp  templ.Component
	}{
		{"index.html", a.Views.Home(a.Config)},
		{"404.html", a.Views.NotFound(a.Config)},
	}
	for _, p := range pages {
		if err := RenderFile(ctx, filepath.Join(out, p.name), p.cmp); err != nil {
			return res, err
		}
		res.Pages++
		log.Infof("build: wrote %s", p.name)
	}

	var errs []error
	if err := a.buildListings(ctx); err != nil {
		log.Errorf("build: listings: %v", err)
		errs = append(errs, err)
	} else {
		res.Pages++
	}
	if err := os.WriteFile(filepath.Join(out, "robots.txt"), []byte(robotsTxt(a.Config)), 0o644); err != nil {
		return res, err
	}

	params, err := GenerateStaticParams(ctx, a.Source)
	if err != nil {
		return res, err
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(a.Config.BuildWorkers)
	for _, p := range params {
		g.Go(func() error {
			err := a.buildPost(ctx, p.Slug)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Errorf("build: post %q: %v", p.Slug, err)
				res.Failed = append(res.Failed, p.Slug)
				errs = append(errs, err)
				return nil
			}
			res.Pages++
			log.Infof("build: wrote blog/%s/index.html", p.Slug)
			return nil
		})
	}
	_ = g.Wait()

	if err := a.copyAssets(out); err != nil {
		errs = append(errs, err)
	}
	return res, errors.Join(errs...)
}

// buildListings writes the blog index, the feed and the sitemap.
func (a *App) buildListings(ctx context.Context) error {
	out := a.Config.OutputDir
	posts, err := a.Index.ListPosts(ctx)
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}
	if err := RenderFile(ctx, filepath.Join(out, "blog", "index.html"), a.Views.BlogIndex(a.Config, posts)); err != nil {
		return err
	}
	if err := writeFileWith(filepath.Join(out, "feed.xml"), func(w io.Writer) error {
		return writeRSS(w, a.Config, posts)
	}); err != nil {
		return err
	}
	return writeFileWith(filepath.Join(out, "sitemap.xml"), func(w io.Writer) error {
		return writeSitemap(w, a.Config, posts)
	})
}

// buildPost writes a post page. A post whose body fails to resolve is still
// written with the body notice, and the content error is returned.
func (a *App) buildPost(ctx context.Context, slug string) error {
	if !ValidSlug(slug) {
		a.metrics.postRenders.WithLabelValues("build_error").Inc()
		return fmt.Errorf("build post: invalid slug %q", slug)
	}
	page, err := LoadPostPage(ctx, a.Source, slug)
	if !page.Found() {
		a.metrics.postRenders.WithLabelValues("build_error").Inc()
		return err
	}
	path := filepath.Join(a.Config.OutputDir, "blog", slug, "index.html")
	if rerr := RenderFile(ctx, path, a.Views.Post(a.Config, page)); rerr != nil {
		a.metrics.postRenders.WithLabelValues("build_error").Inc()
		return errors.Join(err, rerr)
	}
	if err != nil {
		a.metrics.postRenders.WithLabelValues("build_error").Inc()
		return err
	}
	a.metrics.postRenders.WithLabelValues("build").Inc()
	return nil
}

func (a *App) copyAssets(out string) error {
	if err := copyDir(a.Config.StaticDir, filepath.Join(out, "public")); err != nil {
		return fmt.Errorf("copy static dir: %w", err)
	}
	if err := copyDir(a.Config.ImagesDir, filepath.Join(out, "images")); err != nil {
		return fmt.Errorf("copy images dir: %w", err)
	}
	css, err := EmbeddedAssets.ReadFile("embedded/site.css")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(out, "public"), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(out, "public", "site.css"), css, 0o644)
}

func writeFileWith(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// copyDir copies the tree at src into dst. A missing src is not an error.
func copyDir(src, dst string) error {
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(p, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
