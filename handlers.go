package folio

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	return Render(c, a.Views.Home(a.Config))
}

func (a *App) handleBlogIndex(c echo.Context) error {
	posts, err := a.Index.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.BlogIndex(a.Config, posts))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	page, err := LoadPostPage(c.Request().Context(), a.Source, slug)
	code := a.postStatus(c.Logger(), slug, err)
	return RenderStatus(c, code, a.Views.Post(a.Config, page))
}

// postStatus maps a LoadPostPage error onto an HTTP status, logging and
// counting the outcome. Every outcome still renders the post view.
func (a *App) postStatus(logger echo.Logger, slug string, err error) int {
	var cerr *ContentError
	switch {
	case err == nil:
		a.metrics.postRenders.WithLabelValues("ok").Inc()
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		a.metrics.postRenders.WithLabelValues("not_found").Inc()
		return http.StatusNotFound
	case errors.As(err, &cerr):
		logger.Warnf("post %q: %v", slug, err)
		a.metrics.postRenders.WithLabelValues("content_error").Inc()
		return http.StatusInternalServerError
	default:
		logger.Errorf("post %q: %v", slug, err)
		a.metrics.postRenders.WithLabelValues("fetch_error").Inc()
		return http.StatusInternalServerError
	}
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Index.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Index.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.Config.StaticDir + "/favicon.svg")
}

// handleRobots generates robots.txt from the site URL.
func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, robotsTxt(a.Config))
}

func robotsTxt(cfg SiteConfig) string {
	return "User-agent: *\nAllow: /\nDisallow: /_image\n\nSitemap: " + AbsoluteURL(cfg.URL, "/sitemap.xml") + "\n"
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.Config))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
