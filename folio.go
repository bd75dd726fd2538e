// Package folio is a personal portfolio and blog server built with Go, Echo,
// and templ. It serves a static bio page and blog post pages rendered from a
// read-only content source, and can pre-generate every page to disk.
//
// Templates are supplied by the caller through ViewFuncs; folio owns the
// handlers, middleware, content loading and static build.
package folio

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ViewFuncs holds the templ components the framework calls when rendering
// pages.
type ViewFuncs struct {
	Home        func(cfg SiteConfig) templ.Component
	BlogIndex   func(cfg SiteConfig, posts []Post) templ.Component
	Post        func(cfg SiteConfig, page PostPage) templ.Component
	NotFound    func(cfg SiteConfig) templ.Component
	ServerError func(cfg SiteConfig) templ.Component
}

// App wires together the content source, index cache, handlers, middleware
// and templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Source Source
	Index  *IndexCache
	Views  ViewFuncs

	registry     *prometheus.Registry
	metrics      *metrics
	customRoutes []func(*App)
	closers      []io.Closer
	opened       bool
	routed       bool
}

// New creates an App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:   cfg,
		Echo:     echo.New(),
		Views:    views,
		registry: prometheus.NewRegistry(),
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// open validates the config and prepares the content source and index cache.
func (a *App) open() error {
	if a.opened {
		return nil
	}
	if err := a.Config.Validate(); err != nil {
		return err
	}
	a.Echo.Logger.SetLevel(a.Config.logLevel())

	if a.Source == nil {
		src, err := a.openSource()
		if err != nil {
			return err
		}
		a.Source = src
	}
	a.Index = NewIndexCache(a.Source, a.Config.IndexCacheTTL)
	a.Index.OnSkip = func(slug string, err error) {
		a.Echo.Logger.Warnf("index: skipping post %q: %v", slug, err)
	}
	a.metrics = newMetrics(a.registry)
	a.opened = true
	return nil
}

func (a *App) openSource() (Source, error) {
	if a.Config.DatabasePath != "" {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("folio: open store: %w", err)
		}
		a.closers = append(a.closers, store)
		return store, nil
	}
	src, err := NewFileSource(a.Config.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("folio: %w", err)
	}
	return src, nil
}

// Setup prepares the content source, middleware and routes without
// listening. Start calls it; tests call it directly and drive a.Echo.
func (a *App) Setup() error {
	if err := a.open(); err != nil {
		return err
	}
	if a.routed {
		return nil
	}
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.routed = true
	return nil
}

// Start sets the app up and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Echo.Logger.Infof("folio: listening on %s", a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework stylesheet, then the user's static assets.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.Static("/public", a.Config.StaticDir)
	e.Static("/images", a.Config.ImagesDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: a.registry}))
	e.GET("/_image", a.handleImage, a.imageRateLimit())

	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlogIndex)
	e.GET("/blog/:slug/", a.handlePost)
}

// Close releases the content source. Call this when the app is shutting down.
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
