package folio

import (
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string // Site name (default "Andri Purnomo")
	URL         string `validate:"required,url"` // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	ContentDir   string // Directory holding posts/{slug}/ entries (default "content")
	DatabasePath string // SQLite content store; when set it replaces ContentDir
	StaticDir    string // Served under /public (default "public")
	ImagesDir    string // Served under /images (default "public/images")
	OutputDir    string // Target of the static build (default "out")

	IndexCacheTTL  time.Duration `validate:"gte=0"` // Post listing cache TTL (default 5min)
	ImageRateLimit int           `validate:"gte=0"` // Optimizer requests per IP per minute (default 120)
	BuildWorkers   int           `validate:"gte=0"` // Concurrent page renders in a static build (default 4)

	LogLevel string `validate:"omitempty,oneof=debug info warn error off"` // Echo logger level (default "info")
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Andri Purnomo"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Description == "" {
		c.Description = "Frontend engineer writing about React, Next.js and TypeScript."
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.ImagesDir == "" {
		c.ImagesDir = "public/images"
	}
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	if c.IndexCacheTTL == 0 {
		c.IndexCacheTTL = 5 * time.Minute
	}
	if c.ImageRateLimit == 0 {
		c.ImageRateLimit = 120
	}
	if c.BuildWorkers == 0 {
		c.BuildWorkers = 4
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks the configuration after defaults are applied.
func (c SiteConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("folio: invalid config: %w", err)
	}
	return nil
}

func (c SiteConfig) logLevel() log.Lvl {
	switch c.LogLevel {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithSource replaces the content source chosen from the config.
func WithSource(src Source) Option {
	return func(a *App) {
		a.Source = src
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}
