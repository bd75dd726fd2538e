package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"

	"github.com/andripurnomo/folio"
	"github.com/andripurnomo/folio/views"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := &cli.App{
		Name:  "folio",
		Usage: "personal portfolio and blog built with Go, Echo, and templ",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "site-name",
				EnvVars: []string{"SITE_NAME"},
			},
			&cli.StringFlag{
				Name:    "site-url",
				EnvVars: []string{"SITE_URL"},
			},
			&cli.StringFlag{
				Name:    "site-description",
				EnvVars: []string{"SITE_DESCRIPTION"},
			},
			&cli.StringFlag{
				Name:    "site-author",
				EnvVars: []string{"SITE_AUTHOR"},
			},
			&cli.StringFlag{
				Name:    "content-dir",
				EnvVars: []string{"CONTENT_DIR"},
				Value:   "content",
			},
			&cli.StringFlag{
				Name:    "database-path",
				Usage:   "serve from a SQLite store instead of the content directory",
				EnvVars: []string{"DATABASE_PATH"},
			},
			&cli.StringFlag{
				Name:    "static-dir",
				EnvVars: []string{"STATIC_DIR"},
				Value:   "public",
			},
			&cli.StringFlag{
				Name:    "images-dir",
				EnvVars: []string{"IMAGES_DIR"},
				Value:   "public/images",
			},
			&cli.DurationFlag{
				Name:    "index-cache-ttl",
				EnvVars: []string{"INDEX_CACHE_TTL"},
				Value:   5 * time.Minute,
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "serve the site over HTTP",
				Action: runServe,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						EnvVars: []string{"ADDR"},
						Value:   ":3000",
					},
					&cli.IntFlag{
						Name:    "image-rate-limit",
						Usage:   "image optimizer requests per IP per minute",
						EnvVars: []string{"IMAGE_RATE_LIMIT"},
						Value:   120,
					},
				},
			},
			{
				Name:   "build",
				Usage:  "pre-render every page to the output directory",
				Action: runBuild,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						EnvVars: []string{"OUTPUT_DIR"},
						Value:   "out",
					},
					&cli.IntFlag{
						Name:    "workers",
						EnvVars: []string{"BUILD_WORKERS"},
						Value:   4,
					},
				},
			},
			{
				Name:      "import",
				Usage:     "copy posts from the content directory into the SQLite store",
				ArgsUsage: " ",
				Action:    runImport,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "prune",
						Usage: "delete stored posts that are no longer in the content directory",
					},
				},
			},
			{
				Name:      "new",
				Usage:     "create a post skeleton",
				ArgsUsage: "<slug>",
				Action:    runNewPost,
			},
			{
				Name:  "version",
				Usage: "print the folio version",
				Action: func(cmd *cli.Context) error {
					fmt.Printf("folio %s\n", version)
					return nil
				},
			},
		},
		ErrWriter: os.Stderr,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// siteConfig maps global flags onto a SiteConfig. Empty values fall back to
// folio's defaults.
func siteConfig(cmd *cli.Context) folio.SiteConfig {
	return folio.SiteConfig{
		Name:           cmd.String("site-name"),
		URL:            cmd.String("site-url"),
		Description:    cmd.String("site-description"),
		Author:         cmd.String("site-author"),
		Addr:           cmd.String("addr"),
		ContentDir:     cmd.String("content-dir"),
		DatabasePath:   cmd.String("database-path"),
		StaticDir:      cmd.String("static-dir"),
		ImagesDir:      cmd.String("images-dir"),
		OutputDir:      cmd.String("out"),
		IndexCacheTTL:  cmd.Duration("index-cache-ttl"),
		ImageRateLimit: cmd.Int("image-rate-limit"),
		BuildWorkers:   cmd.Int("workers"),
		LogLevel:       cmd.String("log-level"),
	}
}

var runServe = func(cmd *cli.Context) error {
	app := folio.New(siteConfig(cmd), views.Default())
	defer app.Close()

	ctx, stop := signal.NotifyContext(cmd.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- app.Start()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	app.Echo.Logger.Info("received os exit signal, shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Shutdown(shutdownCtx)
}

var runBuild = func(cmd *cli.Context) error {
	app := folio.New(siteConfig(cmd), views.Default())
	defer app.Close()

	res, err := app.Build(cmd.Context)
	fmt.Printf("wrote %d pages to %s\n", res.Pages, app.Config.OutputDir)
	if len(res.Failed) > 0 {
		fmt.Fprintf(os.Stderr, "%d posts failed: %v\n", len(res.Failed), res.Failed)
	}
	return err
}

var runImport = func(cmd *cli.Context) error {
	cfg := siteConfig(cmd)
	if cfg.DatabasePath == "" {
		return errors.New("import needs --database-path or DATABASE_PATH")
	}
	src, err := folio.NewFileSource(cfg.ContentDir)
	if err != nil {
		return err
	}
	store, err := folio.NewStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	res, err := folio.Import(cmd.Context, src, store, cmd.Bool("prune"))
	fmt.Printf("saved %d posts, pruned %d\n", res.Saved, res.Pruned)
	for _, slug := range res.Skipped {
		fmt.Fprintf(os.Stderr, "  skipped %s\n", slug)
	}
	return err
}

var runNewPost = func(cmd *cli.Context) error {
	slug := cmd.Args().First()
	if slug == "" {
		return errors.New("usage: folio new <slug>")
	}
	created, err := runNew(cmd.String("content-dir"), slug, time.Now())
	for _, p := range created {
		fmt.Printf("  created %s\n", p)
	}
	return err
}
