// Package seomaster serves the SEO Master marketing site: a home page, a blog
// listing and detail pages backed by a blog_posts store, and static About and
// Contact pages.
//
// Every page is rendered on the server with its own title, meta tags,
// canonical link and JSON-LD block. The embedded nav.js turns same-origin
// link clicks into in-place transitions by fetching partial documents, so
// moving between pages never reloads the browser.
package seomaster

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/seomaster/content"
	"github.com/eringen/seomaster/log"
	"github.com/eringen/seomaster/supabase"
)

// App is the central application. It wires together the content source,
// the SQLite store, handlers and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Source content.Source // posts rendered by the page views
	Store  *Store         // contact messages, and posts for the sqlite backend

	contactLimiter *ContactLimiter
	customRoutes   []func(*App)
	staticDir      string
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config:    cfg,
		Echo:      e,
		staticDir: cfg.StaticDir,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Setup opens the store and content source and registers middleware and
// routes. Start calls it; tests call it directly and drive a.Echo.
func (a *App) Setup() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("seomaster: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("seomaster: init store: %w", err)
	}
	a.Store = store

	if a.Source == nil {
		switch a.Config.Backend {
		case BackendSupabase:
			client, err := supabase.New(supabase.Config{
				URL: a.Config.SupabaseURL,
				Key: a.Config.SupabaseKey,
			})
			if err != nil {
				return fmt.Errorf("seomaster: init supabase: %w", err)
			}
			a.Source = client
		default:
			a.Source = store
		}
	}

	a.contactLimiter = NewContactLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the app up and serves until Shutdown is called.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	log.S().Infow("starting server", "addr", a.Config.Addr, "backend", a.Config.Backend)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded assets take precedence over the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embeddedFS))))
	e.GET("/public/nav.js", embeddedHandler)
	e.GET("/public/site.css", embeddedHandler)
	e.Static("/public", a.staticDir)

	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/healthz", handleHealth)
	e.POST("/contact", a.handleContactSubmit)

	// Every other GET goes through the page router.
	e.GET("/*", a.handlePage)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.contactLimiter != nil {
		a.contactLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
