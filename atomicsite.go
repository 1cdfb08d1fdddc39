// Package atomicsite serves the "I AM ATOMIC" themed multipage site with Echo
// and templ. Pages are server rendered; the interactive pieces (insight
// rotation, the hidden wisdom toggle, chronicle pagination, live form
// feedback) are htmx fragments answered by the handlers in this package.
package atomicsite

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/atomicsite/catalog"
	"github.com/eringen/atomicsite/content"
)

// App is the central application. It wires together content, the chronicle
// catalog, handlers and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Site   *content.Site
	Store  *Store

	catalog       *catalog.Catalog
	submitLimiter *SubmitLimiter
	customRoutes  []func(*App)
	ready         bool
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init loads content and the chronicle catalog and registers middleware and
// routes. Start calls it when needed; tests call it directly.
func (a *App) Init() error {
	if a.ready {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("atomicsite: SessionSecret is required")
	}

	if a.Site == nil {
		site, err := content.LoadEmbedded()
		if err != nil {
			return fmt.Errorf("atomicsite: load content: %w", err)
		}
		a.Site = site
	}

	// The catalog is fixed for the lifetime of the process.
	if a.catalog == nil && a.Config.DatabasePath != "" {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("atomicsite: init store: %w", err)
		}
		a.Store = store
		entries, err := store.ListEntries()
		if err != nil {
			return fmt.Errorf("atomicsite: load chronicles: %w", err)
		}
		a.catalog = catalog.New(entries)
	}
	if a.catalog == nil {
		a.catalog = a.Site.Chronicles
	}

	a.submitLimiter = NewSubmitLimiter(a.Config.ApplicationLimit, a.Config.ApplicationWindow)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Catalog returns the chronicle catalog being served.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}

// Start initializes the app and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Echo.Logger.Infof("serving %d chronicles on %s", a.catalog.Len(), a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	publicFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	e.StaticFS("/public", publicFS)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/insight/", a.handleInsight)
	e.GET("/philosophy/", a.handlePhilosophy)
	e.GET("/arsenal/", a.handleArsenal)
	e.GET("/chronicles/", a.handleChronicles)
	e.GET("/api/chronicles", a.handleChroniclesAPI)

	e.GET("/contact/", a.handleContact)
	e.POST("/contact/", a.handleContactSubmit)
	e.POST("/contact/validate/:field/", a.handleContactValidate)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.submitLimiter != nil {
		a.submitLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
