package atomicsite

import (
	"time"

	"github.com/eringen/atomicsite/catalog"
	"github.com/eringen/atomicsite/content"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (default "I AM ATOMIC")
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description"` // Site description for RSS and meta tags
	Author      string `mapstructure:"author"`      // Author name for JSON-LD

	Addr         string `mapstructure:"addr"`          // Listen address (default ":3000")
	DatabasePath string `mapstructure:"database_path"` // Optional SQLite catalog; empty serves the embedded chronicles

	ChroniclesPageSize int `mapstructure:"chronicles_page_size"` // Entries per "load more" (default 2)

	SessionSecret string `mapstructure:"session_secret"` // Required: session encryption secret
	CookieSecure  bool   `mapstructure:"cookie_secure"`  // Set true for HTTPS

	ApplicationLimit  int           `mapstructure:"application_limit"`  // Submissions per IP per window (default 5)
	ApplicationWindow time.Duration `mapstructure:"application_window"` // Submission window (default 10min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "I AM ATOMIC"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ChroniclesPageSize <= 0 {
		c.ChroniclesPageSize = 2
	}
	if c.ApplicationLimit <= 0 {
		c.ApplicationLimit = 5
	}
	if c.ApplicationWindow <= 0 {
		c.ApplicationWindow = 10 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithContent replaces the embedded site content.
func WithContent(site *content.Site) Option {
	return func(a *App) {
		a.Site = site
	}
}

// WithCatalog serves cat as the chronicles instead of the content's own list.
// It takes precedence over DatabasePath.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(a *App) {
		a.catalog = cat
	}
}
