package views

// SiteConfig holds the site-wide values templates need.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// NavLink is one entry of the navigation bar.
type NavLink struct {
	Title   string
	Href    string
	Current bool
}

// Shell is everything the layout needs besides the page body.
type Shell struct {
	Site      SiteConfig
	Meta      PageMeta
	Nav       []NavLink
	CSRFToken string
}
