package atomicsite

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/atomicsite/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// renderSitemap lists every navigable page. The chronicles page is dated by
// its most recent entry.
func (a *App) renderSitemap(c echo.Context, pages []content.Page) error {
	base := a.Config.URL
	var urls []sitemapURL
	for _, p := range pages {
		if p.Nav == 0 {
			continue
		}
		u := sitemapURL{Loc: BuildURL(base, p.Slug)}
		switch p.Slug {
		case "home":
			u.Loc = BuildURL(base)
		case "chronicles":
			u.LastMod = a.latestChronicle()
		}
		urls = append(urls, u)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

func (a *App) latestChronicle() string {
	latest := ""
	for _, e := range a.catalog.Entries() {
		if !e.Time().IsZero() && e.Date > latest {
			latest = e.Date
		}
	}
	return latest
}
