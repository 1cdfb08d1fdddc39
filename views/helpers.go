package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/eringen/atomicsite/catalog"
)

// HTMXSrc is the htmx build loaded by every page.
const HTMXSrc = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// pageTitle is the document title: the page title suffixed with the site
// name, or the site name alone.
func pageTitle(s Shell) string {
	if s.Meta.Title != "" && s.Meta.Title != s.Site.Name {
		return s.Meta.Title + " | " + s.Site.Name
	}
	return s.Site.Name
}

func ogType(m PageMeta) string {
	if m.OGType == "" {
		return "website"
	}
	return m.OGType
}

// csrfHeaders is the hx-headers value that makes every htmx request carry
// the CSRF token.
func csrfHeaders(token string) string {
	return `{"X-CSRF-Token": "` + token + `"}`
}

// jsonLDScript wraps a marshalled JSON-LD document in its script element.
// encoding/json escapes <, > and & so the payload cannot close the element.
func jsonLDScript(data string) string {
	return `<script type="application/ld+json">` + data + `</script>`
}

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      buildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	return marshalJsonLD(data)
}

// ChroniclesJsonLD describes the rendered entries as a Schema.org ItemList.
// Positions are 1-based and continue from offset.
func ChroniclesJsonLD(cfg SiteConfig, entries []catalog.Entry, offset int) string {
	items := make([]map[string]interface{}, 0, len(entries))
	for i, e := range entries {
		items = append(items, map[string]interface{}{
			"@type":    "ListItem",
			"position": offset + i + 1,
			"item": map[string]string{
				"@type":         "Article",
				"headline":      e.Title,
				"description":   e.Excerpt,
				"datePublished": e.Date,
			},
		})
	}
	return marshalJsonLD(map[string]interface{}{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"url":             buildURL(cfg.URL, "chronicles"),
		"itemListElement": items,
	})
}

func marshalJsonLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
