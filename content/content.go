// Package content loads the site's static data: markdown pages with YAML
// frontmatter, the insight list, the arsenal, and the chronicle catalog.
// Everything is read once at startup; the result is never modified.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/eringen/atomicsite/catalog"
)

// Embedded holds the default site.yaml and pages/*.md compiled into the binary.
//
//go:embed site.yaml pages/*.md
var Embedded embed.FS

// ErrNotFound is returned when a page slug is unknown.
var ErrNotFound = errors.New("content: not found")

// Tool is one item of the arsenal page.
type Tool struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Page is a rendered markdown page.
type Page struct {
	Slug        string
	Title       string
	Description string
	Nav         int    // position in the navigation bar, 0 hides the page
	Body        string // HTML
	Hidden      string // HTML revealed on demand, empty when the page has none
}

// Path returns the page's URL path.
func (p Page) Path() string {
	if p.Slug == "home" {
		return "/"
	}
	return "/" + p.Slug + "/"
}

// Site is the fully loaded site content.
type Site struct {
	Insights   Insights
	Arsenal    []Tool
	Chronicles *catalog.Catalog

	pages []Page
}

// Pages returns all pages ordered by navigation position, hidden pages last.
func (s *Site) Pages() []Page {
	out := make([]Page, len(s.pages))
	copy(out, s.pages)
	return out
}

// Nav returns the pages shown in the navigation bar.
func (s *Site) Nav() []Page {
	var out []Page
	for _, p := range s.pages {
		if p.Nav > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Page looks up a page by slug.
func (s *Site) Page(slug string) (Page, error) {
	for _, p := range s.pages {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Page{}, fmt.Errorf("%w: page %q", ErrNotFound, slug)
}

// Data mirrors site.yaml.
type Data struct {
	Insights   []string        `yaml:"insights"`
	Arsenal    []Tool          `yaml:"arsenal"`
	Chronicles []catalog.Entry `yaml:"chronicles"`
}

type pageMeta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Nav         int    `yaml:"nav"`
	Hidden      string `yaml:"hidden"`
}

// LoadEmbedded loads the content compiled into the binary.
func LoadEmbedded() (*Site, error) {
	return Load(Embedded)
}

// Load reads site.yaml and pages/*.md from fsys.
func Load(fsys fs.FS) (*Site, error) {
	raw, err := fs.ReadFile(fsys, "site.yaml")
	if err != nil {
		return nil, fmt.Errorf("content: read site.yaml: %w", err)
	}
	data, err := ParseData(raw)
	if err != nil {
		return nil, err
	}
	pages, err := loadPages(fsys)
	if err != nil {
		return nil, err
	}
	return &Site{
		Insights:   Insights(data.Insights),
		Arsenal:    data.Arsenal,
		Chronicles: catalog.New(data.Chronicles),
		pages:      pages,
	}, nil
}

// ParseData decodes a site.yaml document and validates its chronicle entries.
func ParseData(raw []byte) (Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("content: parse site data: %w", err)
	}
	if err := ValidateEntries(data.Chronicles); err != nil {
		return Data{}, err
	}
	return data, nil
}

// ValidateEntries checks that every entry has a title and a YYYY-MM-DD date.
func ValidateEntries(entries []catalog.Entry) error {
	for i, e := range entries {
		if strings.TrimSpace(e.Title) == "" {
			return fmt.Errorf("content: chronicle %d: title is required", i)
		}
		if _, err := time.Parse(catalog.DateLayout, e.Date); err != nil {
			return fmt.Errorf("content: chronicle %d (%s): invalid date %q", i, e.Title, e.Date)
		}
	}
	return nil
}

// WithChronicles returns a copy of s that serves cat instead of its own catalog.
func (s *Site) WithChronicles(cat *catalog.Catalog) *Site {
	cp := *s
	cp.Chronicles = cat
	return &cp
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

func loadPages(fsys fs.FS) ([]Page, error) {
	files, err := fs.Glob(fsys, "pages/*.md")
	if err != nil {
		return nil, fmt.Errorf("content: list pages: %w", err)
	}
	titler := cases.Title(language.English)

	var pages []Page
	for _, name := range files {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", name, err)
		}
		var meta pageMeta
		body, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
		if err != nil {
			return nil, fmt.Errorf("content: frontmatter %s: %w", name, err)
		}

		slug := strings.TrimSuffix(path.Base(name), ".md")
		title := meta.Title
		if title == "" {
			title = titler.String(strings.ReplaceAll(slug, "-", " "))
		}
		html, err := renderMarkdown(body)
		if err != nil {
			return nil, fmt.Errorf("content: render %s: %w", name, err)
		}
		page := Page{
			Slug:        slug,
			Title:       title,
			Description: meta.Description,
			Nav:         meta.Nav,
			Body:        html,
		}
		if strings.TrimSpace(meta.Hidden) != "" {
			if page.Hidden, err = renderMarkdown([]byte(meta.Hidden)); err != nil {
				return nil, fmt.Errorf("content: render hidden block of %s: %w", name, err)
			}
		}
		pages = append(pages, page)
	}

	sort.SliceStable(pages, func(i, j int) bool {
		a, b := pages[i].Nav, pages[j].Nav
		if (a == 0) != (b == 0) {
			return b == 0
		}
		if a != b {
			return a < b
		}
		return pages[i].Slug < pages[j].Slug
	})
	return pages, nil
}

func renderMarkdown(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(src, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
