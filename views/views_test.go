package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/eringen/atomicsite/catalog"
	"github.com/eringen/atomicsite/contact"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestEntryWriterAppendsInOrder(t *testing.T) {
	var buf bytes.Buffer
	ew := NewEntryWriter(context.Background(), &buf)
	cat := catalog.New([]catalog.Entry{
		{Date: "2024-01-05", Title: "First", Excerpt: "one"},
		{Date: "2024-02-18", Title: "Second", Excerpt: "two"},
		{Date: "2024-03-22", Title: "Third", Excerpt: "three"},
	})

	page, err := cat.RenderNextPage(ew, 0, 2)
	if err != nil {
		t.Fatalf("RenderNextPage: %v", err)
	}
	first := buf.String()
	if _, err := cat.RenderNextPage(ew, page.Cursor, 2); err != nil {
		t.Fatalf("RenderNextPage: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, first) {
		t.Fatal("second page rewrote earlier output")
	}
	if strings.Count(out, `class="chronicle-entry"`) != 3 {
		t.Fatalf("expected 3 entries, got:\n%s", out)
	}
	i1, i2, i3 := strings.Index(out, "First"), strings.Index(out, "Second"), strings.Index(out, "Third")
	if !(i1 < i2 && i2 < i3) {
		t.Fatalf("entries out of order:\n%s", out)
	}
	if !strings.Contains(out, `<time datetime="2024-01-05">2024-01-05</time>`) {
		t.Errorf("missing date markup:\n%s", out)
	}
}

func TestChronicleEntryEscapes(t *testing.T) {
	out := renderString(t, ChronicleEntry(catalog.Entry{Title: "<script>x</script>", Excerpt: "a & b"}))
	if strings.Contains(out, "<script>") {
		t.Fatalf("title not escaped: %s", out)
	}
	if !strings.Contains(out, "a &amp; b") {
		t.Fatalf("excerpt not escaped: %s", out)
	}
}

func TestChronicleEntryAnchor(t *testing.T) {
	out := renderString(t, ChronicleEntry(catalog.Entry{Date: "2024-04-10", Title: "Academy Arc Climax"}))
	if !strings.Contains(out, `id="chronicle-academy-arc-climax"`) {
		t.Fatalf("missing anchor id: %s", out)
	}
}

func TestLoadMore(t *testing.T) {
	open := renderString(t, LoadMore(catalog.Page{Cursor: 4}, true))
	if !strings.Contains(open, `hx-get="/chronicles/?partial=entries&amp;cursor=4"`) {
		t.Errorf("missing htmx cursor link: %s", open)
	}
	if !strings.Contains(open, `href="/chronicles/?shown=5"`) {
		t.Errorf("missing fallback link: %s", open)
	}
	if !strings.Contains(open, `hx-swap-oob="true"`) {
		t.Errorf("expected out-of-band swap: %s", open)
	}
	if !strings.Contains(open, `hx-sync="this:drop"`) {
		t.Errorf("expected repeated activations to be dropped: %s", open)
	}

	done := renderString(t, LoadMore(catalog.Page{Cursor: 6, Exhausted: true}, false))
	if strings.Contains(done, "loadMoreChroniclesBtn") {
		t.Errorf("exhausted control still has a button: %s", done)
	}
	if strings.Contains(done, "hx-swap-oob") {
		t.Errorf("unexpected oob attribute: %s", done)
	}
}

func TestWisdomToggleLabels(t *testing.T) {
	closed := renderString(t, Wisdom("<p>secret</p>", false))
	if !strings.Contains(closed, "Reveal Hidden Wisdom") || !strings.Contains(closed, "hidden-block collapsed") {
		t.Errorf("unexpected collapsed markup: %s", closed)
	}
	if !strings.Contains(closed, `href="/philosophy/?reveal=1"`) {
		t.Errorf("collapsed toggle should reveal: %s", closed)
	}
	open := renderString(t, Wisdom("<p>secret</p>", true))
	if !strings.Contains(open, "Conceal Hidden Wisdom") || !strings.Contains(open, "hidden-block revealed") {
		t.Errorf("unexpected revealed markup: %s", open)
	}
}

func TestApplicationFormKeepsValuesButNotSecret(t *testing.T) {
	out := renderString(t, ApplicationForm(ContactForm{
		Values:    contact.Application{Codename: "Shadow", SecretCode: "Hunter22", Motivation: "<b>why</b>"},
		Errors:    contact.Errors{contact.FieldEmail: "Encrypted email is crucial for secure comms."},
		Banner:    contact.MsgRejected,
		CSRFToken: "tok",
	}))
	if !strings.Contains(out, `value="Shadow"`) {
		t.Errorf("codename not retained: %s", out)
	}
	if strings.Contains(out, "Hunter22") {
		t.Errorf("secret code echoed back: %s", out)
	}
	if !strings.Contains(out, "&lt;b&gt;why&lt;/b&gt;</textarea>") {
		t.Errorf("motivation not escaped: %s", out)
	}
	if !strings.Contains(out, `<span class="error-message" id="email-error" aria-live="polite">Encrypted email is crucial for secure comms.</span>`) {
		t.Errorf("email error missing: %s", out)
	}
	if !strings.Contains(out, `name="_csrf" value="tok"`) {
		t.Errorf("csrf field missing: %s", out)
	}
}

func TestLayoutMarksCurrentNav(t *testing.T) {
	out := renderString(t, Layout(Shell{
		Site: SiteConfig{Name: "I AM ATOMIC", URL: "http://localhost:3000"},
		Meta: PageMeta{Title: "Chronicles"},
		Nav: []NavLink{
			{Title: "Home", Href: "/"},
			{Title: "Chronicles", Href: "/chronicles/", Current: true},
		},
	}, ChronicleEntry(catalog.Entry{Title: "body"})))

	if !strings.Contains(out, `<title>Chronicles | I AM ATOMIC</title>`) {
		t.Errorf("unexpected title: %s", out)
	}
	if !strings.Contains(out, `class="nav-link current-page" href="/chronicles/"`) {
		t.Errorf("current link not highlighted: %s", out)
	}
	if strings.Contains(out, `class="nav-link current-page" href="/"`) {
		t.Errorf("home link wrongly highlighted: %s", out)
	}
}

func TestChroniclesJsonLD(t *testing.T) {
	out := ChroniclesJsonLD(SiteConfig{URL: "https://example.com"}, []catalog.Entry{{Title: "A"}}, 2)
	if !strings.Contains(out, `"position":3`) || !strings.Contains(out, `"url":"https://example.com/chronicles/"`) {
		t.Fatalf("unexpected json-ld: %s", out)
	}
}

func TestLayoutHead(t *testing.T) {
	out := renderString(t, Layout(Shell{
		Site:      SiteConfig{Name: "I AM ATOMIC", URL: "http://localhost:3000"},
		Meta:      PageMeta{Title: "Arsenal", Description: "Tools of the shadows.", URL: "http://localhost:3000/arsenal/"},
		CSRFToken: "tok",
	}, templ.NopComponent))

	for _, want := range []string{
		`<!doctype html>`,
		`<meta name="description" content="Tools of the shadows.">`,
		`<link rel="canonical" href="http://localhost:3000/arsenal/">`,
		`<meta property="og:type" content="website">`,
		`<script src="` + HTMXSrc + `" defer></script>`,
		`<script type="application/ld+json">{"@context":"https://schema.org"`,
		`hx-headers="{&#34;X-CSRF-Token&#34;: &#34;tok&#34;}"`,
		`<p>I AM ATOMIC &middot; Nobody was here.</p>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in:\n%s", want, out)
		}
	}
}

func TestLayoutOmitsEmptyHeadFields(t *testing.T) {
	out := renderString(t, Layout(Shell{Site: SiteConfig{Name: "I AM ATOMIC"}}, templ.NopComponent))
	if !strings.Contains(out, `<title>I AM ATOMIC</title>`) {
		t.Errorf("unexpected title: %s", out)
	}
	for _, unwanted := range []string{`name="description"`, `rel="canonical"`, `hx-headers`} {
		if strings.Contains(out, unwanted) {
			t.Errorf("unexpected %s in:\n%s", unwanted, out)
		}
	}
}

func TestErrorPages(t *testing.T) {
	s := Shell{Site: SiteConfig{Name: "I AM ATOMIC"}, Meta: PageMeta{Title: "Chronicles"}}
	notFound := renderString(t, NotFound(s))
	if !strings.Contains(notFound, `<title>Not Found | I AM ATOMIC</title>`) || !strings.Contains(notFound, "<h1>404</h1>") {
		t.Errorf("unexpected 404 page: %s", notFound)
	}
	serverError := renderString(t, ServerError(s))
	if !strings.Contains(serverError, `<title>Server Error | I AM ATOMIC</title>`) || !strings.Contains(serverError, "<h1>500</h1>") {
		t.Errorf("unexpected 500 page: %s", serverError)
	}
}

func TestArsenalEscapesTools(t *testing.T) {
	out := renderString(t, Arsenal(Section{Title: "Arsenal", Body: "<p>intro</p>"}, []Tool{
		{Name: "Slime Suit", Description: "Shape & strike"},
	}))
	if !strings.Contains(out, `<div class="prose"><p>intro</p></div>`) {
		t.Errorf("intro body should be rendered as markup: %s", out)
	}
	if !strings.Contains(out, `<li class="arsenal-item"><h3>Slime Suit</h3><p>Shape &amp; strike</p></li>`) {
		t.Errorf("unexpected tool markup: %s", out)
	}
}
