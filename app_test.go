package atomicsite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/eringen/atomicsite/catalog"
	"github.com/eringen/atomicsite/contact"
)

func newTestApp(t *testing.T, cfg SiteConfig, opts ...Option) *App {
	t.Helper()
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "test-secret"
	}
	a := New(cfg, opts...)
	if err := a.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func serve(a *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func get(a *App, target string, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return serve(a, req)
}

// csrfSession fetches the contact page and returns the CSRF cookie and token.
func csrfSession(t *testing.T, a *App) (*http.Cookie, string) {
	t.Helper()
	rec := get(a, "/contact/", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /contact/ = %d", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "_csrf" {
			return c, c.Value
		}
	}
	t.Fatal("no _csrf cookie issued")
	return nil, ""
}

func postForm(a *App, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return serve(a, req)
}

func validApplication(token string) url.Values {
	return url.Values{
		"_csrf":                 {token},
		contact.FieldCodename:   {"Shadow"},
		contact.FieldEmail:      {"agent@shadow.garden"},
		contact.FieldSecretCode: {"Atomic2024"},
		contact.FieldMotivation: {strings.Repeat("I wish to act from the shadows. ", 3)},
	}
}

func TestInitRequiresSessionSecret(t *testing.T) {
	if err := New(SiteConfig{}).Init(); err == nil {
		t.Fatal("expected error without SessionSecret")
	}
}

func TestChroniclesFirstPage(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := get(a, "/chronicles/", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, title := range []string{"The Sanctuary Incident", "Bandit Kingdom Purge"} {
		if !strings.Contains(body, title) {
			t.Errorf("first page missing %q", title)
		}
	}
	if strings.Contains(body, "The Cult of Diabolos Uncovered") {
		t.Error("first page rendered past the page size")
	}
	if !strings.Contains(body, `cursor=2"`) {
		t.Error("load more control should carry cursor 2")
	}
	if !strings.Contains(body, `"@type":"ItemList"`) {
		t.Error("expected chronicles structured data")
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", got)
	}
}

func TestChroniclesFragmentAppendsNextPage(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := get(a, "/chronicles/?partial=entries&cursor=2", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<html") {
		t.Fatal("fragment should not include the layout")
	}
	if strings.Contains(body, "Bandit Kingdom Purge") {
		t.Error("fragment repeated an earlier entry")
	}
	if !strings.Contains(body, "The Cult of Diabolos Uncovered") || !strings.Contains(body, "Academy Arc Climax") {
		t.Errorf("fragment missing next page: %s", body)
	}
	if !strings.Contains(body, `hx-swap-oob="true"`) || !strings.Contains(body, "cursor=4") {
		t.Errorf("fragment should replace the control with cursor 4: %s", body)
	}
}

func TestChroniclesFragmentRemovesControlWhenExhausted(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	body := get(a, "/chronicles/?partial=entries&cursor=4", true).Body.String()
	if !strings.Contains(body, "Financial Underworld Collapse") {
		t.Errorf("last page missing: %s", body)
	}
	if strings.Contains(body, "loadMoreChroniclesBtn") {
		t.Error("button should be gone once the catalog is exhausted")
	}

	past := get(a, "/chronicles/?partial=entries&cursor=99", true).Body.String()
	if strings.Contains(past, "chronicle-entry") || strings.Contains(past, "loadMoreChroniclesBtn") {
		t.Errorf("cursor past the end should render nothing: %s", past)
	}
}

func TestChroniclesRejectsBadCursor(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	if rec := get(a, "/chronicles/?partial=entries&cursor=abc", true); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestChroniclesShownFallback(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	body := get(a, "/chronicles/?shown=3", false).Body.String()
	if n := strings.Count(body, `class="chronicle-entry"`); n != 4 {
		t.Fatalf("rendered %d entries, want 4", n)
	}
	if !strings.Contains(body, `href="/chronicles/?shown=5"`) {
		t.Error("fallback link should ask for the following page")
	}

	all := get(a, "/chronicles/?shown=100", false).Body.String()
	if n := strings.Count(all, `class="chronicle-entry"`); n != 6 {
		t.Fatalf("rendered %d entries, want 6", n)
	}
	if strings.Contains(all, "loadMoreChroniclesBtn") {
		t.Error("exhausted page should not offer more")
	}
}

func TestChroniclesPageSizeFromConfig(t *testing.T) {
	a := newTestApp(t, SiteConfig{ChroniclesPageSize: 5})
	body := get(a, "/chronicles/", false).Body.String()
	if n := strings.Count(body, `class="chronicle-entry"`); n != 5 {
		t.Fatalf("rendered %d entries, want 5", n)
	}
}

func TestChroniclesAPI(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := get(a, "/api/chronicles?cursor=4&limit=5", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got chroniclesPage
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Entries) != 2 || got.Rendered != 2 || got.Cursor != 6 || !got.Exhausted {
		t.Fatalf("got %+v", got)
	}
	if got.Entries[1].Title != "Financial Underworld Collapse" {
		t.Errorf("last entry = %q", got.Entries[1].Title)
	}

	if rec := get(a, "/api/chronicles?limit=0", false); rec.Code != http.StatusBadRequest {
		t.Errorf("limit=0 status = %d, want 400", rec.Code)
	}

	rec = get(a, "/api/chronicles?cursor=2&limit=9223372036854775807", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("max limit status = %d", rec.Code)
	}
	got = chroniclesPage{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Entries) != 4 || got.Rendered != 4 || got.Cursor != 6 || !got.Exhausted {
		t.Fatalf("max limit: got %+v", got)
	}
}

func TestWithCatalogOverridesContent(t *testing.T) {
	cat := catalog.New([]catalog.Entry{
		{Date: "2025-01-01", Title: "Only", Excerpt: "One entry."},
	})
	a := newTestApp(t, SiteConfig{}, WithCatalog(cat))
	body := get(a, "/chronicles/", false).Body.String()
	if !strings.Contains(body, "Only") || strings.Contains(body, "loadMoreChroniclesBtn") {
		t.Fatalf("unexpected page: %s", body)
	}
}

func TestInitLoadsCatalogFromStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atomic.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	entries := []catalog.Entry{
		{Date: "2025-01-01", Title: "First", Excerpt: "a"},
		{Date: "2025-02-01", Title: "Second", Excerpt: "b"},
		{Date: "2025-03-01", Title: "Third", Excerpt: "c"},
	}
	if err := s.ReplaceEntries(entries); err != nil {
		t.Fatalf("ReplaceEntries: %v", err)
	}
	s.Close()

	a := newTestApp(t, SiteConfig{DatabasePath: path})
	if a.Catalog().Len() != 3 {
		t.Fatalf("catalog has %d entries, want 3", a.Catalog().Len())
	}
	body := get(a, "/chronicles/?partial=entries&cursor=2", true).Body.String()
	if !strings.Contains(body, "Third") || strings.Contains(body, "loadMoreChroniclesBtn") {
		t.Fatalf("unexpected fragment: %s", body)
	}
}

func TestHomeShowsSecondInsight(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	body := get(a, "/", false).Body.String()
	if !strings.Contains(body, a.Site.Insights[1]) {
		t.Fatalf("home should open on the second insight: %s", body)
	}
	if !strings.Contains(body, `class="nav-link current-page"`) {
		t.Error("home link should be marked current")
	}

	wrapped := get(a, "/?insight=3", false).Body.String()
	if !strings.Contains(wrapped, a.Site.Insights[0]) {
		t.Error("insight rotation should wrap to the first entry")
	}
}

func TestInsightFragment(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := get(a, "/insight/?i=1", true)
	body := rec.Body.String()
	if rec.Code != http.StatusOK || strings.Contains(body, "<html") {
		t.Fatalf("expected bare fragment, got %d: %s", rec.Code, body)
	}
	if !strings.Contains(body, a.Site.Insights[2]) || !strings.Contains(body, `/insight/?i=2`) {
		t.Fatalf("unexpected fragment: %s", body)
	}

	plain := get(a, "/insight/?i=1", false)
	if plain.Code != http.StatusSeeOther || plain.Header().Get("Location") != "/?insight=1" {
		t.Fatalf("non-htmx request = %d %q", plain.Code, plain.Header().Get("Location"))
	}
}

func TestPhilosophyWisdomToggle(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	page := get(a, "/philosophy/", false).Body.String()
	if !strings.Contains(page, "hidden-block collapsed") || !strings.Contains(page, "Reveal Hidden Wisdom") {
		t.Fatalf("wisdom should start collapsed: %s", page)
	}

	frag := get(a, "/philosophy/?reveal=1&partial=wisdom", true).Body.String()
	if strings.Contains(frag, "<html") {
		t.Fatal("partial should not include the layout")
	}
	if !strings.Contains(frag, "hidden-block revealed") || !strings.Contains(frag, "Conceal Hidden Wisdom") {
		t.Fatalf("unexpected partial: %s", frag)
	}
}

func TestArsenal(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	body := get(a, "/arsenal/", false).Body.String()
	if n := strings.Count(body, `class="arsenal-item"`); n != len(a.Site.Arsenal) {
		t.Fatalf("rendered %d tools, want %d", n, len(a.Site.Arsenal))
	}
}

func TestContactPageIsUncached(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := get(a, "/contact/", false)
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
	if !strings.Contains(rec.Body.String(), `name="_csrf"`) {
		t.Error("form should carry a CSRF field")
	}
}

func TestContactValidateField(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	cookie, token := csrfSession(t, a)

	form := url.Values{"_csrf": {token}, contact.FieldCodename: {"ab"}}
	rec := postForm(a, "/contact/validate/codename/", form, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `id="codename-error"`) || !strings.Contains(body, "at least 3 characters") {
		t.Fatalf("unexpected fragment: %s", body)
	}

	form.Set(contact.FieldCodename, "abc")
	ok := postForm(a, "/contact/validate/codename/", form, cookie).Body.String()
	if strings.Contains(ok, "at least") {
		t.Fatalf("valid value should clear the message: %s", ok)
	}

	if rec := postForm(a, "/contact/validate/rank/", form, cookie); rec.Code != http.StatusNotFound {
		t.Errorf("unknown field status = %d, want 404", rec.Code)
	}
}

func TestContactSubmitRequiresCSRF(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := postForm(a, "/contact/", validApplication(""))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestContactSubmitRejectsInvalid(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	cookie, token := csrfSession(t, a)

	form := validApplication(token)
	form.Set(contact.FieldCodename, "ab")
	form.Set(contact.FieldSecretCode, "weakcode")
	rec := postForm(a, "/contact/", form, cookie)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, contact.MsgRejected) {
		t.Error("missing rejection banner")
	}
	if !strings.Contains(body, "Codename must be at least 3 characters.") {
		t.Error("missing codename error")
	}
	if strings.Contains(body, "weakcode") {
		t.Error("secret code was echoed back")
	}
	if !strings.Contains(body, `value="agent@shadow.garden"`) {
		t.Error("valid fields should keep their values")
	}
}

func TestContactSubmitFlashesAfterRedirect(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	cookie, token := csrfSession(t, a)

	rec := postForm(a, "/contact/", validApplication(token), cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/contact/" {
		t.Fatalf("submit = %d %q", rec.Code, rec.Header().Get("Location"))
	}

	req := httptest.NewRequest(http.MethodGet, "/contact/", nil)
	req.AddCookie(cookie)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	body := serve(a, req).Body.String()
	if !strings.Contains(body, contact.MsgSubmitted) {
		t.Fatalf("flash missing after redirect: %s", body)
	}
	m := referencePattern.FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("application reference missing: %s", body)
	}
	if _, err := uuid.Parse(m[1]); err != nil {
		t.Errorf("reference %q is not a uuid: %v", m[1], err)
	}
}

var referencePattern = regexp.MustCompile(`Your application reference is ([0-9a-f-]{36})\.`)

func TestContactSubmitRejectsUnreadableBody(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	cookie, token := csrfSession(t, a)

	req := httptest.NewRequest(http.MethodPost, "/contact/", strings.NewReader("codename=Shadow"))
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-CSRF-Token", token)
	req.AddCookie(cookie)
	if rec := serve(a, req); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestContactSubmitRateLimited(t *testing.T) {
	a := newTestApp(t, SiteConfig{ApplicationLimit: 1})
	cookie, token := csrfSession(t, a)

	if rec := postForm(a, "/contact/", validApplication(token), cookie); rec.Code != http.StatusSeeOther {
		t.Fatalf("first submit = %d", rec.Code)
	}
	if rec := postForm(a, "/contact/", validApplication(token), cookie); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second submit = %d, want 429", rec.Code)
	}
}

func TestFeed(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := get(a, "/feed.xml", false)
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/rss+xml") {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
	body := rec.Body.String()
	if n := strings.Count(body, "<item>"); n != 6 {
		t.Fatalf("feed has %d items, want 6", n)
	}
	if !strings.Contains(body, "http://localhost:3000/chronicles/?shown=1#chronicle-the-sanctuary-incident") {
		t.Errorf("first item link missing: %s", body)
	}
	first := strings.Index(body, "The Sanctuary Incident")
	last := strings.Index(body, "Financial Underworld Collapse")
	if first < 0 || last < first {
		t.Error("feed should follow catalog order")
	}
}

func TestSitemapAndRobots(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	sitemap := get(a, "/sitemap.xml", false).Body.String()
	for _, want := range []string{
		"<loc>http://localhost:3000</loc>",
		"<loc>http://localhost:3000/chronicles/</loc>",
		"<lastmod>2024-06-15</lastmod>",
	} {
		if !strings.Contains(sitemap, want) {
			t.Errorf("sitemap missing %s", want)
		}
	}

	robots := get(a, "/robots.txt", false).Body.String()
	if !strings.Contains(robots, "Sitemap: http://localhost:3000/sitemap.xml") {
		t.Errorf("unexpected robots.txt: %s", robots)
	}
}

func TestStaticAssets(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := get(a, "/public/site.css", false)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), ".chronicle-entry") {
		t.Fatalf("stylesheet not served: %d", rec.Code)
	}
}

func TestNotFoundPage(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := get(a, "/nowhere/", false)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "never here") {
		t.Error("expected themed 404 page")
	}
}

func TestCustomRoutes(t *testing.T) {
	a := newTestApp(t, SiteConfig{}, WithCustomRoutes(func(a *App) {
		a.Echo.GET("/healthz/", func(c echo.Context) error {
			return c.String(http.StatusOK, "ok")
		})
	}))
	if rec := get(a, "/healthz/", false); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
