package atomicsite

import (
	"encoding/xml"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/atomicsite/catalog"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

// entryURL points at entry i on the chronicles page. The shown parameter
// makes the no-JS page render far enough for the anchor to exist.
func (a *App) entryURL(i int, e catalog.Entry) string {
	return BuildURL(a.Config.URL, "chronicles") + "?shown=" + strconv.Itoa(i+1) + "#" + e.Anchor()
}

// renderRSS writes the chronicles in catalog order.
func (a *App) renderRSS(c echo.Context, entries []catalog.Entry) error {
	items := make([]rssItem, 0, len(entries))
	for i, e := range entries {
		pubDate := ""
		if t := e.Time(); !t.IsZero() {
			pubDate = t.Format(time.RFC1123Z)
		}
		link := a.entryURL(i, e)
		items = append(items, rssItem{
			Title:       e.Title,
			Link:        link,
			Description: e.Excerpt,
			PubDate:     pubDate,
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name + " Chronicles",
			Link:        BuildURL(a.Config.URL, "chronicles"),
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
