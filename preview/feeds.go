package preview

import (
	"cmp"
	"encoding/xml"
	"net/http"
	"slices"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/entrykit"
)

const feedSize = 20

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

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
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description,omitempty"`
	Categories  []string `xml:"category"`
	PubDate     string   `xml:"pubDate"`
	GUID        string   `xml:"guid"`
}

func (a *App) handleSitemap(c echo.Context) error {
	records, err := a.Cache.ListEntries()
	if err != nil {
		return err
	}
	base := a.Config.SiteURL
	urls := []sitemapURL{{Loc: BuildURL(base, "/")}}
	for _, r := range records {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "entry", r.Slug),
			LastMod: r.ModifiedAt.UTC().Format(time.DateOnly),
		})
	}
	return writeXML(c, "application/xml; charset=utf-8", sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}

// handleFeed serves the newest posts as RSS 2.0. Protected posts are listed
// without their body.
func (a *App) handleFeed(c echo.Context) error {
	records, err := a.Cache.ListEntries()
	if err != nil {
		return err
	}
	posts := slices.DeleteFunc(slices.Clone(records), func(r Record) bool {
		return r.Type != "" && r.Type != entrykit.Post
	})
	slices.SortStableFunc(posts, func(x, y Record) int {
		return cmp.Compare(y.PublishedAt.Unix(), x.PublishedAt.Unix())
	})
	posts = posts[:min(len(posts), feedSize)]

	items := make([]rssItem, 0, len(posts))
	for _, r := range posts {
		link := BuildURL(a.Config.SiteURL, "entry", r.Slug)
		item := rssItem{
			Title:      r.Title,
			Link:       link,
			Categories: r.Categories,
			PubDate:    r.PublishedAt.Format(time.RFC1123Z),
			GUID:       link,
		}
		if r.Password == "" {
			body, err := a.body.Body(r.Body, 1, link)
			if err != nil {
				return err
			}
			item.Description = string(body.HTML)
		}
		items = append(items, item)
	}
	return writeXML(c, "application/rss+xml; charset=utf-8", rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.SiteName,
			Link:        BuildURL(a.Config.SiteURL, "/"),
			Description: a.Config.SiteName + " entries",
			Items:       items,
		},
	})
}

func writeXML(c echo.Context, contentType string, v any) error {
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(v)
}
