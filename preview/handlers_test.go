package preview

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/entrykit"
)

func testRecords() []Record {
	return []Record{
		{
			Slug:         "hello-world",
			Title:        "Hello World",
			PublishedAt:  jan15,
			AuthorID:     "ada@example.com",
			AuthorName:   "Ada Lovelace",
			Categories:   []string{"News"},
			Tags:         []string{"go"},
			CommentCount: 2,
			CommentsOpen: true,
			Thumbnail:    "pic.png",
			Body:         "First page.\n<!--nextpage-->\nSecond page.",
			Participants: []string{"ada@example.com", "bob@example.com"},
		},
		{
			Slug:        "pinned",
			Title:       "Pinned",
			PublishedAt: dec01,
			Sticky:      true,
			Categories:  []string{"News"},
			Body:        "Pinned body.",
		},
		{
			Slug:         "secret",
			Title:        "Secret",
			PublishedAt:  feb01,
			Password:     "hunter2",
			Body:         "Hidden words.",
			Participants: []string{"eve@example.com"},
		},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	uploads := filepath.Join(dir, "uploads")
	writePNG(t, filepath.Join(uploads, "pic.png"), 1000, 500)

	a := New(Config{
		SiteURL:       "http://example.com",
		DatabasePath:  filepath.Join(dir, "entries.db"),
		UploadsDir:    uploads,
		SessionSecret: "test-secret",
		PerPage:       2,
	}, entrykit.Config{}, WithLogger(zerolog.Nop()))
	require.NoError(t, a.Init())
	t.Cleanup(func() { a.Close() })
	require.NoError(t, Seed(a.Store, testRecords()))
	return a
}

func serve(a *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, a *App, target string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := serve(a, req)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return rec, doc
}

func articleIDs(doc *goquery.Document) []string {
	var ids []string
	doc.Find("article").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids = append(ids, id)
	})
	return ids
}

func TestHomeListing(t *testing.T) {
	a := newTestApp(t)

	rec, doc := get(t, a, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"post-pinned", "post-secret"}, articleIDs(doc))

	assert.Equal(t, "Featured", doc.Find("#post-pinned span.entry-badge").Text())
	assert.Equal(t, 1, doc.Find("#post-secret p.post-password-required").Length())
	assert.NotContains(t, rec.Body.String(), "Hidden words.")
	assert.Equal(t, 0, doc.Find("#post-secret .comments-link").Length())

	title, _ := doc.Find("#post-pinned h2.entry-title a").Attr("href")
	assert.Equal(t, "http://example.com/entry/pinned/", title)

	next, _ := doc.Find("nav.pagination a.next").Attr("href")
	assert.Equal(t, "http://example.com/?page=2", next)
	assert.Equal(t, "1", doc.Find("nav.pagination .current").Text())
}

func TestHomeSecondPage(t *testing.T) {
	a := newTestApp(t)

	rec, doc := get(t, a, "/?page=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"post-hello-world"}, articleIDs(doc))

	article := doc.Find("#post-hello-world")
	assert.True(t, article.HasClass("has-post-thumbnail"))
	src, _ := article.Find("figure.post-thumbnail a img").Attr("src")
	assert.Equal(t, "http://example.com/uploads/post-thumbnail/pic.png", src)
	assert.Contains(t, article.Find(".entry-content").Text(), "First page.")
	assert.Equal(t, 1, article.Find(".page-links").Length())

	comments, _ := article.Find(".comments-link a").Attr("href")
	assert.Equal(t, "http://example.com/entry/hello-world/#comments", comments)
	assert.Equal(t, "2 Comments", article.Find(".comments-link a").Text())

	prev, _ := doc.Find("nav.pagination a.prev").Attr("href")
	assert.Equal(t, "http://example.com/", prev)
}

func TestHomePastLastPage(t *testing.T) {
	a := newTestApp(t)

	rec, doc := get(t, a, "/?page=3")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, doc.Find("body").HasClass("error404"))
}

func TestEntrySingular(t *testing.T) {
	a := newTestApp(t)

	rec, doc := get(t, a, "/entry/hello-world/")
	require.Equal(t, http.StatusOK, rec.Code)

	article := doc.Find("article#post-hello-world")
	assert.Equal(t, "Hello World", article.Find("h1.entry-title").Text())
	assert.Equal(t, 0, article.Find(".comments-link").Length())
	src, _ := article.Find("figure.post-thumbnail > img").Attr("src")
	assert.Equal(t, "http://example.com/uploads/full/pic.png", src)

	assert.Equal(t, "Ada Lovelace", article.Find(".author.vcard a.url").Text())
	cat, _ := article.Find(`a[rel="category tag"]`).Attr("href")
	assert.Equal(t, "http://example.com/category/news/", cat)

	assert.Equal(t, 2, doc.Find("#comments ol li").Length())
	assert.Equal(t, 1, doc.Find("#respond").Length())
	assert.Equal(t, 0, doc.Find(".edit-link").Length())

	canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	assert.Equal(t, "http://example.com/entry/hello-world/", canonical)
}

func TestEntrySecondPage(t *testing.T) {
	a := newTestApp(t)

	rec, doc := get(t, a, "/entry/hello-world/?page=2")
	require.Equal(t, http.StatusOK, rec.Code)

	content := doc.Find(".entry-content")
	assert.Contains(t, content.Text(), "Second page.")
	assert.NotContains(t, content.Text(), "First page.")
	assert.Equal(t, "2", content.Find(".page-links .current").Text())
	first, _ := content.Find(".page-links a").Attr("href")
	assert.Equal(t, "http://example.com/entry/hello-world/", first)
}

func TestEntryPasswordProtected(t *testing.T) {
	a := newTestApp(t)

	rec, doc := get(t, a, "/entry/secret/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, doc.Find("p.post-password-required").Length())
	assert.NotContains(t, rec.Body.String(), "Hidden words.")
	assert.Equal(t, 0, doc.Find("#comments").Length())
}

func TestEntryNotFound(t *testing.T) {
	a := newTestApp(t)

	rec, doc := get(t, a, "/entry/nope/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, doc.Find(".error-404").Length())
}

func TestTrailingSlashRedirect(t *testing.T) {
	a := newTestApp(t)

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/entry/hello-world", nil))
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/entry/hello-world/", rec.Header().Get("Location"))
}

func TestCategoryArchive(t *testing.T) {
	a := newTestApp(t)

	rec, doc := get(t, a, "/category/news/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"post-pinned", "post-hello-world"}, articleIDs(doc))
	assert.Equal(t, 0, doc.Find(".entry-badge").Length())
	assert.Equal(t, "news", doc.Find("h1.page-title").Text())

	rec, _ = get(t, a, "/tag/missing/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthorArchive(t *testing.T) {
	a := newTestApp(t)

	rec, doc := get(t, a, "/author/ada-lovelace/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"post-hello-world"}, articleIDs(doc))
	assert.Equal(t, "Ada Lovelace", doc.Find("h1.page-title").Text())
}

// enableEditor posts the editor toggle and returns the cookies of the
// resulting session.
func enableEditor(t *testing.T, a *App) []*http.Cookie {
	t.Helper()
	rec, doc := get(t, a, "/")
	token, ok := doc.Find(`form.editor-toggle input[name="_csrf"]`).Attr("value")
	require.True(t, ok)
	require.NotEmpty(t, token)
	csrfCookies := rec.Result().Cookies()

	form := url.Values{"_csrf": {token}}
	req := httptest.NewRequest(http.MethodPost, "/viewer/editor/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "http://example.com/entry/hello-world/")
	for _, c := range csrfCookies {
		req.AddCookie(c)
	}
	rec = serve(a, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/entry/hello-world/", rec.Header().Get("Location"))
	return append(csrfCookies, rec.Result().Cookies()...)
}

func TestEditorToggleShowsEditLinks(t *testing.T) {
	a := newTestApp(t)
	cookies := enableEditor(t, a)

	_, doc := get(t, a, "/entry/hello-world/", cookies...)
	link := doc.Find(".edit-link a.post-edit-link")
	require.Equal(t, 1, link.Length())
	href, _ := link.Attr("href")
	assert.Equal(t, "http://example.com/entry/hello-world/edit/", href)
	assert.Equal(t, "Edit Hello World", strings.Join(strings.Fields(link.Text()), " "))
	assert.Equal(t, "Editor mode: on", doc.Find("form.editor-toggle button").Text())

	rec, doc := get(t, a, "/entry/hello-world/edit/", cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, doc.Find("pre.entry-source").Text(), "slug: hello-world")
}

func TestEditorToggleRequiresCSRF(t *testing.T) {
	a := newTestApp(t)

	rec := serve(a, httptest.NewRequest(http.MethodPost, "/viewer/editor/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEntrySourceForbiddenWithoutEditor(t *testing.T) {
	a := newTestApp(t)

	rec, _ := get(t, a, "/entry/hello-world/edit/")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUploadVariant(t *testing.T) {
	a := newTestApp(t)

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/uploads/post-thumbnail/pic.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=86400", rec.Header().Get("Cache-Control"))

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/uploads/huge/pic.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/uploads/thumbnail/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSitemap(t *testing.T) {
	a := newTestApp(t)

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<?xml"))
	assert.Contains(t, body, "<loc>http://example.com/</loc>")
	assert.Contains(t, body, "<loc>http://example.com/entry/hello-world/</loc><lastmod>2024-01-15</lastmod>")
	assert.Contains(t, body, "<loc>http://example.com/entry/secret/</loc>")
}

func TestFeed(t *testing.T) {
	a := newTestApp(t)

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/feed.xml", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/rss+xml; charset=utf-8", rec.Header().Get("Content-Type"))

	var links []string
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	doc.Find("item guid").Each(func(_ int, s *goquery.Selection) {
		links = append(links, s.Text())
	})
	assert.Equal(t, []string{
		"http://example.com/entry/secret/",
		"http://example.com/entry/hello-world/",
		"http://example.com/entry/pinned/",
	}, links)

	body := rec.Body.String()
	assert.Contains(t, body, "First page.")
	assert.NotContains(t, body, "Second page.")
	assert.NotContains(t, body, "Hidden words.")
	assert.Contains(t, body, "<pubDate>Mon, 15 Jan 2024 10:00:00 +0000</pubDate>")
}
