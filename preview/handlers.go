package preview

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strconv"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"gopkg.in/yaml.v3"

	"github.com/eringen/entrykit"
)

type archiveKind int

const (
	archiveCategory archiveKind = iota
	archiveTag
	archiveAuthor
)

func (k archiveKind) matches(r Record, slug string) bool {
	switch k {
	case archiveCategory:
		return slices.ContainsFunc(r.Categories, func(s string) bool { return Slugify(s) == slug })
	case archiveTag:
		return slices.ContainsFunc(r.Tags, func(s string) bool { return Slugify(s) == slug })
	default:
		return Slugify(r.AuthorName) == slug
	}
}

func (k archiveKind) String() string {
	switch k {
	case archiveCategory:
		return "category"
	case archiveTag:
		return "tag"
	default:
		return "author"
	}
}

// listing is one page of a home or archive listing.
type listing struct {
	records []Record
	page    int
	total   int
	base    string // URL of page 1
	home    bool
	meta    PageMeta
	heading string
}

func (a *App) handleHome(c echo.Context) error {
	page := pageParam(c)
	records, total, err := a.Cache.Page(page, a.Config.PerPage)
	if err != nil {
		return err
	}
	if page > total {
		return echo.ErrNotFound
	}
	base := BuildURL(a.Config.SiteURL, "/")
	return a.renderListing(c, listing{
		records: records,
		page:    page,
		total:   total,
		base:    base,
		home:    true,
		meta:    PageMeta{URL: PageURL(base, page), BodyClass: "home blog"},
	})
}

func (a *App) handleArchive(kind archiveKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("term")
		all, err := a.Cache.ListEntries()
		if err != nil {
			return err
		}
		var matched []Record
		name := slug
		for _, r := range all {
			if kind.matches(r, slug) {
				matched = append(matched, r)
			}
		}
		if len(matched) == 0 {
			return echo.ErrNotFound
		}
		if kind == archiveAuthor {
			name = matched[0].AuthorName
		}

		page := pageParam(c)
		records, total := paginate(matched, page, a.Config.PerPage)
		if page > total {
			return echo.ErrNotFound
		}
		base := BuildURL(a.Config.SiteURL, kind.String(), slug)
		return a.renderListing(c, listing{
			records: records,
			page:    page,
			total:   total,
			base:    base,
			meta:    PageMeta{Title: name, URL: PageURL(base, page), BodyClass: "archive " + kind.String()},
			heading: name,
		})
	}
}

func (a *App) renderListing(c echo.Context, l listing) error {
	ctx := a.Logger.WithContext(c.Request().Context())
	viewer := viewerFrom(c)

	hosts := a.Renderer.Hosts()
	hosts.Pagination = numberedPagination{
		current: l.page,
		total:   l.total,
		urlFor:  func(n int) string { return PageURL(l.base, n) },
	}
	renderer := a.Renderer.WithHosts(hosts)

	items := make([]entrykit.Item, len(l.records))
	for i, r := range l.records {
		body, err := a.bodyFor(r, 1)
		if err != nil {
			return err
		}
		items[i] = entrykit.Item{
			Entry:   a.entryFor(r),
			Context: renderContext(r, entrykit.Listing, viewer, l.page > 1, l.home),
			Body:    body,
		}
	}
	frags, err := renderer.ComposeEntries(ctx, items)
	if err != nil {
		if !onlyMissingFields(err) {
			return err
		}
		a.Logger.Warn().Err(err).Msg("skipping incomplete entries")
	}

	nav, err := renderer.PostsNavigation(ctx, entrykit.RenderContext{IsPaged: l.page > 1, IsHome: l.home})
	if err != nil {
		return err
	}

	var cmps []templ.Component
	if l.heading != "" {
		cmps = append(cmps, templ.Raw(`<header class="page-header"><h1 class="page-title">`+templ.EscapeString(l.heading)+`</h1></header>`))
	}
	for _, f := range frags {
		if !f.IsEmpty() {
			cmps = append(cmps, f)
		}
	}
	if len(l.records) == 0 {
		cmps = append(cmps, templ.Raw(`<p class="no-results">Nothing has been published yet.</p>`))
	}
	cmps = append(cmps, nav)
	return a.renderPage(c, http.StatusOK, l.meta, fragments(cmps...))
}

func (a *App) handleEntry(c echo.Context) error {
	r, err := a.Cache.GetEntry(c.Param("slug"))
	if errors.Is(err, ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	ctx := a.Logger.WithContext(c.Request().Context())

	body, err := a.bodyFor(r, pageParam(c))
	if err != nil {
		return err
	}
	rc := renderContext(r, entrykit.Singular, viewerFrom(c), body.Current > 1, false)
	article, err := a.Renderer.ComposeEntry(ctx, a.entryFor(r), rc, body)
	if err != nil {
		return err
	}
	discussion, err := a.discussion(ctx, r)
	if err != nil {
		return err
	}

	link := BuildURL(a.Config.SiteURL, "entry", r.Slug)
	meta := PageMeta{Title: r.Title, URL: PageURL(link, body.Current), BodyClass: "single single-" + string(rc.EntryType)}
	return a.renderPage(c, http.StatusOK, meta, fragments(article, discussion))
}

// discussion renders the participant avatars and the reply anchor below a
// singular entry.
func (a *App) discussion(ctx context.Context, r Record) (templ.Component, error) {
	if r.Password != "" {
		return nil, nil
	}
	refs := make([]entrykit.AvatarRef, 0, len(r.Participants))
	for _, p := range FilterEmpty(r.Participants) {
		refs = append(refs, entrykit.EmailAvatar(p))
	}
	list, err := a.Renderer.AvatarList(ctx, refs)
	if err != nil {
		return nil, err
	}
	if list.IsEmpty() && !r.CommentsOpen {
		return nil, nil
	}

	html := `<section id="comments" class="comments-area">`
	if !list.IsEmpty() {
		html += `<h2 class="comments-title">Participants</h2>` + string(list)
	}
	if r.CommentsOpen {
		html += `<div id="respond" class="comment-respond"></div>`
	}
	html += `</section>`
	return templ.Raw(html), nil
}

// handleEntrySource shows the stored record as YAML to editors.
func (a *App) handleEntrySource(c echo.Context) error {
	if !IsEditor(c) {
		return echo.ErrForbidden
	}
	r, err := a.Cache.GetEntry(c.Param("slug"))
	if errors.Is(err, ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	src, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	content := templ.Raw(`<h1 class="page-title">` + templ.EscapeString(r.Title) + `</h1>` +
		`<pre class="entry-source"><code>` + templ.EscapeString(string(src)) + `</code></pre>`)
	return a.renderPage(c, http.StatusOK, PageMeta{Title: r.Title, BodyClass: "entry-source"}, content)
}

// handleEditorToggle flips the session's editor capability and returns to
// the page the form was posted from.
func (a *App) handleEditorToggle(c echo.Context) error {
	if err := setEditor(c, !IsEditor(c)); err != nil {
		return err
	}
	target := "/"
	if ref, err := url.Parse(c.Request().Referer()); err == nil && ref.Path != "" {
		target = ref.RequestURI()
	}
	return c.Redirect(http.StatusSeeOther, target)
}

func (a *App) handleUpload(c echo.Context) error {
	path, err := a.thumbs.Variant(c.Param("size"), c.Param("file"))
	if errors.Is(err, ErrUnknownSize) || errors.Is(err, os.ErrNotExist) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return c.File(path)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderPage(c, http.StatusNotFound, PageMeta{Title: "Not found", BodyClass: "error404"}, NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = a.renderPage(c, code, PageMeta{Title: "Error", BodyClass: "error"}, ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// pageParam reads the 1-based page query parameter.
func pageParam(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// onlyMissingFields reports whether every error joined into err is a
// missing required field, i.e. the listing can still be shown without the
// failed entries.
func onlyMissingFields(err error) bool {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			if !errors.Is(e, entrykit.ErrMissingRequiredField) {
				return false
			}
		}
		return true
	}
	return errors.Is(err, entrykit.ErrMissingRequiredField)
}
