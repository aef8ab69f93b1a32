package entrykit

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type fakeThumbnails struct {
	eligible bool
	err      error
}

func (f fakeThumbnails) IsEligible(Entry) bool { return f.eligible }

func (f fakeThumbnails) ImageMarkup(e Entry, size string) (Fragment, error) {
	if f.err != nil {
		return "", f.err
	}
	return Fragment(fmt.Sprintf(`<img src="/img/%s-%s.jpg" alt="" class="size-%s">`, e.ID, size, size)), nil
}

type fakeAvatars struct{}

func (fakeAvatars) ImageMarkup(ref AvatarRef, size int) (Fragment, error) {
	return Fragment(fmt.Sprintf(`<img class="avatar" src="/avatar/%s?s=%d">`, ref, size)), nil
}

type fakeEditLinks struct {
	err error
}

func (f fakeEditLinks) MarkupFor(e Entry, v Viewer, label Fragment) (Fragment, error) {
	if f.err != nil {
		return "", f.err
	}
	if !v.Can("edit_posts") {
		return "", nil
	}
	return Fragment(`<span class="edit-link"><a href="/edit/` + e.ID + `">` + string(label) + `</a></span>`), nil
}

type fakePagination struct {
	got *PaginationConfig
}

func (f fakePagination) Render(cfg PaginationConfig) (Fragment, error) {
	*f.got = cfg
	return Fragment(`<nav class="pagination">` + cfg.PrevLabel + " | " + cfg.NextLabel + `</nav>`), nil
}

type fakePermalinks map[string]string

func (f fakePermalinks) URLFor(id string) (string, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return "", errBoom
}

// mapTranslator ignores the locale.
type mapTranslator map[string]string

func (m mapTranslator) Translate(key, _ string) (string, bool) {
	s, ok := m[key]
	return s, ok
}

func testHosts() Hosts {
	return Hosts{
		Thumbnails: fakeThumbnails{eligible: true},
		Avatars:    fakeAvatars{},
		EditLinks:  fakeEditLinks{},
	}
}

func newTestRenderer(t *testing.T, hosts Hosts, opts ...Option) *Renderer {
	t.Helper()
	r, err := New(Config{}, hosts, opts...)
	require.NoError(t, err)
	return r
}

var published = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func samplePost() Entry {
	return Entry{
		ID:                "42",
		Title:             "Hello World",
		PermalinkURL:      "https://example.com/hello-world/",
		PublishedAt:       published,
		ModifiedAt:        published,
		AuthorID:          "7",
		AuthorDisplayName: "Ada Lovelace",
		AuthorProfileURL:  "https://example.com/author/ada/",
		Categories: []Term{
			{Name: "News", URL: "https://example.com/category/news/"},
			{Name: "Tech", URL: "https://example.com/category/tech/"},
		},
		Tags: []Term{
			{Name: "go", URL: "https://example.com/tag/go/"},
		},
		CommentCount: 0,
		HasThumbnail: true,
	}
}

func listingPost() RenderContext {
	return RenderContext{EntryType: Post, ViewMode: Listing, CommentsOpen: true}
}

func parse(t *testing.T, f Fragment) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(f)))
	require.NoError(t, err)
	return doc
}
