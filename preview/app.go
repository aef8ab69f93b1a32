// Package preview is a small publishing host built around entrykit. It keeps
// entries in SQLite, renders their markdown bodies with goldmark and plugs
// its own collaborators (thumbnails, Gravatar avatars, session based edit
// links, numbered pagination) into an entrykit.Renderer to serve listing and
// singular pages over Echo.
package preview

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/eringen/entrykit"
)

// App is the preview application. It wires together the store, cache,
// renderer, handlers and middleware.
type App struct {
	Config   Config
	Echo     *echo.Echo
	Store    *Store
	Cache    *EntryCache
	Renderer *entrykit.Renderer
	Logger   zerolog.Logger

	renderCfg    entrykit.Config
	renderOpts   []entrykit.Option
	customRoutes []func(*App)
	thumbs       *fileThumbnails
	body         *bodyRenderer
}

// New creates a preview App. rcfg configures the entry renderer.
func New(cfg Config, rcfg entrykit.Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Logger:    log.Logger,
		renderCfg: rcfg,
		body:      newBodyRenderer(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init opens the app and builds the middleware and routes. Start calls it;
// tests call it directly and drive a.Echo.
func (a *App) Init() error {
	if a.Config.SessionSecret == "" {
		return errors.New("preview: SessionSecret is required")
	}
	if err := a.Open(); err != nil {
		return err
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Open opens the store and builds the renderer, without the HTTP stack.
func (a *App) Open() error {
	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("preview: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewEntryCache(a.Store, a.Config.CacheTTL)

	a.thumbs = newFileThumbnails(a.Config.UploadsDir, a.Config.SiteURL, a.Config.ImageSizes, a.Cache.Thumbnail)
	r, err := entrykit.New(a.renderCfg, a.hosts(), a.renderOpts...)
	if err != nil {
		store.Close()
		return fmt.Errorf("preview: init renderer: %w", err)
	}
	a.Renderer = r
	return nil
}

// Start initializes the app and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	return a.Serve()
}

// Serve listens on Config.Addr until the server is shut down. Init must
// have been called.
func (a *App) Serve() error {
	a.Logger.Info().Str("addr", a.Config.Addr).Msg("preview listening")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// hosts returns the collaborators shared by every request. Pagination is
// added per listing request.
func (a *App) hosts() entrykit.Hosts {
	return entrykit.Hosts{
		Permalinks: cachePermalinks{siteURL: a.Config.SiteURL, cache: a.Cache},
		Thumbnails: a.thumbs,
		Avatars:    gravatarAvatars{},
		EditLinks:  sessionEditLinks{siteURL: a.Config.SiteURL},
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/", a.handleHome)
	e.GET("/entry/:slug/", a.handleEntry)
	e.GET("/entry/:slug/edit/", a.handleEntrySource)
	e.GET("/category/:term/", a.handleArchive(archiveCategory))
	e.GET("/tag/:term/", a.handleArchive(archiveTag))
	e.GET("/author/:term/", a.handleArchive(archiveAuthor))
	e.POST("/viewer/editor/", a.handleEditorToggle)
	e.GET("/uploads/:size/:file", a.handleUpload)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
}

// entryFor converts a stored record to the entry the renderer sees. The
// permalink is left to the PermalinkResolver.
func (a *App) entryFor(r Record) entrykit.Entry {
	e := entrykit.Entry{
		ID:                r.Slug,
		Title:             r.Title,
		PublishedAt:       r.PublishedAt,
		ModifiedAt:        r.ModifiedAt,
		AuthorID:          r.AuthorID,
		AuthorDisplayName: r.AuthorName,
		CommentCount:      r.CommentCount,
		HasThumbnail:      r.Thumbnail != "",
	}
	if s := Slugify(r.AuthorName); s != "" {
		e.AuthorProfileURL = BuildURL(a.Config.SiteURL, "author", s)
	}
	e.Categories = a.terms("category", r.Categories)
	e.Tags = a.terms("tag", r.Tags)
	return e
}

func (a *App) terms(base string, names []string) []entrykit.Term {
	var out []entrykit.Term
	for _, n := range FilterEmpty(names) {
		out = append(out, entrykit.Term{Name: n, URL: BuildURL(a.Config.SiteURL, base, Slugify(n))})
	}
	return out
}

// renderContext describes how r is shown on the current request.
func renderContext(r Record, mode entrykit.ViewMode, viewer entrykit.Viewer, paged, home bool) entrykit.RenderContext {
	typ := r.Type
	if typ == "" {
		typ = entrykit.Post
	}
	return entrykit.RenderContext{
		EntryType:               typ,
		ViewMode:                mode,
		IsPaged:                 paged,
		IsSticky:                r.Sticky,
		IsHome:                  home,
		CommentsOpen:            r.CommentsOpen,
		ThreadedCommentsEnabled: true,
		PasswordRequired:        r.Password != "",
		Viewer:                  viewer,
	}
}

// bodyFor renders page of the record body, or the password notice for
// protected entries.
func (a *App) bodyFor(r Record, page int) (entrykit.Body, error) {
	if r.Password != "" {
		return entrykit.Body{HTML: passwordNotice, Current: 1}, nil
	}
	return a.body.Body(r.Body, page, BuildURL(a.Config.SiteURL, "entry", r.Slug))
}

// RenderEntry composes the stored entry slug as it appears in mode, without
// a viewer. Listing mode renders it as an item of the first home page; page
// selects the page of a split body.
func (a *App) RenderEntry(ctx context.Context, slug string, mode entrykit.ViewMode, page int) (entrykit.Fragment, error) {
	r, err := a.Cache.GetEntry(slug)
	if err != nil {
		return "", fmt.Errorf("preview: entry %q: %w", slug, err)
	}
	body, err := a.bodyFor(r, page)
	if err != nil {
		return "", err
	}
	rc := renderContext(r, mode, entrykit.Viewer{}, body.Current > 1, mode == entrykit.Listing)
	return a.Renderer.ComposeEntry(a.Logger.WithContext(ctx), a.entryFor(r), rc, body)
}
