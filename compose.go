package entrykit

import (
	"context"
	"errors"
	"runtime"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("github.com/eringen/entrykit")

// Item is one entry of a listing handed to ComposeEntries.
type Item struct {
	Entry   Entry
	Context RenderContext
	Body    Body
}

// ComposeEntry assembles the complete article fragment for one entry:
// header with optional featured badge and title, thumbnail, body with page
// links when the body is split, and the footer meta.
//
// It fails with a *MissingRequiredFieldError when the entry has no ID, no
// title, or no permalink (neither on the entry nor from the
// PermalinkResolver). Missing optional data only omits the affected block.
func (r *Renderer) ComposeEntry(ctx context.Context, e Entry, rc RenderContext, body Body) (_ Fragment, err error) {
	ctx, span := tracer.Start(ctx, "entrykit.ComposeEntry", trace.WithAttributes(
		attribute.String("entry.id", e.ID),
		attribute.String("entry.type", string(rc.EntryType)),
		attribute.String("entry.view_mode", rc.ViewMode.String()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if strings.TrimSpace(e.ID) == "" {
		return "", &MissingRequiredFieldError{Field: "id"}
	}
	if strings.TrimSpace(e.Title) == "" {
		return "", &MissingRequiredFieldError{EntryID: e.ID, Field: "title"}
	}
	link, err := r.permalink(e)
	if err != nil {
		return "", err
	}
	if link == "" {
		return "", &MissingRequiredFieldError{EntryID: e.ID, Field: "permalink"}
	}
	e.PermalinkURL = link

	locale := r.locale(rc)
	var b strings.Builder

	b.WriteString(`<article id="post-`)
	b.WriteString(r.esc.EscapeAttribute(e.ID))
	b.WriteString(`" class="`)
	b.WriteString(r.esc.EscapeAttribute(postClass(e, rc)))
	b.WriteString(`">`)

	b.WriteString(`<header class="entry-header">`)
	if rc.IsSticky && rc.IsHome && !rc.IsPaged {
		badge, err := r.textLabel(ctx, locale, LabelFeatured)
		if err != nil {
			return "", err
		}
		b.WriteString(`<span class="entry-badge">` + badge + `</span>`)
	}
	title := r.esc.EscapeText(e.Title)
	if rc.ViewMode == Singular {
		b.WriteString(`<h1 class="entry-title">` + title + `</h1>`)
	} else {
		b.WriteString(`<h2 class="entry-title"><a href="` + r.esc.EscapeURL(link) + `" rel="bookmark">` + title + `</a></h2>`)
	}
	b.WriteString(`</header>`)

	thumb, err := r.Thumbnail(ctx, e, rc)
	if err != nil {
		return "", err
	}
	b.WriteString(string(thumb))

	b.WriteString(`<div class="entry-content">`)
	b.WriteString(string(body.HTML))
	pages, err := r.pageLinks(ctx, locale, body)
	if err != nil {
		return "", err
	}
	b.WriteString(pages)
	b.WriteString(`</div>`)

	renderFooter := r.footer
	if renderFooter == nil {
		renderFooter = r.EntryFooter
	}
	footer, err := renderFooter(ctx, e, rc)
	if err != nil {
		return "", err
	}
	b.WriteString(`<footer class="entry-footer">` + string(footer) + `</footer>`)
	b.WriteString(`</article>`)

	return Fragment(b.String()), nil
}

// ComposeEntries renders a listing in parallel. The result has one fragment
// per item in input order; an item that fails leaves an empty fragment and
// its error is joined into the returned error, so the host can substitute a
// fallback for that entry alone.
func (r *Renderer) ComposeEntries(ctx context.Context, items []Item) ([]Fragment, error) {
	out := make([]Fragment, len(items))
	errs := make([]error, len(items))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, it := range items {
		g.Go(func() error {
			out[i], errs[i] = r.ComposeEntry(ctx, it.Entry, it.Context, it.Body)
			return nil
		})
	}
	_ = g.Wait()
	return out, errors.Join(errs...)
}

func postClass(e Entry, rc RenderContext) string {
	classes := []string{"post-" + e.ID}
	if rc.EntryType != "" {
		classes = append(classes, "type-"+string(rc.EntryType))
	}
	if rc.IsSticky {
		classes = append(classes, "sticky")
	}
	if e.HasThumbnail {
		classes = append(classes, "has-post-thumbnail")
	}
	return strings.Join(classes, " ")
}

func (r *Renderer) pageLinks(ctx context.Context, locale string, body Body) (string, error) {
	if !body.IsSplit() {
		return "", nil
	}
	label, err := r.textLabel(ctx, locale, LabelPages)
	if err != nil {
		return "", err
	}
	links := make([]string, 0, len(body.PageLinks))
	for i, u := range body.PageLinks {
		n := strconv.Itoa(i + 1)
		if i+1 == body.Current {
			links = append(links, `<span class="post-page-numbers current" aria-current="page">`+n+`</span>`)
			continue
		}
		links = append(links, `<a href="`+r.esc.EscapeURL(u)+`" class="post-page-numbers">`+n+`</a>`)
	}
	return `<div class="page-links">` + label + " " + strings.Join(links, " ") + `</div>`, nil
}
