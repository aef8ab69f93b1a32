package entrykit

import (
	"context"
	"strings"
)

// EntryMeta renders the header meta line: date, categories, tags, comment
// count and edit link. It never includes the author.
func (r *Renderer) EntryMeta(ctx context.Context, e Entry, rc RenderContext) (Fragment, error) {
	return r.metaVariant(ctx, e, rc, r.PostedOn, r.CategoryList, r.TagList)
}

// EntryFooter renders the footer meta line: author, date, categories, tags,
// comment count and edit link.
func (r *Renderer) EntryFooter(ctx context.Context, e Entry, rc RenderContext) (Fragment, error) {
	return r.metaVariant(ctx, e, rc, r.PostedBy, r.PostedOn, r.CategoryList, r.TagList)
}

// metaVariant runs postOnly for posts, then the blocks every entry type gets.
func (r *Renderer) metaVariant(ctx context.Context, e Entry, rc RenderContext, postOnly ...FragmentFunc) (Fragment, error) {
	var blocks []FragmentFunc
	if rc.EntryType == Post {
		blocks = append(blocks, postOnly...)
	}
	blocks = append(blocks, r.CommentCount, r.EditLink)
	return concat(ctx, e, rc, blocks)
}

func concat(ctx context.Context, e Entry, rc RenderContext, blocks []FragmentFunc) (Fragment, error) {
	var b strings.Builder
	for _, block := range blocks {
		f, err := block(ctx, e, rc)
		if err != nil {
			return "", err
		}
		b.WriteString(string(f))
	}
	return Fragment(b.String()), nil
}

// permalink returns the entry's URL, asking the PermalinkResolver when the
// entry does not carry one. It returns "" when neither is available.
func (r *Renderer) permalink(e Entry) (string, error) {
	if e.PermalinkURL != "" {
		return e.PermalinkURL, nil
	}
	if r.hosts.Permalinks == nil || e.ID == "" {
		return "", nil
	}
	return r.hosts.Permalinks.URLFor(e.ID)
}

// PostedOn renders the publish date, plus the modified date when it differs,
// linked to the permalink.
func (r *Renderer) PostedOn(_ context.Context, e Entry, _ RenderContext) (Fragment, error) {
	if e.PublishedAt.IsZero() {
		return "", nil
	}
	times := r.formatDates(DateDisplayFor(e))
	link, err := r.permalink(e)
	if err != nil {
		return "", err
	}
	href := r.esc.EscapeURL(link)
	if href == "" {
		return Fragment(times), nil
	}
	return Fragment(`<a href="` + href + `" rel="bookmark">` + times + `</a>`), nil
}

// PostedBy renders the author byline.
func (r *Renderer) PostedBy(ctx context.Context, e Entry, rc RenderContext) (Fragment, error) {
	name := strings.TrimSpace(e.AuthorDisplayName)
	if name == "" {
		return "", nil
	}
	label, err := r.textLabel(ctx, r.locale(rc), LabelPostedBy)
	if err != nil {
		return "", err
	}
	author := r.esc.EscapeText(name)
	if href := r.esc.EscapeURL(e.AuthorProfileURL); href != "" {
		author = `<a class="url fn n" href="` + href + `">` + author + `</a>`
	}
	return Fragment(`<span class="sr-only">` + label + `</span><span class="author vcard">` + author + `</span>`), nil
}

// CategoryList renders the entry's categories.
func (r *Renderer) CategoryList(ctx context.Context, e Entry, rc RenderContext) (Fragment, error) {
	return r.termList(ctx, r.locale(rc), LabelPostedIn, "category tag", e.Categories)
}

// TagList renders the entry's tags.
func (r *Renderer) TagList(ctx context.Context, e Entry, rc RenderContext) (Fragment, error) {
	return r.termList(ctx, r.locale(rc), LabelTags, "tag", e.Tags)
}

func (r *Renderer) termList(ctx context.Context, locale, labelKey, rel string, terms []Term) (Fragment, error) {
	links := make([]string, 0, len(terms))
	for _, t := range terms {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			continue
		}
		text := r.esc.EscapeText(name)
		if href := r.esc.EscapeURL(t.URL); href != "" {
			text = `<a href="` + href + `" rel="` + rel + `">` + text + `</a>`
		}
		links = append(links, text)
	}
	if len(links) == 0 {
		return "", nil
	}

	label, err := r.textLabel(ctx, locale, labelKey)
	if err != nil {
		return "", err
	}
	sep, err := r.textLabel(ctx, locale, LabelListSeparator)
	if err != nil {
		return "", err
	}
	return Fragment(`<span class="sr-only">` + label + `</span>` + strings.Join(links, sep)), nil
}

// CommentCount renders the link to an entry's comments. Singular views show
// comments inline, so the link only appears in listings. A count of zero is
// still rendered while comments are open.
func (r *Renderer) CommentCount(ctx context.Context, e Entry, rc RenderContext) (Fragment, error) {
	if rc.ViewMode == Singular || rc.PasswordRequired {
		return "", nil
	}
	if !rc.CommentsOpen && e.CommentCount <= 0 {
		return "", nil
	}

	locale := r.locale(rc)
	var (
		text, anchor string
		err          error
	)
	switch {
	case e.CommentCount <= 0:
		text, err = r.markupLabel(ctx, locale, LabelLeaveComment, r.esc.EscapeText(e.Title))
		anchor = "#respond"
	case e.CommentCount == 1:
		text, err = r.markupLabel(ctx, locale, LabelOneComment, 1)
		anchor = "#comments"
	default:
		text, err = r.markupLabel(ctx, locale, LabelManyComments, e.CommentCount)
		anchor = "#comments"
	}
	if err != nil {
		return "", err
	}

	link, err := r.permalink(e)
	if err != nil {
		return "", err
	}
	href := r.esc.EscapeURL(link + anchor)
	return Fragment(`<span class="comments-link"><a href="` + href + `">` + text + `</a></span>`), nil
}

// EditLink asks the EditLinkProvider for the edit affordance. Whether the
// viewer may edit is entirely the provider's decision.
func (r *Renderer) EditLink(ctx context.Context, e Entry, rc RenderContext) (Fragment, error) {
	if r.hosts.EditLinks == nil {
		return "", nil
	}
	label, err := r.markupLabel(ctx, r.locale(rc), LabelEdit, r.esc.EscapeText(e.Title))
	if err != nil {
		return "", err
	}
	return r.hosts.EditLinks.MarkupFor(e, rc.Viewer, Fragment(label))
}
