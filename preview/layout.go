package preview

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// PageMeta carries per-page metadata into the document head.
type PageMeta struct {
	Title     string
	URL       string // canonical
	BodyClass string // "home", "single" or "error404"
	Lang      string
}

// layoutData is what every page shell needs besides its content.
type layoutData struct {
	SiteName  string
	Editor    bool
	CSRFToken string
}

// Layout wraps content in the preview page shell.
func Layout(d layoutData, meta PageMeta, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := meta.Lang
		if lang == "" {
			lang = "en"
		}
		title := d.SiteName
		if meta.Title != "" {
			title = meta.Title + " | " + d.SiteName
		}
		toggle := "Editor mode: off"
		if d.Editor {
			toggle = "Editor mode: on"
		}

		if _, err := io.WriteString(w, `<!doctype html><html lang="`+templ.EscapeString(lang)+`"><head>`+
			`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>`+templ.EscapeString(title)+`</title>`); err != nil {
			return err
		}
		if meta.URL != "" {
			if _, err := io.WriteString(w, `<link rel="canonical" href="`+templ.EscapeString(meta.URL)+`">`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</head><body class="`+templ.EscapeString(meta.BodyClass)+`">`+
			`<header class="site-header"><a class="site-title" href="/">`+templ.EscapeString(d.SiteName)+`</a>`+
			`<form class="editor-toggle" method="post" action="/viewer/editor/">`+
			`<input type="hidden" name="_csrf" value="`+templ.EscapeString(d.CSRFToken)+`">`+
			`<button type="submit">`+toggle+`</button></form></header>`+
			`<main id="main" class="site-main">`); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// NotFound is the body of the 404 page.
func NotFound() templ.Component {
	return templ.Raw(`<section class="error-404 not-found"><h1 class="page-title">Nothing here</h1>` +
		`<p>It looks like nothing was found at this location.</p></section>`)
}

// ServerError is the body of the 5xx page.
func ServerError() templ.Component {
	return templ.Raw(`<section class="error-500"><h1 class="page-title">Something went wrong</h1>` +
		`<p>The page could not be rendered. Please try again later.</p></section>`)
}

// passwordNotice replaces the body of a password protected entry.
const passwordNotice = `<p class="post-password-required">This content is password protected.</p>`

// fragments renders each component in order.
func fragments(cmps ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range cmps {
			if c == nil {
				continue
			}
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}
