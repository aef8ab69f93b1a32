package preview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/eringen/entrykit"
)

// PageBreak separates the pages of a split entry body.
const PageBreak = "<!--nextpage-->"

// bodyRenderer turns markdown entry bodies into entrykit.Body values.
type bodyRenderer struct {
	md goldmark.Markdown
}

func newBodyRenderer() *bodyRenderer {
	return &bodyRenderer{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)}
}

// Body renders page of src. page is clamped to the pages that exist; base
// is the entry URL the page links are built from.
func (b *bodyRenderer) Body(src string, page int, base string) (entrykit.Body, error) {
	pages := SplitPages(src)
	page = min(max(page, 1), len(pages))

	var buf bytes.Buffer
	if err := b.md.Convert([]byte(pages[page-1]), &buf); err != nil {
		return entrykit.Body{}, fmt.Errorf("preview: render body: %w", err)
	}
	body := entrykit.Body{HTML: entrykit.Fragment(buf.String()), Current: page}
	if len(pages) > 1 {
		for n := range pages {
			body.PageLinks = append(body.PageLinks, PageURL(base, n+1))
		}
	}
	return body, nil
}

// SplitPages cuts a body at each PageBreak. It always returns at least one
// page.
func SplitPages(src string) []string {
	parts := strings.Split(src, PageBreak)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
