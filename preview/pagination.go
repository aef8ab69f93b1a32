package preview

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/entrykit"
)

// endSize is how many page numbers stay visible at either end of the list.
const endSize = 1

// numberedPagination renders numbered listing navigation for one request.
// The first and last endSize pages are always listed, along with MidSize
// pages either side of the current one; gaps collapse into a single ellipsis.
type numberedPagination struct {
	current int
	total   int
	urlFor  func(page int) string
}

func (p numberedPagination) Render(cfg entrykit.PaginationConfig) (entrykit.Fragment, error) {
	if p.total < 2 {
		return "", nil
	}
	current := min(max(p.current, 1), p.total)

	var links []string
	if current > 1 {
		links = append(links, p.link(current-1, "prev page-numbers", cfg.PrevLabel))
	}
	dots := false
	for n := 1; n <= p.total; n++ {
		switch {
		case n == current:
			links = append(links, `<span aria-current="page" class="page-numbers current">`+strconv.Itoa(n)+`</span>`)
			dots = true
		case n <= endSize || n > p.total-endSize || (n >= current-cfg.MidSize && n <= current+cfg.MidSize):
			links = append(links, p.link(n, "page-numbers", strconv.Itoa(n)))
			dots = true
		case dots:
			links = append(links, `<span class="page-numbers dots">&hellip;</span>`)
			dots = false
		}
	}
	if current < p.total {
		links = append(links, p.link(current+1, "next page-numbers", cfg.NextLabel))
	}

	return entrykit.Fragment(`<nav class="navigation pagination" aria-label="Posts pagination"><div class="nav-links">` +
		strings.Join(links, "\n") + `</div></nav>`), nil
}

func (p numberedPagination) link(n int, class, text string) string {
	return `<a class="` + class + `" href="` + templ.EscapeString(p.urlFor(n)) + `">` + text + `</a>`
}
