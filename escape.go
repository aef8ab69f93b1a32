package entrykit

import (
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var allowedSchemes = map[string]struct{}{
	"http":   {},
	"https":  {},
	"mailto": {},
}

// HTMLEscaper is the default Escaper.
type HTMLEscaper struct{}

// EscapeText escapes s for use as element content.
func (HTMLEscaper) EscapeText(s string) string {
	return html.EscapeString(s)
}

// EscapeAttribute escapes s for use inside a quoted attribute value.
func (HTMLEscaper) EscapeAttribute(s string) string {
	return html.EscapeString(s)
}

// EscapeURL returns s escaped for an href attribute, or "" when the URL is
// unparseable or uses a scheme other than http, https or mailto.
func (HTMLEscaper) EscapeURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	if u.Scheme != "" {
		if _, ok := allowedSchemes[strings.ToLower(u.Scheme)]; !ok {
			return ""
		}
	}
	return html.EscapeString(u.String())
}

// labelPolicy lets translated labels carry screen-reader spans and nothing else.
func labelPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowAttrs("class").OnElements("span")
	return p
}
