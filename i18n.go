package entrykit

import (
	"fmt"
	"maps"
	"sort"

	"golang.org/x/text/language"
)

// Label keys looked up through the Translator.
const (
	LabelPostedBy      = "posted_by"
	LabelPostedIn      = "posted_in"
	LabelTags          = "tags"
	LabelListSeparator = "list_separator"
	LabelLeaveComment  = "leave_comment"
	LabelOneComment    = "one_comment"
	LabelManyComments  = "many_comments"
	LabelEdit          = "edit"
	LabelFeatured      = "featured"
	LabelPages         = "pages"
	LabelNewerPosts    = "newer_posts"
	LabelOlderPosts    = "older_posts"
)

// DefaultLabels are the English labels every Catalog falls back to.
// Values containing %s or %d are format strings.
var DefaultLabels = map[string]string{
	LabelPostedBy:      "Posted by",
	LabelPostedIn:      "Posted in",
	LabelTags:          "Tags:",
	LabelListSeparator: ", ",
	LabelLeaveComment:  `Leave a comment<span class="sr-only"> on %s</span>`,
	LabelOneComment:    "1 Comment",
	LabelManyComments:  "%d Comments",
	LabelEdit:          `Edit <span class="sr-only">%s</span>`,
	LabelFeatured:      "Featured",
	LabelPages:         "Pages:",
	LabelNewerPosts:    "Newer posts",
	LabelOlderPosts:    "Older posts",
}

// Catalog is the default Translator: label tables keyed by BCP 47 locale,
// matched with golang.org/x/text/language. English is always present and
// is used for keys a locale does not define.
type Catalog struct {
	tags    []language.Tag
	tables  []map[string]string
	matcher language.Matcher
}

// NewCatalog builds a Catalog from locale → key → label tables layered on
// top of DefaultLabels.
func NewCatalog(locales map[string]map[string]string) (*Catalog, error) {
	english := maps.Clone(DefaultLabels)
	c := &Catalog{
		tags:   []language.Tag{language.English},
		tables: []map[string]string{english},
	}

	names := make([]string, 0, len(locales))
	for name := range locales {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tag, err := language.Parse(name)
		if err != nil {
			return nil, &ConfigurationError{Key: "labels." + name, Reason: fmt.Sprintf("invalid locale: %v", err)}
		}
		if tag == language.English {
			maps.Copy(english, locales[name])
			continue
		}
		c.tags = append(c.tags, tag)
		c.tables = append(c.tables, maps.Clone(locales[name]))
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// Translate implements Translator.
func (c *Catalog) Translate(key, locale string) (string, bool) {
	idx := 0
	if locale != "" {
		if tag, err := language.Parse(locale); err == nil {
			_, idx, _ = c.matcher.Match(tag)
		}
	}
	if label, ok := c.tables[idx][key]; ok {
		return label, true
	}
	label, ok := c.tables[0][key]
	return label, ok
}
