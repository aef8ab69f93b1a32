// Package entrykit renders the metadata and structural HTML fragments of
// entries on a publishing site: titles, thumbnails, authorship, publish and
// modify timestamps, taxonomy, comment counts, edit links, participant
// avatars and pagination.
//
// entrykit only decides what is shown and in what markup shape. Fetching
// content, checking permissions and producing image markup are the host's
// job; the host plugs those in through the collaborator interfaces in Hosts
// and describes each entry with an Entry and a RenderContext.
//
// A Renderer is immutable once built and safe for concurrent use.
package entrykit

import (
	"context"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
)

// FragmentFunc renders one block of an entry.
type FragmentFunc func(ctx context.Context, e Entry, rc RenderContext) (Fragment, error)

// Renderer produces entry fragments from host data.
type Renderer struct {
	cfg    Config
	hosts  Hosts
	esc    Escaper
	tr     Translator
	policy *bluemonday.Policy
	footer FragmentFunc // nil means EntryFooter
}

// New creates a Renderer with the given configuration and collaborators.
func New(cfg Config, hosts Hosts, opts ...Option) (*Renderer, error) {
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	r := &Renderer{
		cfg:    cfg,
		hosts:  hosts,
		esc:    HTMLEscaper{},
		policy: labelPolicy(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.tr == nil {
		catalog, err := NewCatalog(r.cfg.Labels)
		if err != nil {
			return nil, fmt.Errorf("entrykit: build label catalog: %w", err)
		}
		r.tr = catalog
	}
	return r, nil
}

// WithHosts returns a copy of r using hosts. The copy shares configuration
// and labels with r, so it is cheap enough to build per request, e.g. to
// hand a PaginationWidget the current page.
func (r *Renderer) WithHosts(hosts Hosts) *Renderer {
	cp := *r
	cp.hosts = hosts
	return &cp
}

// Hosts returns the collaborators r renders with.
func (r *Renderer) Hosts() Hosts {
	return r.hosts
}

// Config returns the effective configuration, defaults applied.
func (r *Renderer) Config() Config {
	return r.cfg
}

func (r *Renderer) locale(rc RenderContext) string {
	if rc.Locale != "" {
		return rc.Locale
	}
	return r.cfg.Locale
}

// label looks up a raw label, applying the lenient policy on a miss.
func (r *Renderer) label(ctx context.Context, locale, key string) (string, error) {
	if s, ok := r.tr.Translate(key, locale); ok {
		return s, nil
	}
	if r.cfg.LenientLabels {
		zerolog.Ctx(ctx).Warn().Str("key", key).Str("locale", locale).Msg("missing label, using key")
		return key, nil
	}
	return "", &ConfigurationError{Key: key, Reason: "no label for locale " + locale}
}

// textLabel returns a label escaped as plain text.
func (r *Renderer) textLabel(ctx context.Context, locale, key string) (string, error) {
	s, err := r.label(ctx, locale, key)
	if err != nil {
		return "", err
	}
	return r.esc.EscapeText(s), nil
}

// markupLabel returns a label that may carry span markup, sanitized, with
// its %s or %d placeholder replaced by arg. Any other percent sign is
// literal text. arg must already be escaped.
func (r *Renderer) markupLabel(ctx context.Context, locale, key string, arg any) (string, error) {
	s, err := r.label(ctx, locale, key)
	if err != nil {
		return "", err
	}
	s = r.policy.Sanitize(s)
	v := fmt.Sprint(arg)
	return strings.NewReplacer("%s", v, "%d", v).Replace(s), nil
}
