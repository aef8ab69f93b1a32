package entrykit

import "context"

// PaginationConfig is passed to the PaginationWidget.
type PaginationConfig struct {
	MidSize   int    // page numbers shown either side of the current page
	PrevLabel string // escaped
	NextLabel string // escaped
}

const defaultMidSize = 2

// DefaultPaginationConfig returns the listing navigation settings for locale.
func (r *Renderer) DefaultPaginationConfig(ctx context.Context, locale string) (PaginationConfig, error) {
	if locale == "" {
		locale = r.cfg.Locale
	}
	prev, err := r.textLabel(ctx, locale, LabelNewerPosts)
	if err != nil {
		return PaginationConfig{}, err
	}
	next, err := r.textLabel(ctx, locale, LabelOlderPosts)
	if err != nil {
		return PaginationConfig{}, err
	}
	return PaginationConfig{MidSize: defaultMidSize, PrevLabel: prev, NextLabel: next}, nil
}

// PostsNavigation renders the paged navigation below a listing.
func (r *Renderer) PostsNavigation(ctx context.Context, rc RenderContext) (Fragment, error) {
	if r.hosts.Pagination == nil {
		return "", &ConfigurationError{Key: "pagination", Reason: "no pagination widget configured"}
	}
	cfg, err := r.DefaultPaginationConfig(ctx, r.locale(rc))
	if err != nil {
		return "", err
	}
	return r.hosts.Pagination.Render(cfg)
}
