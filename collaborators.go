package entrykit

// Escaper makes text safe for embedding in HTML. Implementations must be total.
type Escaper interface {
	EscapeText(s string) string
	EscapeAttribute(s string) string
	EscapeURL(s string) string
}

// Translator looks up a user-visible label. ok is false when the key has no
// translation for locale or any fallback.
type Translator interface {
	Translate(key, locale string) (label string, ok bool)
}

// PermalinkResolver produces the canonical URL of an entry.
type PermalinkResolver interface {
	URLFor(entryID string) (string, error)
}

// ThumbnailProvider knows whether an entry has a usable featured image and
// how to render it at a named size.
type ThumbnailProvider interface {
	IsEligible(e Entry) bool
	ImageMarkup(e Entry, size string) (Fragment, error)
}

// AvatarProvider renders the image for one participant at pixelSize.
type AvatarProvider interface {
	ImageMarkup(ref AvatarRef, pixelSize int) (Fragment, error)
}

// EditLinkProvider renders the edit affordance for an entry. It returns an
// empty fragment when the viewer may not edit; permission checks live here
// and nowhere else.
type EditLinkProvider interface {
	MarkupFor(e Entry, viewer Viewer, label Fragment) (Fragment, error)
}

// PaginationWidget renders paged navigation for a listing.
type PaginationWidget interface {
	Render(cfg PaginationConfig) (Fragment, error)
}

// Hosts bundles the collaborators supplied by the host. Nil providers turn
// off the blocks that depend on them.
type Hosts struct {
	Permalinks PermalinkResolver
	Thumbnails ThumbnailProvider
	Avatars    AvatarProvider
	EditLinks  EditLinkProvider
	Pagination PaginationWidget
}
