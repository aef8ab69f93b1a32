package entrykit

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"slices"
	"strings"
	"time"
)

// EntryType is the content type of an entry, e.g. "post" or "page".
type EntryType string

const (
	Post       EntryType = "post"
	Page       EntryType = "page"
	Attachment EntryType = "attachment"
)

// ViewMode tells whether an entry is one of many on a page or the page itself.
type ViewMode int

const (
	Listing ViewMode = iota
	Singular
)

func (m ViewMode) String() string {
	if m == Singular {
		return "singular"
	}
	return "listing"
}

// Viewer identifies whoever is looking at the page. The renderer never
// inspects it; it is handed to the EditLinkProvider as-is.
type Viewer struct {
	ID           string
	Capabilities []string
}

// Can reports whether the viewer holds capability.
func (v Viewer) Can(capability string) bool {
	return slices.Contains(v.Capabilities, capability)
}

// RenderContext is the read-only snapshot of what is being rendered.
// Hosts build a fresh one for every entry.
type RenderContext struct {
	EntryType               EntryType
	ViewMode                ViewMode
	IsPaged                 bool
	IsSticky                bool
	IsHome                  bool
	CommentsOpen            bool
	ThreadedCommentsEnabled bool
	PasswordRequired        bool

	Viewer Viewer
	Locale string // overrides Config.Locale when set
}

// Term is a category or tag attached to an entry.
type Term struct {
	Name string
	URL  string
}

// Entry is one content item as supplied by the host.
type Entry struct {
	ID           string
	Title        string
	PermalinkURL string

	PublishedAt time.Time
	ModifiedAt  time.Time

	AuthorID          string
	AuthorDisplayName string
	AuthorProfileURL  string

	Categories []Term
	Tags       []Term

	CommentCount int
	HasThumbnail bool
}

// AvatarRef identifies one discussion participant, either by user ID or by
// the md5 hash of their email address.
type AvatarRef struct {
	UserID    string
	EmailHash string
}

// UserAvatar refers to a registered user.
func UserAvatar(id string) AvatarRef {
	return AvatarRef{UserID: id}
}

// EmailAvatar refers to a participant by email address. Only the hash is kept.
func EmailAvatar(email string) AvatarRef {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return AvatarRef{EmailHash: hex.EncodeToString(sum[:])}
}

// EmailHashAvatar refers to a participant by an already computed email hash.
func EmailHashAvatar(hash string) AvatarRef {
	return AvatarRef{EmailHash: hash}
}

// String returns the user ID if set, the email hash otherwise.
func (a AvatarRef) String() string {
	if a.UserID != "" {
		return a.UserID
	}
	return a.EmailHash
}

// IsZero reports whether the ref identifies nobody.
func (a AvatarRef) IsZero() bool {
	return a.UserID == "" && a.EmailHash == ""
}

// Fragment is a string of well-formed, already escaped HTML with no
// enclosing document structure. It satisfies templ.Component.
type Fragment string

// Render writes the fragment to w.
func (f Fragment) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(f))
	return err
}

func (f Fragment) String() string {
	return string(f)
}

// IsEmpty reports whether the fragment has no content.
func (f Fragment) IsEmpty() bool {
	return f == ""
}

// Body is the entry content produced by the host's content pipeline.
type Body struct {
	HTML Fragment

	// PageLinks holds one URL per page when the content is split across
	// pages. Current is the 1-based page being shown.
	PageLinks []string
	Current   int
}

// IsSplit reports whether the body spans more than one page.
func (b Body) IsSplit() bool {
	return len(b.PageLinks) > 1
}
