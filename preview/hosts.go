package preview

import (
	"fmt"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/entrykit"
)

// CapEditPosts is the capability the editor toggle grants.
const CapEditPosts = "edit_posts"

const gravatarBase = "https://www.gravatar.com/avatar/"

// gravatarAvatars renders participant avatars from Gravatar.
type gravatarAvatars struct{}

func (gravatarAvatars) ImageMarkup(ref entrykit.AvatarRef, pixelSize int) (entrykit.Fragment, error) {
	hash := ref.EmailHash
	if hash == "" {
		// Registered users in the preview are identified by email address.
		hash = entrykit.EmailAvatar(ref.UserID).EmailHash
	}
	size := strconv.Itoa(pixelSize)
	src := gravatarBase + hash + "?s=" + size + "&d=mp"
	return entrykit.Fragment(`<img alt="" src="` + templ.EscapeString(src) +
		`" class="avatar avatar-` + size + ` photo" height="` + size + `" width="` + size + `" loading="lazy">`), nil
}

// sessionEditLinks links to the entry source view for viewers that switched
// on the editor toggle.
type sessionEditLinks struct {
	siteURL string
}

func (l sessionEditLinks) MarkupFor(e entrykit.Entry, viewer entrykit.Viewer, label entrykit.Fragment) (entrykit.Fragment, error) {
	if !viewer.Can(CapEditPosts) {
		return "", nil
	}
	href := BuildURL(l.siteURL, "entry", e.ID, "edit")
	return entrykit.Fragment(`<span class="edit-link"><a class="post-edit-link" href="` +
		templ.EscapeString(href) + `">` + string(label) + `</a></span>`), nil
}

// cachePermalinks resolves entry IDs (slugs) against the entry cache.
type cachePermalinks struct {
	siteURL string
	cache   *EntryCache
}

func (p cachePermalinks) URLFor(entryID string) (string, error) {
	if _, err := p.cache.GetEntry(entryID); err != nil {
		return "", fmt.Errorf("preview: permalink for %q: %w", entryID, err)
	}
	return BuildURL(p.siteURL, "entry", entryID), nil
}
