package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/entrykit"
)

func TestGravatarAvatars(t *testing.T) {
	ref := entrykit.EmailAvatar("Ada@Example.com ")

	got, err := gravatarAvatars{}.ImageMarkup(ref, 48)
	require.NoError(t, err)
	assert.Contains(t, string(got), `src="https://www.gravatar.com/avatar/`+ref.EmailHash+`?s=48&amp;d=mp"`)
	assert.Contains(t, string(got), `class="avatar avatar-48 photo"`)
	assert.Contains(t, string(got), `width="48"`)

	byUser, err := gravatarAvatars{}.ImageMarkup(entrykit.UserAvatar("ada@example.com"), 48)
	require.NoError(t, err)
	assert.Equal(t, got, byUser)
}

func TestSessionEditLinks(t *testing.T) {
	links := sessionEditLinks{siteURL: "http://example.com"}
	e := entrykit.Entry{ID: "hello-world"}

	got, err := links.MarkupFor(e, entrykit.Viewer{}, "Edit")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())

	editor := entrykit.Viewer{ID: "editor", Capabilities: []string{CapEditPosts}}
	got, err = links.MarkupFor(e, editor, `Edit <span class="sr-only">Hello</span>`)
	require.NoError(t, err)
	assert.Equal(t, entrykit.Fragment(`<span class="edit-link"><a class="post-edit-link" href="http://example.com/entry/hello-world/edit/">Edit <span class="sr-only">Hello</span></a></span>`), got)
}
