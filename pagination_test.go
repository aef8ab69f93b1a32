package entrykit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostsNavigationDefaults(t *testing.T) {
	var got PaginationConfig
	hosts := testHosts()
	hosts.Pagination = fakePagination{got: &got}
	r := newTestRenderer(t, hosts)

	frag, err := r.PostsNavigation(context.Background(), listingPost())
	require.NoError(t, err)
	assert.Equal(t, PaginationConfig{MidSize: 2, PrevLabel: "Newer posts", NextLabel: "Older posts"}, got)
	assert.Equal(t, `<nav class="pagination">Newer posts | Older posts</nav>`, string(frag))
}

func TestPostsNavigationLocalized(t *testing.T) {
	var got PaginationConfig
	hosts := testHosts()
	hosts.Pagination = fakePagination{got: &got}
	r, err := New(Config{Labels: map[string]map[string]string{
		"fr": {LabelNewerPosts: "Articles plus récents", LabelOlderPosts: "Articles plus anciens"},
	}}, hosts)
	require.NoError(t, err)

	rc := listingPost()
	rc.Locale = "fr-CA"
	_, err = r.PostsNavigation(context.Background(), rc)
	require.NoError(t, err)
	assert.Equal(t, "Articles plus récents", got.PrevLabel)
	assert.Equal(t, "Articles plus anciens", got.NextLabel)
	assert.Equal(t, 2, got.MidSize)
}

func TestPostsNavigationWithoutWidget(t *testing.T) {
	r := newTestRenderer(t, testHosts())
	_, err := r.PostsNavigation(context.Background(), listingPost())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestWithHostsCopiesRenderer(t *testing.T) {
	base := newTestRenderer(t, testHosts())
	var got PaginationConfig
	hosts := base.Hosts()
	hosts.Pagination = fakePagination{got: &got}
	paged := base.WithHosts(hosts)

	_, err := paged.PostsNavigation(context.Background(), listingPost())
	require.NoError(t, err)
	assert.Equal(t, 2, got.MidSize)

	_, err = base.PostsNavigation(context.Background(), listingPost())
	assert.True(t, errors.Is(err, ErrConfiguration))

	// the copy's footer follows its own hosts
	noEdit := base.WithHosts(Hosts{})
	rc := listingPost()
	rc.Viewer = Viewer{Capabilities: []string{"edit_posts"}}
	frag, err := noEdit.ComposeEntry(context.Background(), samplePost(), rc, Body{})
	require.NoError(t, err)
	assert.NotContains(t, string(frag), "edit-link")
	assert.NotContains(t, string(frag), "<figure")
}
