package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "entrykit dev\n", out)
}

func TestNewSeedRender(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "new", "site")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join("site", "entrykit.toml"))

	t.Chdir("site")
	out, err = run(t, "seed", "fixtures.yaml", "-c", "entrykit.toml")
	require.NoError(t, err)
	assert.Equal(t, "seeded 3 entries, 3 in store\n", out)

	out, err = run(t, "render", "welcome", "-c", "entrykit.toml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<article id="post-welcome"`), out)
	assert.Contains(t, out, `<h2 class="entry-title">`)
	assert.Contains(t, out, `<span class="entry-badge">Featured</span>`)

	out, err = run(t, "render", "welcome", "--singular", "--page", "2", "-c", "entrykit.toml")
	require.NoError(t, err)
	assert.Contains(t, out, `<h1 class="entry-title">Welcome to Site</h1>`)
	assert.Contains(t, out, "Long entries can be split into pages.")
}

func TestRenderMissingEntry(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "render", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no entry "nope"`)
}

func TestSeedRequiresFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "seed")
	assert.Error(t, err)
}
