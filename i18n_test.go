package entrykit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogTranslate(t *testing.T) {
	c, err := NewCatalog(map[string]map[string]string{
		"de": {LabelFeatured: "Empfohlen"},
		"en": {LabelFeatured: "Pinned"},
	})
	require.NoError(t, err)

	tests := []struct {
		key    string
		locale string
		want   string
		ok     bool
	}{
		{LabelFeatured, "de", "Empfohlen", true},
		{LabelFeatured, "de-AT", "Empfohlen", true},
		{LabelFeatured, "en", "Pinned", true},
		{LabelFeatured, "", "Pinned", true},
		{LabelFeatured, "ja", "Pinned", true},
		{LabelPostedBy, "de", "Posted by", true},
		{LabelFeatured, "not a locale!", "Pinned", true},
		{"unknown", "en", "", false},
	}
	for _, tt := range tests {
		got, ok := c.Translate(tt.key, tt.locale)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Translate(%q, %q) = %q, %v, want %q, %v", tt.key, tt.locale, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCatalogDoesNotMutateDefaults(t *testing.T) {
	_, err := NewCatalog(map[string]map[string]string{"en": {LabelEdit: "Change"}})
	require.NoError(t, err)
	assert.Equal(t, `Edit <span class="sr-only">%s</span>`, DefaultLabels[LabelEdit])
}

func TestCatalogInvalidLocale(t *testing.T) {
	_, err := NewCatalog(map[string]map[string]string{"???": {}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))

	_, err = New(Config{Labels: map[string]map[string]string{"???": {}}}, Hosts{})
	assert.True(t, errors.Is(err, ErrConfiguration))
}
