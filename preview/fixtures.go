package preview

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// fixtureFile is the layout of a YAML fixtures document.
type fixtureFile struct {
	Entries []Record `yaml:"entries"`
}

// LoadFixtures decodes entry records from a YAML document of the form
//
//	entries:
//	  - slug: hello-world
//	    title: Hello World
//	    published_at: 2024-01-15T10:00:00Z
//	    body: |
//	      First page.
//	      <!--nextpage-->
//	      Second page.
//
// A record without a slug gets one derived from its title.
func LoadFixtures(r io.Reader) ([]Record, error) {
	var f fixtureFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("preview: decode fixtures: %w", err)
	}
	for i := range f.Entries {
		if f.Entries[i].Slug == "" {
			f.Entries[i].Slug = Slugify(f.Entries[i].Title)
		}
		if f.Entries[i].Slug == "" {
			return nil, fmt.Errorf("preview: fixture %d has neither slug nor title", i+1)
		}
	}
	return f.Entries, nil
}

// Seed saves records into s, replacing entries with the same slug.
func Seed(s *Store, records []Record) error {
	for _, r := range records {
		if err := s.SaveEntry(r); err != nil {
			return fmt.Errorf("preview: seed %q: %w", r.Slug, err)
		}
	}
	return nil
}
