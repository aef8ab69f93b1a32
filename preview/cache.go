package preview

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const entriesKey = "entries"

// EntryCache keeps the entry list in memory for a TTL so listing and
// singular pages do not hit SQLite on every request.
type EntryCache struct {
	items *cache.Cache
	store *Store
}

// NewEntryCache creates an EntryCache backed by the given Store.
func NewEntryCache(s *Store, ttl time.Duration) *EntryCache {
	return &EntryCache{items: cache.New(ttl, 2*ttl), store: s}
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *EntryCache) Invalidate() {
	c.items.Flush()
}

// ListEntries returns every entry in listing order.
func (c *EntryCache) ListEntries() ([]Record, error) {
	if v, ok := c.items.Get(entriesKey); ok {
		return v.([]Record), nil
	}
	records, err := c.store.ListEntries(0, 0)
	if err != nil {
		return nil, err
	}
	c.items.SetDefault(entriesKey, records)
	return records, nil
}

// GetEntry returns a single entry by slug from the cache.
func (c *EntryCache) GetEntry(slug string) (Record, error) {
	records, err := c.ListEntries()
	if err != nil {
		return Record{}, err
	}
	for _, r := range records {
		if r.Slug == slug {
			return r, nil
		}
	}
	return Record{}, ErrNotFound
}

// Thumbnail returns the thumbnail file name of the entry with slug, or "".
func (c *EntryCache) Thumbnail(slug string) string {
	r, err := c.GetEntry(slug)
	if err != nil {
		return ""
	}
	return r.Thumbnail
}

// Page returns the records on listing page n (1-based) and the total number
// of pages.
func (c *EntryCache) Page(n, perPage int) ([]Record, int, error) {
	records, err := c.ListEntries()
	if err != nil {
		return nil, 0, err
	}
	page, total := paginate(records, n, perPage)
	return page, total, nil
}

// paginate slices page n out of records. There is always at least one page;
// pages past the end come back empty.
func paginate(records []Record, n, perPage int) ([]Record, int) {
	if perPage <= 0 {
		perPage = len(records)
	}
	total := 1
	if perPage > 0 {
		total = max((len(records)+perPage-1)/perPage, 1)
	}
	start := (n - 1) * perPage
	if n < 1 || start >= len(records) {
		return nil, total
	}
	return records[start:min(start+perPage, len(records))], total
}
