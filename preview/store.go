package preview

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eringen/entrykit"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested entry does not exist.
var ErrNotFound = sql.ErrNoRows

// Store wraps a SQLite database holding the entries the preview renders.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the cache reload while a seed is writing; writers wait on
	// busy_timeout instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS entries (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    entry_type TEXT NOT NULL DEFAULT 'post',
    published_at TEXT NOT NULL,
    modified_at TEXT NOT NULL,
    author_id TEXT NOT NULL DEFAULT '',
    author_name TEXT NOT NULL DEFAULT '',
    categories TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '',
    comment_count INTEGER NOT NULL DEFAULT 0,
    comments_open INTEGER NOT NULL DEFAULT 1,
    sticky INTEGER NOT NULL DEFAULT 0,
    password TEXT NOT NULL DEFAULT '',
    thumbnail TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL DEFAULT '',
    participants TEXT NOT NULL DEFAULT ''
);
`)
	return err
}

const entryColumns = `slug, title, entry_type, published_at, modified_at, author_id, author_name,
	categories, tags, comment_count, comments_open, sticky, password, thumbnail, body, participants`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		r                              Record
		typ, published, modified       string
		categories, tags, participants string
		commentsOpen, sticky           int
	)
	err := row.Scan(&r.Slug, &r.Title, &typ, &published, &modified, &r.AuthorID, &r.AuthorName,
		&categories, &tags, &r.CommentCount, &commentsOpen, &sticky, &r.Password, &r.Thumbnail, &r.Body, &participants)
	if err != nil {
		return Record{}, err
	}
	r.Type = entrykit.EntryType(typ)
	if r.PublishedAt, err = time.Parse(time.RFC3339, published); err != nil {
		return Record{}, err
	}
	if r.ModifiedAt, err = time.Parse(time.RFC3339, modified); err != nil {
		return Record{}, err
	}
	r.Categories = ParseList(categories)
	r.Tags = ParseList(tags)
	r.Participants = ParseList(participants)
	r.CommentsOpen = commentsOpen == 1
	r.Sticky = sticky == 1
	return r, nil
}

// ListEntries returns up to limit entries starting at offset, sticky
// entries first, then by publish date descending. A limit of zero or less
// returns everything from offset on.
func (s *Store) ListEntries(offset, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(`SELECT `+entryColumns+` FROM entries
		ORDER BY sticky DESC, published_at DESC, slug LIMIT ? OFFSET ?`, limit, max(offset, 0))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountEntries returns the number of stored entries.
func (s *Store) CountEntries() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n)
	return n, err
}

// GetEntry returns a single entry by slug.
func (s *Store) GetEntry(slug string) (Record, error) {
	return scanRecord(s.db.QueryRow(`SELECT `+entryColumns+` FROM entries WHERE slug = ?`, slug))
}

// SaveEntry upserts an entry. A zero ModifiedAt is stored as PublishedAt.
func (s *Store) SaveEntry(r Record) error {
	if strings.TrimSpace(r.Slug) == "" {
		return errors.New("preview: entry slug is required")
	}
	if r.Type == "" {
		r.Type = entrykit.Post
	}
	if r.ModifiedAt.IsZero() {
		r.ModifiedAt = r.PublishedAt
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Slug, r.Title, string(r.Type),
		r.PublishedAt.UTC().Format(time.RFC3339), r.ModifiedAt.UTC().Format(time.RFC3339),
		r.AuthorID, r.AuthorName,
		FormatList(r.Categories), FormatList(r.Tags),
		r.CommentCount, boolInt(r.CommentsOpen), boolInt(r.Sticky),
		r.Password, r.Thumbnail, r.Body, FormatList(r.Participants))
	return err
}

// DeleteEntry removes an entry by slug.
func (s *Store) DeleteEntry(slug string) error {
	_, err := s.db.Exec(`DELETE FROM entries WHERE slug = ?`, slug)
	return err
}

// FormatList encodes a list as ",a,b," so single items can be matched with instr.
func FormatList(items []string) string {
	items = FilterEmpty(items)
	if len(items) == 0 {
		return ""
	}
	return "," + strings.Join(items, ",") + ","
}

// ParseList splits a list encoded by FormatList (e.g. ",go,web,") into a slice.
func ParseList(s string) []string {
	s = strings.Trim(s, ",")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
