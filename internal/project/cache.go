package project

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/ebayer/folio/internal/config"
	"github.com/ebayer/folio/internal/reference"
)

// Cache is the ephemeral SQLite index over refs.jsonl. It can be deleted
// and rebuilt at any time; refs.jsonl remains the source of truth.
type Cache struct {
	db *sql.DB
}

const cacheSchema = `CREATE TABLE IF NOT EXISTS refs (
  key TEXT PRIMARY KEY,
  position INTEGER NOT NULL,
  title TEXT,
  first_author TEXT,
  year INTEGER,
  container TEXT,
  doi TEXT,
  authors_json TEXT
)`

// OpenCache opens (creating if needed) the reference cache for a
// repository root.
func OpenCache(root string) (*Cache, error) {
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", config.DBPath(root))
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Rebuild repopulates the cache from a collection.
func (c *Cache) Rebuild(coll *reference.Collection) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("starting rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM refs"); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO refs
		(key, position, title, first_author, year, container, doi, authors_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range coll.Entries() {
		authors, err := json.Marshal(e.Authors)
		if err != nil {
			return fmt.Errorf("encoding authors for %s: %w", e.Key, err)
		}
		if _, err := stmt.Exec(e.Key, i+1, e.Title, e.FirstAuthorFamily(), e.Year, e.Container, e.DOI, string(authors)); err != nil {
			return fmt.Errorf("inserting %s: %w", e.Key, err)
		}
	}
	return tx.Commit()
}

// CachedRef is one row of the reference cache.
type CachedRef struct {
	Key         string `json:"key"`
	Position    int    `json:"position"`
	Title       string `json:"title"`
	FirstAuthor string `json:"first_author,omitempty"`
	Year        int    `json:"year"`
	Container   string `json:"container,omitempty"`
	DOI         string `json:"doi,omitempty"`
}

// List returns cached references in insertion order, up to limit
// (0 = all).
func (c *Cache) List(limit int) ([]CachedRef, error) {
	q := "SELECT key, position, title, first_author, year, container, doi FROM refs ORDER BY position"
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}
	return c.query(q)
}

// Search returns cached references whose title, first author, or
// container matches the term, insertion order preserved.
func (c *Cache) Search(term string) ([]CachedRef, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	return c.query(`SELECT key, position, title, first_author, year, container, doi FROM refs
		WHERE lower(title) LIKE ? OR lower(first_author) LIKE ? OR lower(container) LIKE ?
		ORDER BY position`, pattern, pattern, pattern)
}

// Count returns the number of cached references.
func (c *Cache) Count() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM refs").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting refs: %w", err)
	}
	return n, nil
}

func (c *Cache) query(q string, args ...any) ([]CachedRef, error) {
	rows, err := c.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying cache: %w", err)
	}
	defer rows.Close()

	var refs []CachedRef
	for rows.Next() {
		var r CachedRef
		if err := rows.Scan(&r.Key, &r.Position, &r.Title, &r.FirstAuthor, &r.Year, &r.Container, &r.DOI); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}
