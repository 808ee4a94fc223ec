package linkcheck

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// CacheEntry is one cached link-check result.
type CacheEntry struct {
	URL       string
	Status    int
	Alive     bool
	Error     string
	CheckedAt time.Time
	RunID     string
}

// SQLiteCache persists link-check results between runs.
type SQLiteCache struct {
	db  *sql.DB
	ttl time.Duration
	mu  sync.RWMutex
}

// NewSQLiteCache opens (and initializes) the cache database. Use ":memory:"
// for an ephemeral cache. Entries older than ttl are treated as stale.
func NewSQLiteCache(dbPath string, ttl time.Duration) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	cache := &SQLiteCache{db: db, ttl: ttl}
	if err := cache.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return cache, nil
}

func (c *SQLiteCache) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS link_results (
		url TEXT PRIMARY KEY,
		status INTEGER NOT NULL,
		alive INTEGER NOT NULL,
		error TEXT,
		checked_at INTEGER NOT NULL,
		run_id TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_checked_at ON link_results(checked_at);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Get returns the cached entry for url, or nil when absent.
func (c *SQLiteCache) Get(ctx context.Context, url string) (*CacheEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	row := c.db.QueryRowContext(ctx,
		"SELECT url, status, alive, error, checked_at, run_id FROM link_results WHERE url = ?", url)

	var entry CacheEntry
	var alive int
	var checkedAt int64
	err := row.Scan(&entry.URL, &entry.Status, &alive, &entry.Error, &checkedAt, &entry.RunID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query link result: %w", err)
	}
	entry.Alive = alive != 0
	entry.CheckedAt = time.Unix(checkedAt, 0)
	return &entry, nil
}

// Put stores or replaces the entry for its URL.
func (c *SQLiteCache) Put(ctx context.Context, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	alive := 0
	if entry.Alive {
		alive = 1
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO link_results (url, status, alive, error, checked_at, run_id)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET
		   status = excluded.status, alive = excluded.alive, error = excluded.error,
		   checked_at = excluded.checked_at, run_id = excluded.run_id`,
		entry.URL, entry.Status, alive, entry.Error, entry.CheckedAt.Unix(), entry.RunID)
	if err != nil {
		return fmt.Errorf("store link result: %w", err)
	}
	return nil
}

// Valid reports whether a cached entry is still fresh. Only successful
// results are reused: a failed check is always retried.
func (c *SQLiteCache) Valid(entry *CacheEntry) bool {
	if entry == nil || !entry.Alive {
		return false
	}
	return time.Since(entry.CheckedAt) < c.ttl
}

// Prune deletes entries older than the TTL.
func (c *SQLiteCache) Prune(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-c.ttl).Unix()
	res, err := c.db.ExecContext(ctx, "DELETE FROM link_results WHERE checked_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune link results: %w", err)
	}
	return res.RowsAffected()
}

// Close releases the database handle.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
