// Package source provides the tabular data sources the leaderboard reads
// activity rows from, plus a TTL snapshot cache in front of them.
package source

import (
	"context"
	"sync"
	"time"

	"example.com/leaderboard/internal/domain"
	"example.com/leaderboard/internal/observability"
)

// Reader fetches every row from an upstream table.
type Reader interface {
	Read(ctx context.Context) ([]domain.Row, error)
}

// Cache serves one snapshot of rows until the TTL expires or Invalidate is
// called, so that views rendered together agree. Failed reads are not cached.
type Cache struct {
	reader Reader
	ttl    time.Duration
	now    func() time.Time

	mu        sync.Mutex
	rows      []domain.Row
	fetchedAt time.Time
	valid     bool
}

// NewCache wraps reader with a snapshot cache.
func NewCache(reader Reader, ttl time.Duration) *Cache {
	return &Cache{reader: reader, ttl: ttl, now: time.Now}
}

// Read returns the cached rows or fetches a new snapshot.
func (c *Cache) Read(ctx context.Context) ([]domain.Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && (c.ttl <= 0 || c.now().Sub(c.fetchedAt) < c.ttl) {
		observability.RecordCacheHit()
		return c.rows, nil
	}

	observability.RecordCacheMiss()
	rows, err := c.reader.Read(ctx)
	if err != nil {
		c.valid = false
		c.rows = nil
		return nil, err
	}
	c.rows = rows
	c.fetchedAt = c.now()
	c.valid = true
	return rows, nil
}

// Invalidate drops the cached snapshot; the next Read goes to the source.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.rows = nil
}

// FetchedAt reports when the cached snapshot was read, and whether one is held.
func (c *Cache) FetchedAt() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchedAt, c.valid
}
