package inventory

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Cache is an in-memory read model for one inventory entity. Writes go
// through optimistically: the cached row is updated first, the persistence
// callback runs second, and a failed callback restores the prior row so
// readers never see a write the database refused.
type Cache[T any] struct {
	mu     sync.RWMutex
	rows   map[uint]T
	loader func(ctx context.Context) ([]T, error)
	idOf   func(T) uint
}

// NewCache builds a cache over the given loader. idOf extracts the row id.
func NewCache[T any](loader func(ctx context.Context) ([]T, error), idOf func(T) uint) (*Cache[T], error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if idOf == nil {
		return nil, fmt.Errorf("id extractor is required")
	}
	return &Cache[T]{
		rows:   map[uint]T{},
		loader: loader,
		idOf:   idOf,
	}, nil
}

// Reload refetches every row from the source of truth, replacing the cache
// wholesale. Used at startup and as the recovery path after a failed write
// leaves local state in doubt.
func (c *Cache[T]) Reload(ctx context.Context) error {
	rows, err := c.loader(ctx)
	if err != nil {
		return fmt.Errorf("reloading cache: %w", err)
	}

	fresh := make(map[uint]T, len(rows))
	for _, row := range rows {
		fresh[c.idOf(row)] = row
	}

	c.mu.Lock()
	c.rows = fresh
	c.mu.Unlock()
	return nil
}

// Get returns the cached row by id.
func (c *Cache[T]) Get(id uint) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	row, ok := c.rows[id]
	return row, ok
}

// List returns all cached rows ordered by id.
func (c *Cache[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]uint, 0, len(c.rows))
	for id := range c.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.rows[id])
	}
	return out
}

// Put stores a row, replacing any previous version.
func (c *Cache[T]) Put(row T) {
	c.mu.Lock()
	c.rows[c.idOf(row)] = row
	c.mu.Unlock()
}

// Remove drops a row from the cache.
func (c *Cache[T]) Remove(id uint) {
	c.mu.Lock()
	delete(c.rows, id)
	c.mu.Unlock()
}

// Len reports the number of cached rows.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rows)
}

// UpdateWithRollback applies the optimistic row, runs commit, and restores
// the previous row when commit fails. The committed row (which may carry
// server-assigned fields) replaces the optimistic one on success.
func (c *Cache[T]) UpdateWithRollback(ctx context.Context, optimistic T, commit func(ctx context.Context) (T, error)) (T, error) {
	id := c.idOf(optimistic)

	c.mu.Lock()
	prev, had := c.rows[id]
	c.rows[id] = optimistic
	c.mu.Unlock()

	committed, err := commit(ctx)
	if err != nil {
		c.mu.Lock()
		if had {
			c.rows[id] = prev
		} else {
			delete(c.rows, id)
		}
		c.mu.Unlock()
		var zero T
		return zero, err
	}

	c.Put(committed)
	return committed, nil
}

// DeleteWithRollback removes the row optimistically and restores it when
// commit fails.
func (c *Cache[T]) DeleteWithRollback(ctx context.Context, id uint, commit func(ctx context.Context) error) error {
	c.mu.Lock()
	prev, had := c.rows[id]
	delete(c.rows, id)
	c.mu.Unlock()

	if err := commit(ctx); err != nil {
		if had {
			c.mu.Lock()
			c.rows[id] = prev
			c.mu.Unlock()
		}
		return err
	}
	return nil
}
