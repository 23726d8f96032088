package cache

import (
	"context"
	"errors"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/aloks98/tasktracker/store"
)

// Memory is an in-process Users cache backed by bigcache.
type Memory struct {
	cache *bigcache.BigCache
}

// NewMemory creates an in-process cache whose entries are evicted after ttl.
// The cache's janitor stops when ctx ends or Close is called.
func NewMemory(ctx context.Context, ttl time.Duration) (*Memory, error) {
	if ttl <= 0 {
		ttl = time.Minute
	}
	cfg := bigcache.DefaultConfig(ttl)
	cfg.Shards = 64
	cfg.MaxEntriesInWindow = 10_000
	cfg.MaxEntrySize = 256
	cfg.HardMaxCacheSize = 64 // MB
	cfg.Verbose = false
	if ttl < cfg.CleanWindow {
		cfg.CleanWindow = ttl
	}

	c, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Memory{cache: c}, nil
}

// Get returns the cached user or (nil, nil) on a miss.
func (m *Memory) Get(ctx context.Context, username string) (*store.User, error) {
	data, err := m.cache.Get(username)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(data)
}

// Set caches the identity fields of u.
func (m *Memory) Set(ctx context.Context, u *store.User) error {
	data, err := encode(u)
	if err != nil {
		return err
	}
	return m.cache.Set(u.Username, data)
}

// Len returns the number of cached entries.
func (m *Memory) Len() int {
	return m.cache.Len()
}

// Close stops the cache's janitor and releases its memory.
func (m *Memory) Close() error {
	return m.cache.Close()
}

var _ Users = (*Memory)(nil)
