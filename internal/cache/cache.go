// Package cache implements the catalog read-through cache: a bounded
// in-process LRU whose entries expire lazily after a fixed TTL, with an
// optional shared Redis tier behind it.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gametracker/internal/metrics"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTTL          = 24 * time.Hour
	DefaultMaxEntries   = 10000
	DefaultFetchTimeout = 15 * time.Second
)

// Entry is a cached payload and the instant it was stored.
type Entry[V any] struct {
	Payload  V         `json:"payload"`
	StoredAt time.Time `json:"stored_at"`
}

func (e Entry[V]) fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.StoredAt) < ttl
}

// Remote is a shared second tier. A miss is reported as (nil, false, nil).
type Remote interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type Config struct {
	// Name labels metrics and namespaces remote keys.
	Name       string
	TTL        time.Duration
	MaxEntries int
	// FetchTimeout bounds a shared fetch, which outlives any single caller.
	FetchTimeout time.Duration
	Remote       Remote
	Now          func() time.Time
}

// Cache is safe for concurrent use. Stale entries are never served but are
// left in place until overwritten or evicted by the LRU bound.
type Cache[K comparable, V any] struct {
	name         string
	ttl          time.Duration
	fetchTimeout time.Duration
	now          func() time.Time
	local        *lru.Cache[K, Entry[V]]
	remote       Remote
	group        singleflight.Group
}

func New[K comparable, V any](cfg Config) (*Cache[K, V], error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	local, err := lru.New[K, Entry[V]](cfg.MaxEntries)
	if err != nil {
		return nil, fmt.Errorf("create %s cache: %w", cfg.Name, err)
	}
	return &Cache[K, V]{
		name:         cfg.Name,
		ttl:          cfg.TTL,
		fetchTimeout: cfg.FetchTimeout,
		now:          cfg.Now,
		local:        local,
		remote:       cfg.Remote,
	}, nil
}

// GetOrFetch returns the fresh cached value for key or calls fetch and
// stores its result. Failed fetches store nothing. Concurrent misses for the
// same key share a single fetch. The shared fetch runs detached from any
// one caller's cancellation; each caller still returns on its own ctx.
func (c *Cache[K, V]) GetOrFetch(ctx context.Context, key K, fetch func(context.Context) (V, error)) (V, error) {
	result := metrics.CacheMiss
	if e, ok := c.local.Get(key); ok {
		if e.fresh(c.now(), c.ttl) {
			metrics.RecordCacheLookup(c.name, metrics.CacheHit)
			return e.Payload, nil
		}
		result = metrics.CacheStale
	}

	if v, ok := c.fromRemote(ctx, key); ok {
		metrics.RecordCacheLookup(c.name, metrics.CacheRemoteHit)
		return v, nil
	}
	metrics.RecordCacheLookup(c.name, result)

	flight := c.group.DoChan(c.remoteKey(key), func() (any, error) {
		// A flight that finished between the lookup above and this call
		// has already stored the value.
		if e, ok := c.local.Peek(key); ok && e.fresh(c.now(), c.ttl) {
			return e.Payload, nil
		}
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()
		v, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.Set(fetchCtx, key, v)
		return v, nil
	})

	var zero V
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-flight:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	}
}

// Get returns the cached value for key if it is still fresh.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	e, ok := c.local.Get(key)
	if !ok || !e.fresh(c.now(), c.ttl) {
		var zero V
		return zero, false
	}
	return e.Payload, true
}

// Set stores v under key with the current time in both tiers.
func (c *Cache[K, V]) Set(ctx context.Context, key K, v V) {
	e := Entry[V]{Payload: v, StoredAt: c.now()}
	c.local.Add(key, e)

	if c.remote == nil {
		return
	}
	data, err := json.Marshal(e)
	if err != nil {
		slog.Warn("cache entry not encodable", "cache", c.name, "error", err)
		return
	}
	if err := c.remote.Set(ctx, c.remoteKey(key), data, c.ttl); err != nil {
		slog.Warn("cache remote set failed", "cache", c.name, "error", err)
	}
}

// Len counts local entries, stale ones included.
func (c *Cache[K, V]) Len() int {
	return c.local.Len()
}

func (c *Cache[K, V]) fromRemote(ctx context.Context, key K) (V, bool) {
	var zero V
	if c.remote == nil {
		return zero, false
	}
	data, ok, err := c.remote.Get(ctx, c.remoteKey(key))
	if err != nil {
		slog.Warn("cache remote get failed", "cache", c.name, "error", err)
		return zero, false
	}
	if !ok {
		return zero, false
	}
	var e Entry[V]
	if err := json.Unmarshal(data, &e); err != nil {
		slog.Warn("cache remote entry undecodable", "cache", c.name, "error", err)
		return zero, false
	}
	if !e.fresh(c.now(), c.ttl) {
		return zero, false
	}
	c.local.Add(key, e)
	return e.Payload, true
}

func (c *Cache[K, V]) remoteKey(key K) string {
	return c.name + ":" + fmt.Sprint(key)
}
