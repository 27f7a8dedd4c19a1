// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache holds fetched allocations pages for a bounded time so that a
// single request, or several requests close together, do not refetch the
// same upstream page.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pdiddy/allocations-engine/pkg/types"
)

// DefaultTTL is how long a fetched page is considered fresh.
const DefaultTTL = 5 * time.Minute

type entry struct {
	page      types.ProjectPage
	fetchedAt time.Time
}

// PageCache maps page numbers to fetched pages. Entries older than the TTL
// are treated as absent and removed on access or by EvictExpired.
type PageCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[int]entry
	group   singleflight.Group
}

// Option configures a PageCache.
type Option func(*PageCache)

// WithClock overrides the time source. Tests use it to expire entries
// without sleeping.
func WithClock(now func() time.Time) Option {
	return func(c *PageCache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates an empty cache. A non-positive ttl selects DefaultTTL.
func New(ttl time.Duration, opts ...Option) *PageCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &PageCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[int]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached page if present and fresh.
func (c *PageCache) Get(page int) (types.ProjectPage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[page]
	if !ok {
		return types.ProjectPage{}, false
	}
	if c.expired(e) {
		delete(c.entries, page)
		return types.ProjectPage{}, false
	}
	return e.page, true
}

// Put stores a page with the current timestamp.
func (c *PageCache) Put(page int, value types.ProjectPage) {
	c.mu.Lock()
	c.entries[page] = entry{page: value, fetchedAt: c.now()}
	c.mu.Unlock()
}

// GetOrFetch returns the cached page or calls fetch to load it. Concurrent
// callers asking for the same page share one fetch. Only successful fetches
// are stored.
//
// The shared fetch does not inherit any caller's cancellation, so one caller
// giving up never fails the others; each caller still returns as soon as its
// own ctx ends. Fetches are bounded by the source's own timeout.
func (c *PageCache) GetOrFetch(ctx context.Context, page int, fetch func(context.Context, int) (types.ProjectPage, error)) (types.ProjectPage, error) {
	if p, ok := c.Get(page); ok {
		return p, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(strconv.Itoa(page), func() (any, error) {
		if p, ok := c.Get(page); ok {
			return p, nil
		}
		p, err := fetch(shared, page)
		if err != nil {
			return nil, err
		}
		c.Put(page, p)
		return p, nil
	})

	select {
	case <-ctx.Done():
		return types.ProjectPage{}, fmt.Errorf("fetching page %d: %w", page, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return types.ProjectPage{}, fmt.Errorf("fetching page %d: %w", page, res.Err)
		}
		return res.Val.(types.ProjectPage), nil
	}
}

// EvictExpired removes every stale entry and returns how many were removed.
func (c *PageCache) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, fresh or not.
func (c *PageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Sweep calls EvictExpired every interval until ctx is done. Long-lived
// hosts run it in a goroutine; onEvict, if non-nil, receives each count.
func (c *PageCache) Sweep(ctx context.Context, interval time.Duration, onEvict func(int)) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := c.EvictExpired()
			if onEvict != nil {
				onEvict(n)
			}
		}
	}
}

func (c *PageCache) expired(e entry) bool {
	return c.now().Sub(e.fetchedAt) > c.ttl
}
