package contentcache

import (
	"context"
	"sync"
	"time"

	"github.com/BuildLoopLLC/clearview-core/internal/models"
	pkgredis "github.com/BuildLoopLLC/clearview-core/internal/pkg/redis"
	"go.uber.org/zap"
)

// InvalidateChannel is the redis pub/sub channel carrying section names
// whose cache entries must be dropped, so every process stays in sync.
const InvalidateChannel = "cv:content:invalidate"

// DefaultTTL bounds how stale a served section may be.
const DefaultTTL = 5 * time.Minute

// Loader fetches a section's active items from the content store.
type Loader func(ctx context.Context, section string) ([]models.ContentItemModel, error)

// Cache is a per-process TTL cache of content sections. It is not
// correctness-critical: a stale read within the TTL window is acceptable,
// and two concurrent misses for the same section may both hit the loader.
type Cache struct {
	loader Loader
	ttl    time.Duration
	now    func() time.Time
	rc     *pkgredis.Client
	log    *zap.Logger

	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	items     []models.ContentItemModel
	fetchedAt time.Time
}

// Options tune the cache; zero values fall back to defaults.
type Options struct {
	TTL   time.Duration
	Now   func() time.Time
	Redis *pkgredis.Client // nil = local-only invalidation
}

// New builds a cache around the given loader.
func New(loader Loader, log *zap.Logger, opts Options) *Cache {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Cache{
		loader:  loader,
		ttl:     ttl,
		now:     now,
		rc:      opts.Redis,
		log:     log,
		entries: map[string]entry{},
	}
}

// Get returns the cached section when fresh, otherwise loads and
// repopulates. Callers must treat the returned slice as read-only.
func (c *Cache) Get(ctx context.Context, section string) ([]models.ContentItemModel, error) {
	c.mu.RLock()
	e, ok := c.entries[section]
	c.mu.RUnlock()
	if ok && c.now().Sub(e.fetchedAt) < c.ttl {
		return e.items, nil
	}

	items, err := c.loader(ctx, section)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[section] = entry{items: items, fetchedAt: c.now()}
	c.mu.Unlock()
	return items, nil
}

// Invalidate drops the section locally and fans the drop out to the other
// processes via redis. Redis being down degrades to local-only, logged.
func (c *Cache) Invalidate(ctx context.Context, section string) {
	c.drop(section)
	if c.rc == nil {
		return
	}
	if err := c.rc.Publish(ctx, InvalidateChannel, section); err != nil {
		c.log.Warn("cache invalidation fanout failed",
			zap.String("section", section), zap.Error(err))
	}
}

// ListenInvalidations consumes the redis channel and drops entries other
// processes invalidated. Blocks until ctx is cancelled; run in a goroutine.
func (c *Cache) ListenInvalidations(ctx context.Context) {
	if c.rc == nil {
		return
	}
	sub := c.rc.Subscribe(ctx, InvalidateChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			c.drop(msg.Payload)
		}
	}
}

func (c *Cache) drop(section string) {
	c.mu.Lock()
	delete(c.entries, section)
	c.mu.Unlock()
}
