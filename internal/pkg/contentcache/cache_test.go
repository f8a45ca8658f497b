package contentcache

import (
	"context"
	"testing"
	"time"

	"github.com/BuildLoopLLC/clearview-core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingLoader struct {
	calls int
	items []models.ContentItemModel
}

func (l *countingLoader) load(ctx context.Context, section string) ([]models.ContentItemModel, error) {
	l.calls++
	return l.items, nil
}

func newTestCache(loader Loader, clock *time.Time) *Cache {
	return New(loader, zap.NewNop(), Options{
		TTL: 5 * time.Minute,
		Now: func() time.Time { return *clock },
	})
}

func TestGetCachesWithinTTL(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	loader := &countingLoader{items: []models.ContentItemModel{
		{Section: "hero", Content: "<h1>Welcome</h1>"},
	}}
	cache := newTestCache(loader.load, &clock)

	first, err := cache.Get(context.Background(), "hero")
	require.NoError(t, err)

	clock = clock.Add(4 * time.Minute)
	second, err := cache.Get(context.Background(), "hero")
	require.NoError(t, err)

	assert.Equal(t, 1, loader.calls, "second get within TTL must not reload")
	assert.Equal(t, first, second)
}

func TestGetReloadsAfterTTL(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	loader := &countingLoader{}
	cache := newTestCache(loader.load, &clock)

	_, err := cache.Get(context.Background(), "hero")
	require.NoError(t, err)

	clock = clock.Add(5*time.Minute + time.Second)
	_, err = cache.Get(context.Background(), "hero")
	require.NoError(t, err)

	assert.Equal(t, 2, loader.calls)
}

func TestInvalidateForcesReload(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	loader := &countingLoader{}
	cache := newTestCache(loader.load, &clock)

	_, err := cache.Get(context.Background(), "hero")
	require.NoError(t, err)

	cache.Invalidate(context.Background(), "hero")

	_, err = cache.Get(context.Background(), "hero")
	require.NoError(t, err)
	assert.Equal(t, 2, loader.calls, "get after invalidate must reload")
}

func TestInvalidateOnlyDropsTargetSection(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	loader := &countingLoader{}
	cache := newTestCache(loader.load, &clock)

	_, _ = cache.Get(context.Background(), "hero")
	_, _ = cache.Get(context.Background(), "about")
	require.Equal(t, 2, loader.calls)

	cache.Invalidate(context.Background(), "hero")

	_, _ = cache.Get(context.Background(), "about")
	assert.Equal(t, 2, loader.calls, "untouched section must stay cached")
}
