package cache

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedReport struct {
	Score float64  `json:"score"`
	Tips  []string `json:"tips"`
}

type backend struct {
	name    string
	cache   CacheService
	advance func(time.Duration)
}

func backends(t *testing.T) []backend {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	mem := NewMemoryCache().(*memoryCache)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mem.now = func() time.Time { return clock }

	return []backend{
		{
			name:    "redis",
			cache:   NewRedisCache(client, logger, "test:"),
			advance: mr.FastForward,
		},
		{
			name:    "memory",
			cache:   mem,
			advance: func(d time.Duration) { clock = clock.Add(d) },
		},
	}
}

func TestCacheService(t *testing.T) {
	ctx := context.Background()

	for _, b := range backends(t) {
		t.Run(b.name+"/set and get", func(t *testing.T) {
			in := cachedReport{Score: 7.5, Tips: []string{"a", "b"}}
			require.NoError(t, b.cache.Set(ctx, "report:1", in, time.Minute))

			var out cachedReport
			require.NoError(t, b.cache.Get(ctx, "report:1", &out))
			assert.Equal(t, in, out)
		})

		t.Run(b.name+"/miss", func(t *testing.T) {
			var out cachedReport
			assert.ErrorIs(t, b.cache.Get(ctx, "report:missing", &out), ErrCacheMiss)
		})

		t.Run(b.name+"/expiry", func(t *testing.T) {
			require.NoError(t, b.cache.Set(ctx, "report:ttl", cachedReport{Score: 6}, time.Minute))
			b.advance(2 * time.Minute)

			var out cachedReport
			assert.ErrorIs(t, b.cache.Get(ctx, "report:ttl", &out), ErrCacheMiss)
		})

		t.Run(b.name+"/delete", func(t *testing.T) {
			require.NoError(t, b.cache.Set(ctx, "report:del", cachedReport{Score: 9}, 0))
			require.NoError(t, b.cache.Delete(ctx, "report:del"))

			var out cachedReport
			assert.ErrorIs(t, b.cache.Get(ctx, "report:del", &out), ErrCacheMiss)
			assert.NoError(t, b.cache.Delete(ctx, "report:del"))
		})

		t.Run(b.name+"/delete pattern", func(t *testing.T) {
			require.NoError(t, b.cache.Set(ctx, "report:a", cachedReport{Score: 1}, 0))
			require.NoError(t, b.cache.Set(ctx, "report:b", cachedReport{Score: 2}, 0))
			require.NoError(t, b.cache.Set(ctx, "other:c", cachedReport{Score: 3}, 0))

			require.NoError(t, b.cache.DeletePattern(ctx, "report:*"))

			var out cachedReport
			assert.ErrorIs(t, b.cache.Get(ctx, "report:a", &out), ErrCacheMiss)
			assert.ErrorIs(t, b.cache.Get(ctx, "report:b", &out), ErrCacheMiss)
			require.NoError(t, b.cache.Get(ctx, "other:c", &out))
			assert.Equal(t, 3.0, out.Score)
		})
	}
}

func TestRedisCache_Prefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisCache(client, slog.Default(), "mockinsight:")
	require.NoError(t, c.Set(context.Background(), "report:x", cachedReport{Score: 8}, time.Minute))

	assert.True(t, mr.Exists("mockinsight:report:x"))
	assert.False(t, mr.Exists("report:x"))
}

func TestMemoryCache_InvalidPattern(t *testing.T) {
	assert.Error(t, NewMemoryCache().DeletePattern(context.Background(), "["))
}

func TestMemoryCache_StoresCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	in := cachedReport{Tips: []string{"original"}}
	require.NoError(t, c.Set(ctx, "k", in, 0))
	in.Tips[0] = "mutated"

	var out cachedReport
	require.NoError(t, c.Get(ctx, "k", &out))
	assert.Equal(t, []string{"original"}, out.Tips)
}
