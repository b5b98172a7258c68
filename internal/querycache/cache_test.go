package querycache

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, TTLs{}, nil), mr
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "tournament:bgmi:solo:count:approved", CountKey("bgmi", "solo", "approved"))
	assert.Equal(t, "tournament:freefire:duo:registrations:all", ListKey("freefire", "duo", ""))
	assert.Equal(t, "tournament:freefire:duo:registrations:pending", ListKey("freefire", "duo", "pending"))
	assert.Equal(t, "tournament:bgmi:squad:slots-available", SlotsKey("bgmi", "squad"))
}

func TestFetchCachesUntilTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	calls := 0
	load := func(context.Context) (int, error) {
		calls++
		return 37, nil
	}

	key := CountKey("bgmi", "solo", "approved")
	for i := 0; i < 3; i++ {
		n, err := Fetch(ctx, c, key, c.TTL().Count, load)
		require.NoError(t, err)
		assert.Equal(t, 37, n)
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 5*time.Second, mr.TTL(key))

	mr.FastForward(6 * time.Second)
	_, err := Fetch(ctx, c, key, c.TTL().Count, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	c, mr := newTestCache(t)
	_, err := Fetch(context.Background(), c, "k", time.Second, func(context.Context) (int, error) {
		return 0, errors.New("db down")
	})
	require.Error(t, err)
	assert.False(t, mr.Exists("k"))
}

func TestFetchFallsThroughWhenRedisDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	n, err := Fetch(context.Background(), c, "k", time.Second, func(context.Context) (int, error) { return 4, nil })
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestNilCacheLoadsDirectly(t *testing.T) {
	var c *Cache
	n, err := Fetch(context.Background(), c, "k", time.Second, func(context.Context) (int, error) { return 9, nil })
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.NoError(t, c.Invalidate(context.Background(), "bgmi", "solo"))
}

func TestInvalidateFansOutToAllFamilies(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, CountKey("bgmi", "squad", "approved"), 3, time.Minute)
	c.Set(ctx, CountKey("bgmi", "squad", "pending"), 1, time.Minute)
	c.Set(ctx, ListKey("bgmi", "squad", ""), []string{"a"}, time.Minute)
	c.Set(ctx, ListKey("bgmi", "squad", "pending"), []string{"a"}, time.Minute)
	c.Set(ctx, SlotsKey("bgmi", "squad"), true, time.Minute)
	c.Set(ctx, CountKey("bgmi", "duo", "approved"), 8, time.Minute)
	c.Set(ctx, CountKey("freefire", "squad", "approved"), 2, time.Minute)

	require.NoError(t, c.Invalidate(ctx, "bgmi", "squad"))

	assert.False(t, mr.Exists(CountKey("bgmi", "squad", "approved")))
	assert.False(t, mr.Exists(CountKey("bgmi", "squad", "pending")))
	assert.False(t, mr.Exists(ListKey("bgmi", "squad", "")))
	assert.False(t, mr.Exists(ListKey("bgmi", "squad", "pending")))
	assert.False(t, mr.Exists(SlotsKey("bgmi", "squad")))
	assert.True(t, mr.Exists(CountKey("bgmi", "duo", "approved")))
	assert.True(t, mr.Exists(CountKey("freefire", "squad", "approved")))
}

func TestPollHeaders(t *testing.T) {
	h := http.Header{}
	PollHeaders(h, 5*time.Second, 3*time.Second)
	assert.Equal(t, "5", h.Get("X-Poll-Interval"))
	assert.Equal(t, "private, max-age=3", h.Get("Cache-Control"))
}
