// Package querycache is the Redis read-through cache in front of registration counts, lists and slot
// availability. Entries expire on the polling cadence and are invalidated after every mutation.
package querycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const scanBatch = 100

// TTLs are the expiry of each key family.
type TTLs struct {
	Count time.Duration
	List  time.Duration
	Slots time.Duration
}

// DefaultTTLs match the front-end polling intervals.
var DefaultTTLs = TTLs{Count: 5 * time.Second, List: 10 * time.Second, Slots: 5 * time.Second}

// Cache wraps a Redis client. A nil *Cache is valid and always loads from the store.
type Cache struct {
	client *redis.Client
	ttl    TTLs
	logger *zap.Logger
}

// New creates a cache. Zero TTLs fall back to DefaultTTLs.
func New(client *redis.Client, ttl TTLs, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl.Count <= 0 {
		ttl.Count = DefaultTTLs.Count
	}
	if ttl.List <= 0 {
		ttl.List = DefaultTTLs.List
	}
	if ttl.Slots <= 0 {
		ttl.Slots = DefaultTTLs.Slots
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

// TTL returns the configured expiries.
func (c *Cache) TTL() TTLs {
	if c == nil {
		return DefaultTTLs
	}
	return c.ttl
}

func prefix(game, tournamentType string) string {
	return fmt.Sprintf("tournament:%s:%s", game, tournamentType)
}

// CountKey is the key of count(game, type, status).
func CountKey(game, tournamentType, status string) string {
	return prefix(game, tournamentType) + ":count:" + status
}

// ListKey is the key of list(game, type, status). An empty status means all.
func ListKey(game, tournamentType, status string) string {
	if status == "" {
		status = "all"
	}
	return prefix(game, tournamentType) + ":registrations:" + status
}

// SlotsKey is the key of the slot-availability snapshot.
func SlotsKey(game, tournamentType string) string {
	return prefix(game, tournamentType) + ":slots-available"
}

// Fetch returns the cached value at key or calls load and caches its result for ttl.
// Redis failures are logged and never returned; load errors are returned as is and not cached.
func Fetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if c == nil || c.client == nil {
		return load(ctx)
	}
	var cached T
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if jerr := json.Unmarshal(raw, &cached); jerr == nil {
			return cached, nil
		}
		c.logger.Warn("cache entry corrupt, reloading", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}

	val, err := load(ctx)
	if err != nil {
		return val, err
	}
	c.Set(ctx, key, val, ttl)
	return val, nil
}

// Set stores v at key for ttl. Failures are logged.
func (c *Cache) Set(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every list, count and slot-availability entry of (game, type). Errors are returned
// for the caller to log with its own context.
func (c *Cache) Invalidate(ctx context.Context, game, tournamentType string) error {
	if c == nil || c.client == nil {
		return nil
	}
	keys, err := c.scan(ctx, prefix(game, tournamentType)+":*")
	if err != nil {
		return fmt.Errorf("scan %s:%s: %w", game, tournamentType, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete %s:%s keys: %w", game, tournamentType, err)
	}
	c.logger.Debug("cache invalidated", zap.String("game", game), zap.String("type", tournamentType), zap.Int("keys", len(keys)))
	return nil
}

func (c *Cache) scan(ctx context.Context, match string) ([]string, error) {
	var (
		cursor uint64
		keys   []string
	)
	for {
		batch, next, err := c.client.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

// PollHeaders tells clients how often to poll and how long a response stays fresh.
func PollHeaders(h http.Header, interval, staleAfter time.Duration) {
	h.Set("X-Poll-Interval", strconv.Itoa(int(interval/time.Second)))
	h.Set("Cache-Control", fmt.Sprintf("private, max-age=%d", int(staleAfter/time.Second)))
}
