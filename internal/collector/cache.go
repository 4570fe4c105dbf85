package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"CryptoPulse/internal/model"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL is how long fetched bars are reused for identical requests.
const DefaultCacheTTL = 60 * time.Second

// Cache stores raw fetched bars keyed by symbol and timeframe.
type Cache interface {
	Get(ctx context.Context, key string) ([]model.OHLCV, bool)
	Set(ctx context.Context, key string, bars []model.OHLCV) error
}

// CacheKey identifies a (symbol, timeframe) request.
func CacheKey(symbol string, tf model.Timeframe) string {
	return fmt.Sprintf("bars:%s:%s", symbol, tf)
}

type cacheEntry struct {
	bars       []model.OHLCV
	insertedAt time.Time
}

// MemoryCache is a process-local cache with an explicit expiry check on read.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewMemoryCache creates a cache whose entries expire after ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, entries: make(map[string]cacheEntry), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]model.OHLCV, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.insertedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return cloneBars(e.bars), true
}

func (c *MemoryCache) Set(_ context.Context, key string, bars []model.OHLCV) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{bars: cloneBars(bars), insertedAt: c.now()}
	return nil
}

func cloneBars(bars []model.OHLCV) []model.OHLCV {
	out := make([]model.OHLCV, len(bars))
	copy(out, bars)
	return out
}

// RedisCache shares fetched bars between processes; expiry is delegated to Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisCache wraps a connected Redis client.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, prefix: "cryptopulse:"}
}

// redisBar keeps NaN out of JSON; undefined values are encoded as null.
type redisBar struct {
	Time   time.Time `json:"t"`
	Open   *float64  `json:"o"`
	High   *float64  `json:"h"`
	Low    *float64  `json:"l"`
	Close  *float64  `json:"c"`
	Volume *float64  `json:"v"`
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]model.OHLCV, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	var encoded []redisBar
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, false
	}
	bars := make([]model.OHLCV, len(encoded))
	for i, e := range encoded {
		bars[i] = model.OHLCV{
			Time:   e.Time,
			Open:   fromNullable(e.Open),
			High:   fromNullable(e.High),
			Low:    fromNullable(e.Low),
			Close:  fromNullable(e.Close),
			Volume: fromNullable(e.Volume),
		}
	}
	return bars, true
}

func (c *RedisCache) Set(ctx context.Context, key string, bars []model.OHLCV) error {
	encoded := make([]redisBar, len(bars))
	for i, b := range bars {
		encoded[i] = redisBar{
			Time:   b.Time,
			Open:   toNullable(b.Open),
			High:   toNullable(b.High),
			Low:    toNullable(b.Low),
			Close:  toNullable(b.Close),
			Volume: toNullable(b.Volume),
		}
	}
	data, err := json.Marshal(encoded)
	if err != nil {
		return fmt.Errorf("encode bars: %w", err)
	}
	return c.client.Set(ctx, c.prefix+key, data, c.ttl).Err()
}

func toNullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func fromNullable(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}
