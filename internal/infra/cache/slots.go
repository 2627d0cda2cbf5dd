package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/lesson-booking/internal/domain/availability"
)

const (
	slotsPrefix   = "slots:"
	generationKey = "slots-generation"
)

// SlotCache stores resolved schedules keyed by cache generation, the day they
// were resolved for and the locale of their labels. Invalidate moves to a new
// generation, so a schedule built from windows read before the bump is stored
// under a key no later reader asks for.
type SlotCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64, today string, locale availability.Locale) (*availability.Schedule, bool, error)
	Set(ctx context.Context, gen int64, today string, locale availability.Locale, s availability.Schedule) error
	Invalidate(ctx context.Context) error
}

func slotsKey(gen int64, today string, locale availability.Locale) string {
	return slotsPrefix + strconv.FormatInt(gen, 10) + ":" + today + ":" + string(locale)
}

// ======================================================
// REDIS
// ======================================================

type RedisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ SlotCache = (*RedisSlotCache)(nil)

// NewRedisSlotCache stores entries for ttl. A non-positive ttl falls back to
// one minute so superseded generations always expire.
func NewRedisSlotCache(client *redis.Client, ttl time.Duration) *RedisSlotCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisSlotCache{client: client, ttl: ttl}
}

func (c *RedisSlotCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisSlotCache) Get(
	ctx context.Context,
	gen int64,
	today string,
	locale availability.Locale,
) (*availability.Schedule, bool, error) {

	data, err := c.client.Get(ctx, slotsKey(gen, today, locale)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var s availability.Schedule
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, false, err
	}
	return &s, true, nil
}

func (c *RedisSlotCache) Set(
	ctx context.Context,
	gen int64,
	today string,
	locale availability.Locale,
	s availability.Schedule,
) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, slotsKey(gen, today, locale), b, c.ttl).Err()
}

// Invalidate bumps the generation, then drops the cached schedules it can
// find. Entries written later under an old generation are never read.
func (c *RedisSlotCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return err
	}

	iter := c.client.Scan(ctx, 0, slotsPrefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// ======================================================
// NOP
// ======================================================

// Nop never stores anything. Used when REDIS_ADDR is empty.
type Nop struct{}

var _ SlotCache = Nop{}

func (Nop) Generation(context.Context) (int64, error) { return 0, nil }

func (Nop) Get(context.Context, int64, string, availability.Locale) (*availability.Schedule, bool, error) {
	return nil, false, nil
}

func (Nop) Set(context.Context, int64, string, availability.Locale, availability.Schedule) error {
	return nil
}

func (Nop) Invalidate(context.Context) error { return nil }
