package pkg

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Logical views refreshed after every job write.
const (
	ViewPublicJobs = "/jobs"
	ViewAdminJobs  = "/admin/jobs"
)

// InvalidationSubject carries the list of stale view paths as a JSON array.
const InvalidationSubject = "views.invalidate"

// Invalidator marks views stale. It is fire and forget: failures are logged
// by the implementation and never reported to the caller.
type Invalidator interface {
	Invalidate(ctx context.Context, paths ...string)
}

// ViewCache stores rendered views keyed by path.
type ViewCache interface {
	Invalidator
	// Get loads the view into dest and reports whether it was present.
	Get(ctx context.Context, path string, dest any) (bool, error)
	Set(ctx context.Context, path string, value any) error
}

type RedisViewCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger zerolog.Logger
}

func NewRedisViewCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisViewCache {
	return &RedisViewCache{client: client, ttl: ttl, prefix: "view:", logger: logger}
}

func (slf *RedisViewCache) key(path string) string {
	return slf.prefix + path
}

func (slf *RedisViewCache) Get(ctx context.Context, path string, dest any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := slf.client.Get(ctx, slf.key(path)).Bytes()
	if err != nil {
		if IsRedisNil(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (slf *RedisViewCache) Set(ctx context.Context, path string, value any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return slf.client.Set(ctx, slf.key(path), data, slf.ttl).Err()
}

func (slf *RedisViewCache) Invalidate(ctx context.Context, paths ...string) {
	if len(paths) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = slf.key(p)
	}
	if err := slf.client.Del(ctx, keys...).Err(); err != nil {
		slf.logger.Warn().Err(err).Strs("paths", paths).Msg("Failed to invalidate cached views")
	}
}

// IsRedisNil returns true if the error is a redis key-not-found error.
func IsRedisNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

// NopViewCache never holds anything.
type NopViewCache struct{}

func NewNopViewCache() *NopViewCache { return &NopViewCache{} }

func (NopViewCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NopViewCache) Set(context.Context, string, any) error         { return nil }
func (NopViewCache) Invalidate(context.Context, ...string)          {}

// NATSInvalidator broadcasts stale view paths so other replicas and edge
// caches can drop them.
type NATSInvalidator struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

func NewNATSInvalidator(conn *nats.Conn, logger zerolog.Logger) *NATSInvalidator {
	return &NATSInvalidator{conn: conn, logger: logger}
}

func (slf *NATSInvalidator) Invalidate(_ context.Context, paths ...string) {
	if len(paths) == 0 {
		return
	}
	data, err := json.Marshal(paths)
	if err != nil {
		slf.logger.Warn().Err(err).Msg("Failed to encode invalidation event")
		return
	}
	if err := slf.conn.Publish(InvalidationSubject, data); err != nil {
		slf.logger.Warn().Err(err).Strs("paths", paths).Msg("Failed to publish invalidation event")
	}
}

// WithInvalidators returns cache with Invalidate also forwarded to extra.
func WithInvalidators(cache ViewCache, extra ...Invalidator) ViewCache {
	if len(extra) == 0 {
		return cache
	}
	return &fanoutCache{ViewCache: cache, extra: extra}
}

type fanoutCache struct {
	ViewCache
	extra []Invalidator
}

func (slf *fanoutCache) Invalidate(ctx context.Context, paths ...string) {
	slf.ViewCache.Invalidate(ctx, paths...)
	for _, inv := range slf.extra {
		inv.Invalidate(ctx, paths...)
	}
}
