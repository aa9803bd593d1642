package grpc

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/bizcoach/assessment-server/internal/service"
)

const (
	refreshTimeout = 15 * time.Second
	storeTimeout   = 5 * time.Second
	maxJitter      = 15 * time.Second
)

// readThrough serves business reads from the cache and loads from the service
// on a miss. Every key carries a generation that forget bumps, and a value
// loaded under an older generation is never written back. A save therefore
// cannot be hidden by a load that was already in flight when it landed.
type readThrough struct {
	cache  Cacher
	flight singleflight.Group
	ttl    time.Duration
	logger *zap.Logger

	// refreshDelay staggers background refreshes of hot keys.
	refreshDelay func() time.Duration

	mu          sync.Mutex
	generations map[string]uint64
}

func newReadThrough(cache Cacher, ttl time.Duration, logger *zap.Logger) *readThrough {
	return &readThrough{
		cache:  cache,
		ttl:    ttl,
		logger: logger,
		refreshDelay: func() time.Duration {
			return time.Duration(rand.Intn(1000)) * time.Millisecond
		},
		generations: make(map[string]uint64),
	}
}

func (r *readThrough) generation(key string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generations[key]
}

// forget drops keys after a save. Failing to delete only costs a stale read
// until the TTL passes, since loads started earlier are already fenced off.
func (r *readThrough) forget(ctx context.Context, keys ...string) {
	r.mu.Lock()
	for _, key := range keys {
		r.generations[key]++
	}
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := r.cache.Delete(ctx, keys...); err != nil {
		r.logger.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// store writes value under key unless key was forgotten after gen was read.
func (r *readThrough) store(key string, gen uint64, value any) {
	if r.generation(key) != gen {
		r.logger.Debug("skipping stale cache write", zap.String("key", key))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	ttl := jitterTTL(r.ttl)
	if err := r.cache.Set(ctx, key, value, ttl); err != nil {
		r.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		return
	}

	// forget may have run between the check above and the write.
	if r.generation(key) != gen {
		if err := r.cache.Delete(ctx, key); err != nil {
			r.logger.Warn("stale cache entry not removed", zap.String("key", key), zap.Error(err))
		}
		return
	}
	r.logger.Debug("cached", zap.String("key", key), zap.Duration("ttl", ttl))
}

func flightKey(key string, gen uint64) string {
	return key + "@" + strconv.FormatUint(gen, 10)
}

// jitterTTL spreads expirations of keys written together by up to maxJitter
// either way.
func jitterTTL(ttl time.Duration) time.Duration {
	if ttl <= maxJitter {
		return ttl
	}
	offset := time.Duration(rand.Int63n(int64(2*maxJitter))) - maxJitter
	return ttl + offset.Truncate(time.Second)
}

// readCached returns the cached value for key, or load's result on a miss.
// Hits schedule a refresh so hot businesses stay current; concurrent misses
// share one load.
func readCached[T any](ctx context.Context, r *readThrough, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	gen := r.generation(key)

	var cached T
	err := r.cache.Get(ctx, key, &cached)
	switch {
	case err == nil:
		r.logger.Debug("cache hit", zap.String("key", key))
		go refresh(r, key, gen, load)
		return cached, nil
	case errors.Is(err, redis.Nil):
		r.logger.Debug("cache miss", zap.String("key", key))
	default:
		r.logger.Warn("cache read failed, loading from storage", zap.String("key", key), zap.Error(err))
	}

	v, err, shared := r.flight.Do(flightKey(key, gen), func() (any, error) {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		go r.store(key, gen, value)
		return value, nil
	})
	if err != nil {
		return zero, err
	}
	if shared {
		r.logger.Debug("load shared", zap.String("key", key))
	}

	value, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cached load for %q returned %T", key, v)
	}
	return value, nil
}

func refresh[T any](r *readThrough, key string, gen uint64, load func(context.Context) (T, error)) {
	time.Sleep(r.refreshDelay())

	_, _, _ = r.flight.Do(flightKey(key, gen)+":refresh", func() (any, error) {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		value, err := load(ctx)
		switch {
		case errors.Is(err, service.ErrNotFound):
			if r.generation(key) == gen {
				_ = r.cache.Delete(ctx, key)
			}
			return nil, err
		case err != nil:
			r.logger.Warn("background refresh failed", zap.String("key", key), zap.Error(err))
			return nil, err
		}

		r.store(key, gen, value)
		return value, nil
	})
}
