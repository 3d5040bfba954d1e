package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/Payphone-Digital/dashboard/internal/listview"
	"github.com/Payphone-Digital/dashboard/pkg/cache"
	"github.com/Payphone-Digital/dashboard/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// ListCache memoizes list pages per entity and collapses identical concurrent
// misses into one query. A nil *ListCache disables caching.
//
// Each prefix carries a version that Invalidate bumps. A load started under an
// older version is neither joined by later callers nor written back.
type ListCache struct {
	store cache.Store
	ttl   time.Duration
	group singleflight.Group

	mu       sync.Mutex
	versions map[string]uint64
}

func NewListCache(store cache.Store, ttl time.Duration) *ListCache {
	if store == nil || ttl <= 0 {
		return nil
	}
	return &ListCache{store: store, ttl: ttl, versions: make(map[string]uint64)}
}

func (c *ListCache) version(prefix string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[prefix]
}

// storeIfCurrent writes raw unless prefix was invalidated since version. The
// lock is held across the write so a concurrent Invalidate deletes it after.
func (c *ListCache) storeIfCurrent(ctx context.Context, prefix string, version uint64, key string, raw []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[prefix] != version {
		return false
	}
	if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		logger.WarnWithContext(ctx, "List cache write failed").
			String("key", key).
			Err(err).
			Log()
	}
	return true
}

// Key derives the cache key of params under prefix.
func (c *ListCache) Key(prefix string, params listview.RequestParams) string {
	raw, _ := json.Marshal(params)
	sum := sha256.Sum256(raw)
	return prefix + hex.EncodeToString(sum[:16])
}

// Invalidate drops every cached page under prefix. Failures are logged only;
// entries then age out with the TTL.
func (c *ListCache) Invalidate(ctx context.Context, prefix string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.versions[prefix]++
	c.mu.Unlock()

	if err := c.store.DeletePrefix(ctx, prefix); err != nil {
		logger.WarnWithContext(ctx, "Failed to invalidate list cache").
			String("prefix", prefix).
			Err(err).
			Log()
	}
}

// cachedList serves params from the cache or runs load and stores its result.
func cachedList[T any](ctx context.Context, c *ListCache, prefix string, params listview.RequestParams, load func(context.Context) (listview.Page[T], error)) (listview.Page[T], error) {
	if c == nil {
		return load(ctx)
	}

	key := c.Key(prefix, params)
	if raw, ok, err := c.store.Get(ctx, key); err != nil {
		logger.WarnWithContext(ctx, "List cache read failed").
			String("key", key).
			Err(err).
			Log()
	} else if ok {
		var page listview.Page[T]
		if err := json.Unmarshal(raw, &page); err == nil {
			logger.DebugWithContext(ctx, "List cache hit").
				String("key", key).
				Log()
			return page, nil
		}
	}

	version := c.version(prefix)
	flight := key + "@" + strconv.FormatUint(version, 10)
	v, err, shared := c.group.Do(flight, func() (interface{}, error) {
		// Waiters share this call, so one caller's cancellation must not fail the rest.
		loadCtx := context.WithoutCancel(ctx)
		page, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(page); err == nil {
			if !c.storeIfCurrent(loadCtx, prefix, version, key, raw) {
				logger.DebugWithContext(ctx, "List cache write skipped after invalidation").
					String("key", key).
					Log()
			}
		}
		return page, nil
	})
	if err != nil {
		return listview.Page[T]{}, err
	}

	logger.DebugWithContext(ctx, "List cache miss").
		String("key", key).
		Bool("shared", shared).
		Log()
	return v.(listview.Page[T]), nil
}
