package cache

import (
	"context"
	"gourluses/cache/cacher"
	"gourluses/models"
	"gourluses/repository"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultExp           = 1 * time.Hour
	DefaultClearInterval = 10 * time.Minute

	// fetchTimeout bounds a shared database read, which no longer follows
	// the context of the request that started it.
	fetchTimeout = 30 * time.Second
)

// New wraps db with a read-through cache for url lookups. Only hits are
// cached; misses always go to db so a url created later is visible at once.
func New(db repository.Repository, engine cacher.Engine, exp time.Duration, logger *zap.Logger) repository.Repository {
	return &cacheLogic{
		Repository: db,
		cache:      engine,
		exp:        exp,
		versions:   make(map[int64]uint64),
		log:        logger.Named("cache"),
	}
}

type cacheLogic struct {
	repository.Repository
	cache  cacher.Engine
	exp    time.Duration
	flight singleflight.Group
	log    *zap.Logger

	// versions counts updates per url id. A read only fills the cache if no
	// update happened while it was in flight.
	mu       sync.Mutex
	versions map[int64]uint64
}

func urlKey(id int64) string {
	return "url:" + strconv.FormatInt(id, 10)
}

func (r *cacheLogic) version(id int64) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.versions[id]
}

// GetURL serves from cache and collapses concurrent misses on the same id
// into a single database read. A caller whose ctx ends stops waiting without
// failing the others.
func (r *cacheLogic) GetURL(ctx context.Context, id int64) (models.Url, error) {
	key := urlKey(id)
	if cached, found := r.cache.Get(key); found {
		return cached.Url, nil
	}

	ch := r.flight.DoChan(key, func() (interface{}, error) {
		// a flight that finished between our miss and this call already
		// filled the cache
		if cached, found := r.cache.Get(key); found {
			return cached.Url, nil
		}
		version := r.version(id)

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		url, err := r.Repository.GetURL(fetchCtx, id)
		if err != nil {
			return models.Url{}, err
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		if r.versions[id] != version {
			r.log.Debug("url changed during read, not caching", zap.Int64("id", id))
			return url, nil
		}
		r.cache.Set(key, &cacher.Entry{Url: url}, r.exp)
		r.log.Debug("cached url", zap.Int64("id", id))
		return url, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return models.Url{}, res.Err
		}
		return res.Val.(models.Url), nil
	case <-ctx.Done():
		return models.Url{}, ctx.Err()
	}
}

// UpdateURL writes through to db and drops the stale entry. Reads already in
// flight are detached so they neither refill the cache nor hand the old href
// to later callers.
func (r *cacheLogic) UpdateURL(ctx context.Context, id int64, href string) (models.Url, error) {
	url, err := r.Repository.UpdateURL(ctx, id, href)

	key := urlKey(id)
	r.mu.Lock()
	r.versions[id]++
	r.cache.Delete(key)
	r.mu.Unlock()
	r.flight.Forget(key)

	return url, err
}

// Ping forwards to db when it supports pinging.
func (r *cacheLogic) Ping(ctx context.Context) error {
	if p, ok := r.Repository.(repository.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
