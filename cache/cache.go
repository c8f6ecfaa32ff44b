package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"shorturl/cache/cacher"
	"shorturl/models"
	"shorturl/pkg/multicas"
	"shorturl/repository"

	"go.uber.org/zap"
)

const (
	cacheHitExp  = 24 * time.Hour
	cacheMissExp = 1 * time.Hour
)

func New(db repository.Repository, engine cacher.Engine, logger *zap.Logger) repository.Repository {
	return &cacheLogic{
		db:     db,
		cache:  engine,
		mcas:   multicas.NewMultiCAS(),
		logger: logger,
	}
}

type cacheLogic struct {
	db     repository.Repository
	cache  cacher.Engine
	mcas   multicas.MultiCAS
	logger *zap.Logger
}

func key(id int64) string {
	return "url:" + strconv.FormatInt(id, 10)
}

// Get caches results that retrieved from database, misses included.
func (r *cacheLogic) Get(ctx context.Context, id int64) (*models.Url, error) {
	k := key(id)
	cached, found, err := r.cache.Get(k)
	if err != nil {
		r.logger.Warn("cache get failed", zap.String("key", k), zap.Error(err))
	}
	if found {
		return cached.Url, cached.Err
	}

	// cache miss
	if !r.mcas.Set(k) {
		// In case of cache stampede, wait for the goroutine that recomputes
		// the value, then read what it cached.
		select {
		case <-r.mcas.Wait(k):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if cached, found, _ := r.cache.Get(k); found {
			return cached.Url, cached.Err
		}
		// nothing was cached, e.g. the database failed for the other goroutine
		return r.db.Get(ctx, id)
	}
	defer r.mcas.Unset(k)

	// the value may have been cached between the first lookup and mcas.Set()
	if cached, found, _ := r.cache.Get(k); found {
		return cached.Url, cached.Err
	}
	url, err := r.db.Get(ctx, id)
	switch {
	case err == nil:
		r.set(k, &cacher.Entry{Url: url}, cacheHitExp)
	case errors.Is(err, repository.ErrRecordNotFound):
		r.set(k, &cacher.Entry{Err: repository.ErrRecordNotFound}, cacheMissExp)
	}
	return url, err
}

func (r *cacheLogic) set(k string, entry *cacher.Entry, exp time.Duration) {
	if err := r.cache.Set(k, entry, exp); err != nil {
		r.logger.Warn("cache set failed", zap.String("key", k), zap.Error(err))
	}
}

func (r *cacheLogic) forget(k string) {
	if err := r.cache.Delete(k); err != nil && !errors.Is(err, cacher.ErrEntryNotFound) {
		r.logger.Warn("cache delete failed", zap.String("key", k), zap.Error(err))
	}
}

// Increment updates the database, then drops the stale cached row.
func (r *cacheLogic) Increment(ctx context.Context, id int64, n int64, at time.Time) error {
	if err := r.db.Increment(ctx, id, n, at); err != nil {
		return err
	}
	r.forget(key(id))
	return nil
}

// Add wraps the db.Add() and forgets a miss that may have been cached for
// the new id before it was assigned.
func (r *cacheLogic) Add(ctx context.Context, longURL string) (int64, error) {
	id, err := r.db.Add(ctx, longURL)
	if err != nil {
		return 0, err
	}
	r.forget(key(id))
	return id, nil
}

// BaseChars just wraps the db.BaseChars().
func (r *cacheLogic) BaseChars(ctx context.Context) (string, error) {
	return r.db.BaseChars(ctx)
}
