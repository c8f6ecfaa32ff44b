package inmemory

import (
	"time"

	"shorturl/cache/cacher"

	gocache "github.com/patrickmn/go-cache"
)

// New returns an in-memory cache for default usage.
func New(defaultExp, defaultClearInterval time.Duration) cacher.Engine {
	return &inMemory{
		engine: gocache.New(defaultExp, defaultClearInterval),
	}
}

type inMemory struct {
	engine *gocache.Cache
}

func (i *inMemory) Get(key string) (*cacher.Entry, bool, error) {
	data, found := i.engine.Get(key)
	if !found {
		return nil, false, nil
	}
	entry, ok := data.(cacher.Entry)
	if !ok {
		return nil, false, cacher.ErrUnexpectedError
	}
	return &entry, true, nil
}

func (i *inMemory) Set(key string, entry *cacher.Entry, expiration time.Duration) error {
	i.engine.Set(key, *entry, expiration)
	return nil
}

func (i *inMemory) Delete(key string) error {
	if _, found := i.engine.Get(key); !found {
		return cacher.ErrEntryNotFound
	}
	i.engine.Delete(key)
	return nil
}
