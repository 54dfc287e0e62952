package inmemory

import (
	"gourluses/cache/cacher"
	"time"

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

func (i *inMemory) Get(key string) (*cacher.Entry, bool) {
	data, found := i.engine.Get(key)
	if !found {
		return nil, false
	}
	entry, ok := data.(cacher.Entry)
	if !ok {
		return nil, false
	}
	return &entry, true
}

func (i *inMemory) Set(key string, entry *cacher.Entry, expiration time.Duration) {
	i.engine.Set(key, *entry, expiration)
}

func (i *inMemory) Delete(key string) {
	i.engine.Delete(key)
}
