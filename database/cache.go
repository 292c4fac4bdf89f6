package database

import (
	"sync"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// modelCache is a read-through cache of encoded records. Only hits are
// cached, so a miss always goes to the store and the check-then-act
// semantics of LoadOrCreate and Save stay exactly as without a cache.
type modelCache struct {
	cache gcache.Cache
	sf    singleflight.Group

	writeLock sync.Mutex
	writeGen  uint64
}

func newModelCache(size int) *modelCache {
	return &modelCache{
		cache: gcache.New(size).ARC().Build(),
	}
}

// getData fetches the encoded record at key, going through the cache when
// one is configured. Concurrent fetches of the same key are collapsed into
// a single storage operation.
func (m *Model) getData(key string) ([]byte, error) {
	if m.cache == nil {
		return m.db.Get(m.schema.Name(), key)
	}

	if cached, err := m.cache.cache.Get(key); err == nil {
		return cached.([]byte), nil
	}

	data, err, _ := m.cache.sf.Do(key, func() (interface{}, error) {
		m.cache.writeLock.Lock()
		gen := m.cache.writeGen
		m.cache.writeLock.Unlock()

		data, err := m.db.Get(m.schema.Name(), key)
		if err != nil {
			return nil, err
		}

		// A read result must lose against any write that landed after the
		// generation was captured. Installing it anyway would cache a
		// record over its own deletion or replacement.
		m.cache.writeLock.Lock()
		if m.cache.writeGen == gen {
			_ = m.cache.cache.Set(key, data)
		}
		m.cache.writeLock.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return data.([]byte), nil
}

func (m *Model) cacheUpdate(key string, data []byte) {
	if m.cache == nil {
		return
	}
	m.cache.writeLock.Lock()
	m.cache.writeGen++
	_ = m.cache.cache.Set(key, data)
	m.cache.writeLock.Unlock()
}

func (m *Model) cacheEvict(key string) {
	if m.cache == nil {
		return
	}
	m.cache.writeLock.Lock()
	m.cache.writeGen++
	m.cache.cache.Remove(key)
	m.cache.writeLock.Unlock()
}
