// Package hashmap provides a simple in-memory storage backend. It is mainly
// used for testing and for ephemeral databases. Entries are additionally
// indexed in a radix tree per namespace so that scans iterate in key order.
package hashmap

import (
	"context"
	"sync"

	radix "github.com/armon/go-radix"

	"github.com/rowbase/rowbase/database/iterator"
	"github.com/rowbase/rowbase/database/storage"
)

// HashMap storage.
type HashMap struct {
	name   string
	dbLock sync.RWMutex
	db     map[string]*radix.Tree
}

func init() {
	_ = storage.Register("hashmap", NewHashMap)
}

// NewHashMap creates a hashmap storage.
func NewHashMap(name, location string) (storage.Interface, error) {
	return &HashMap{
		name: name,
		db:   make(map[string]*radix.Tree),
	}, nil
}

// Get returns the data stored at key within namespace.
func (hm *HashMap) Get(namespace, key string) ([]byte, error) {
	hm.dbLock.RLock()
	defer hm.dbLock.RUnlock()

	tree, ok := hm.db[namespace]
	if !ok {
		return nil, storage.ErrNotFound
	}
	value, ok := tree.Get(key)
	if !ok {
		return nil, storage.ErrNotFound
	}
	return value.([]byte), nil
}

// Put stores data at key within namespace.
func (hm *HashMap) Put(namespace, key string, data []byte) error {
	if key == "" {
		return storage.ErrInvalidKey
	}

	// copy, caller may reuse the slice
	duplicate := make([]byte, len(data))
	copy(duplicate, data)

	hm.dbLock.Lock()
	defer hm.dbLock.Unlock()

	tree, ok := hm.db[namespace]
	if !ok {
		tree = radix.New()
		hm.db[namespace] = tree
	}
	tree.Insert(key, duplicate)
	return nil
}

// Delete removes the entry at key within namespace.
func (hm *HashMap) Delete(namespace, key string) error {
	hm.dbLock.Lock()
	defer hm.dbLock.Unlock()

	tree, ok := hm.db[namespace]
	if ok {
		tree.Delete(key)
	}
	return nil
}

// Scan returns an iterator over all entries of namespace with the given key prefix.
func (hm *HashMap) Scan(namespace, keyPrefix string) (*iterator.Iterator, error) {
	it := iterator.New()
	go hm.scanExecutor(it, namespace, keyPrefix)
	return it, nil
}

func (hm *HashMap) scanExecutor(it *iterator.Iterator, namespace, keyPrefix string) {
	hm.dbLock.RLock()
	defer hm.dbLock.RUnlock()

	tree, ok := hm.db[namespace]
	if !ok {
		it.Finish(nil)
		return
	}

	tree.WalkPrefix(keyPrefix, func(key string, value interface{}) bool {
		data := value.([]byte)
		duplicate := make([]byte, len(data))
		copy(duplicate, data)

		select {
		case it.Next <- iterator.Entry{Key: key, Data: duplicate}:
			return false
		case <-it.Done:
			return true
		}
	})

	it.Finish(nil)
}

// ReadOnly returns whether the storage is read only.
func (hm *HashMap) ReadOnly() bool {
	return false
}

// Maintain runs a maintenance operation on the storage.
func (hm *HashMap) Maintain(_ context.Context) error {
	return nil
}

// Shutdown shuts down the storage.
func (hm *HashMap) Shutdown() error {
	return nil
}
