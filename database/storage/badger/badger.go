// Package badger provides a badger backed storage backend. Namespaces are
// mapped into badger's flat keyspace as a key prefix.
package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger"

	"github.com/rowbase/rowbase/database/iterator"
	"github.com/rowbase/rowbase/database/storage"
)

// Badger storage.
type Badger struct {
	name string
	db   *badger.DB
}

func init() {
	_ = storage.Register("badger", NewBadger)
}

// NewBadger opens or creates a badger database at location.
func NewBadger(name, location string) (storage.Interface, error) {
	opts := badger.DefaultOptions(location)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Badger{
		name: name,
		db:   db,
	}, nil
}

func storageKey(namespace, key string) []byte {
	return []byte(namespace + "/" + key)
}

// Get returns the data stored at key within namespace.
func (b *Badger) Get(namespace, key string) ([]byte, error) {
	var duplicate []byte

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(storageKey(namespace, key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		if item.IsDeletedOrExpired() {
			return storage.ErrNotFound
		}

		duplicate, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return duplicate, nil
}

// Put stores data at key within namespace.
func (b *Badger) Put(namespace, key string, data []byte) error {
	if key == "" {
		return storage.ErrInvalidKey
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(storageKey(namespace, key), data)
	})
}

// Delete removes the entry at key within namespace.
func (b *Badger) Delete(namespace, key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(storageKey(namespace, key))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
}

// Scan returns an iterator over all entries of namespace with the given key prefix.
func (b *Badger) Scan(namespace, keyPrefix string) (*iterator.Iterator, error) {
	it := iterator.New()
	go b.scanExecutor(it, namespace, keyPrefix)
	return it, nil
}

func (b *Badger) scanExecutor(it *iterator.Iterator, namespace, keyPrefix string) {
	prefix := storageKey(namespace, keyPrefix)
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		badgerIt := txn.NewIterator(opts)
		defer badgerIt.Close()

		for badgerIt.Rewind(); badgerIt.Valid(); badgerIt.Next() {
			item := badgerIt.Item()
			if item.IsDeletedOrExpired() {
				continue
			}

			data, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			// strip the namespace prefix again
			key := string(item.Key())[len(namespace)+1:]

			select {
			case it.Next <- iterator.Entry{Key: key, Data: data}:
			case <-it.Done:
				return nil
			}
		}
		return nil
	})

	it.Finish(err)
}

// ReadOnly returns whether the storage is read only.
func (b *Badger) ReadOnly() bool {
	return false
}

// Maintain runs badger value log garbage collection.
func (b *Badger) Maintain(ctx context.Context) error {
	err := b.db.RunValueLogGC(0.7)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		return err
	}
	return nil
}

// Shutdown shuts down the storage.
func (b *Badger) Shutdown() error {
	return b.db.Close()
}
