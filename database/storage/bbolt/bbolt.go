// Package bbolt provides a bbolt backed storage backend. Every namespace is
// stored in its own bucket.
package bbolt

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/rowbase/rowbase/database/iterator"
	"github.com/rowbase/rowbase/database/storage"
)

// BBolt storage.
type BBolt struct {
	name string
	db   *bbolt.DB
}

func init() {
	_ = storage.Register("bbolt", NewBBolt)
}

// NewBBolt opens or creates a bbolt database at location.
func NewBBolt(name, location string) (storage.Interface, error) {
	db, err := bbolt.Open(filepath.Join(location, "db.bbolt"), 0o600, nil)
	if err != nil {
		return nil, err
	}

	return &BBolt{
		name: name,
		db:   db,
	}, nil
}

// Get returns the data stored at key within namespace.
func (b *BBolt) Get(namespace, key string) ([]byte, error) {
	var duplicate []byte

	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(namespace))
		if bucket == nil {
			return storage.ErrNotFound
		}
		value := bucket.Get([]byte(key))
		if value == nil {
			return storage.ErrNotFound
		}

		// value is only valid within the transaction
		duplicate = make([]byte, len(value))
		copy(duplicate, value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return duplicate, nil
}

// Put stores data at key within namespace.
func (b *BBolt) Put(namespace, key string, data []byte) error {
	if key == "" {
		return storage.ErrInvalidKey
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(namespace))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), data)
	})
}

// Delete removes the entry at key within namespace.
func (b *BBolt) Delete(namespace, key string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(namespace))
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(key))
	})
}

// Scan returns an iterator over all entries of namespace with the given key prefix.
func (b *BBolt) Scan(namespace, keyPrefix string) (*iterator.Iterator, error) {
	it := iterator.New()
	go b.scanExecutor(it, namespace, keyPrefix)
	return it, nil
}

func (b *BBolt) scanExecutor(it *iterator.Iterator, namespace, keyPrefix string) {
	prefix := []byte(keyPrefix)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(namespace))
		if bucket == nil {
			return nil
		}

		c := bucket.Cursor()
		for key, value := c.Seek(prefix); key != nil; key, value = c.Next() {
			if !bytes.HasPrefix(key, prefix) {
				return nil
			}

			duplicate := make([]byte, len(value))
			copy(duplicate, value)

			select {
			case it.Next <- iterator.Entry{Key: string(key), Data: duplicate}:
			case <-it.Done:
				return nil
			}
		}
		return nil
	})

	it.Finish(err)
}

// ReadOnly returns whether the storage is read only.
func (b *BBolt) ReadOnly() bool {
	return false
}

// Maintain syncs the database to disk.
func (b *BBolt) Maintain(_ context.Context) error {
	return b.db.Sync()
}

// Shutdown shuts down the storage.
func (b *BBolt) Shutdown() error {
	err := b.db.Close()
	if err != nil && !errors.Is(err, bbolt.ErrDatabaseNotOpen) {
		return err
	}
	return nil
}
