// Package storage defines the contract a persistent associative store must
// fulfill in order to back a database, as well as the registry of available
// storage backends. Storages only deal in raw bytes, addressed by a
// namespace (the record type's table identity) and a key within it.
package storage

import (
	"context"

	"github.com/rowbase/rowbase/database/iterator"
)

// Interface defines the storage API.
type Interface interface {
	// Get returns the data stored at key within namespace.
	// Returns ErrNotFound if there is no entry at that key.
	Get(namespace, key string) ([]byte, error)

	// Put stores data at key within namespace, overwriting an existing entry.
	Put(namespace, key string, data []byte) error

	// Delete removes the entry at key within namespace. Deleting a
	// non-existent entry is not an error.
	Delete(namespace, key string) error

	// Scan returns an iterator over all entries of namespace whose key
	// starts with keyPrefix. An empty prefix matches the full namespace.
	Scan(namespace, keyPrefix string) (*iterator.Iterator, error)

	// ReadOnly returns whether the storage is read only.
	ReadOnly() bool

	// Maintain runs a maintenance operation on the storage.
	Maintain(ctx context.Context) error

	// Shutdown shuts down the storage.
	Shutdown() error
}
