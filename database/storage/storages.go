package storage

import (
	"errors"
	"fmt"
	"sync"
)

// A Factory creates a new storage of its type.
type Factory func(name, location string) (Interface, error)

var (
	storages     = make(map[string]Factory)
	storagesLock sync.Mutex
)

// Register registers a new storage type.
func Register(name string, factory Factory) error {
	storagesLock.Lock()
	defer storagesLock.Unlock()

	_, ok := storages[name]
	if ok {
		return errors.New("factory for this type already exists")
	}

	storages[name] = factory
	return nil
}

// CreateStorage starts a new storage of the given type for the database with
// the given name at location.
func CreateStorage(name, storageType, location string) (Interface, error) {
	storagesLock.Lock()
	defer storagesLock.Unlock()

	factory, ok := storages[storageType]
	if !ok {
		return nil, fmt.Errorf("storage type %q does not exist", storageType)
	}

	return factory(name, location)
}
