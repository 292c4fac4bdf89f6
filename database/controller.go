package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/VictoriaMetrics/metrics"

	"github.com/rowbase/rowbase/database/iterator"
	"github.com/rowbase/rowbase/database/storage"
)

// A Controller mediates access to one storage. It is shared by all models
// backed by the same registered database.
type Controller struct {
	database *Database
	storage  storage.Interface

	getsTotal    *metrics.Counter
	putsTotal    *metrics.Counter
	deletesTotal *metrics.Counter
	scansTotal   *metrics.Counter
}

// newController creates a new controller for a storage.
func newController(db *Database, storageInt storage.Interface) *Controller {
	return &Controller{
		database:     db,
		storage:      storageInt,
		getsTotal:    opsCounter(db.Name, "get"),
		putsTotal:    opsCounter(db.Name, "put"),
		deletesTotal: opsCounter(db.Name, "delete"),
		scansTotal:   opsCounter(db.Name, "scan"),
	}
}

func opsCounter(db, op string) *metrics.Counter {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`rowbase_storage_ops_total{db=%q,op=%q}`, db, op))
}

// ReadOnly returns whether the storage is read only.
func (c *Controller) ReadOnly() bool {
	return c.storage.ReadOnly()
}

// Get returns the raw data stored at key within namespace.
func (c *Controller) Get(namespace, key string) ([]byte, error) {
	if shuttingDown.IsSet() {
		return nil, ErrShuttingDown
	}
	c.getsTotal.Inc()

	data, err := c.storage.Get(namespace, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Put stores raw data at key within namespace.
func (c *Controller) Put(namespace, key string, data []byte) error {
	if shuttingDown.IsSet() {
		return ErrShuttingDown
	}
	if c.ReadOnly() {
		return ErrReadOnly
	}
	c.putsTotal.Inc()

	return c.storage.Put(namespace, key, data)
}

// Delete removes the entry at key within namespace.
func (c *Controller) Delete(namespace, key string) error {
	if shuttingDown.IsSet() {
		return ErrShuttingDown
	}
	if c.ReadOnly() {
		return ErrReadOnly
	}
	c.deletesTotal.Inc()

	return c.storage.Delete(namespace, key)
}

// Scan returns an iterator over all entries of namespace with the given key prefix.
func (c *Controller) Scan(namespace, keyPrefix string) (*iterator.Iterator, error) {
	if shuttingDown.IsSet() {
		return nil, ErrShuttingDown
	}
	c.scansTotal.Inc()

	return c.storage.Scan(namespace, keyPrefix)
}

// Maintain runs the Maintain method on the storage.
func (c *Controller) Maintain(ctx context.Context) error {
	return c.storage.Maintain(ctx)
}

// Shutdown shuts down the storage.
func (c *Controller) Shutdown() error {
	return c.storage.Shutdown()
}
