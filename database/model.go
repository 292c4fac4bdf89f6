package database

import (
	"errors"

	"github.com/rowbase/rowbase/database/iterator"
	"github.com/rowbase/rowbase/database/record"
	"github.com/rowbase/rowbase/database/schema"
	"github.com/rowbase/rowbase/log"
)

// A Model is the persistence gateway for one record type. It binds the
// record type's schema descriptor to a registered database and orchestrates
// the record lifecycle. The store handle is shared, the same database backs
// any number of models for different record types.
//
// A Model is immutable after construction.
type Model struct {
	schema *schema.Descriptor
	db     *Controller
	cache  *modelCache
}

// ModelOptions holds optional settings for a Model.
type ModelOptions struct {
	// CacheSize enables a read-through cache for loads with the given
	// number of entries. The cache only observes writes going through this
	// model. Do not enable it when other writers modify the same record
	// type through the shared store.
	CacheSize int
}

// NewModel creates the persistence gateway for the record type described by
// desc, backed by the registered database with the given name.
func NewModel(databaseName string, desc *schema.Descriptor, opts *ModelOptions) (*Model, error) {
	if opts == nil {
		opts = &ModelOptions{}
	}

	db, err := getController(databaseName)
	if err != nil {
		return nil, err
	}

	m := &Model{
		schema: desc,
		db:     db,
	}
	if opts.CacheSize > 0 {
		m.cache = newModelCache(opts.CacheSize)
	}
	return m, nil
}

// Schema returns the schema descriptor of the model's record type.
func (m *Model) Schema() *schema.Descriptor {
	return m.schema
}

// Construct builds a record instance in memory from params without touching
// the store. The identity key is not validated at this point, an instance
// may be constructed with a partial or absent key.
func (m *Model) Construct(params schema.Params) (record.Record, error) {
	return m.schema.CreateInstance(m, params)
}

// Create constructs a record instance from params and immediately persists
// it. If params lacks identity-key values, the failure surfaces as a
// MissingKeyError at persist time.
func (m *Model) Create(params schema.Params) (record.Record, error) {
	r, err := m.Construct(params)
	if err != nil {
		return nil, err
	}
	err = m.SaveInstance(r)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Load returns the record addressed by the identity-key values in
// keyParams. Values of non-key attributes in keyParams are ignored for the
// lookup. Returns ErrNotFound if no record exists at that key.
func (m *Model) Load(keyParams schema.Params) (record.Record, error) {
	key, err := m.schema.DeriveKey(keyParams)
	if err != nil {
		return nil, err
	}
	return m.load(key)
}

func (m *Model) load(key string) (record.Record, error) {
	data, err := m.getData(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Op: "load", Key: m.schema.Name() + ":" + key, Err: err}
	}

	meta, format, payload, err := record.ParseEnvelope(data)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Key: m.schema.Name() + ":" + key, Err: err}
	}
	if meta.IsDeleted() {
		return nil, ErrNotFound
	}

	return m.schema.LoadInstance(m, key, meta, format, payload)
}

// LoadOrCreate loads the record addressed by the key-bearing subset of
// params. On a hit the stored record is returned as-is, non-key values in
// params are ignored. On a miss the record is created from the full
// parameter set.
//
// The load-then-create sequence is not atomic: two concurrent calls with
// the same key may both observe a miss and both create, the later write
// wins without an error being raised to the loser.
func (m *Model) LoadOrCreate(params schema.Params) (record.Record, error) {
	r, err := m.Load(params)
	switch {
	case err == nil:
		return r, nil
	case errors.Is(err, ErrNotFound):
		return m.Create(params)
	default:
		return nil, err
	}
}

// Save upserts the record addressed by the key-bearing subset of params.
// On a hit, every schema attribute with a defined value in params is set on
// the loaded record and every other attribute is explicitly cleared, so an
// attribute omitted from params is wiped, not left as stored. The record is
// then persisted and returned. On a miss, the record is created from the
// full parameter set.
func (m *Model) Save(params schema.Params) (record.Record, error) {
	r, err := m.Load(params)
	switch {
	case err == nil:
		err = m.schema.ApplyReplace(r, params)
		if err != nil {
			return nil, err
		}
		err = m.SaveInstance(r)
		if err != nil {
			return nil, err
		}
		return r, nil
	case errors.Is(err, ErrNotFound):
		return m.Create(params)
	default:
		return nil, err
	}
}

// LoadAndUpdateOrCreate is the explicit name of Save.
func (m *Model) LoadAndUpdateOrCreate(params schema.Params) (record.Record, error) {
	return m.Save(params)
}

// Exists returns whether a record exists at the identity key given in
// keyParams.
func (m *Model) Exists(keyParams schema.Params) (bool, error) {
	_, err := m.Load(keyParams)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Delete removes the record addressed by the identity-key values in
// keyParams. Deleting a non-existent record is not an error.
func (m *Model) Delete(keyParams schema.Params) error {
	key, err := m.schema.DeriveKey(keyParams)
	if err != nil {
		return err
	}
	return m.deleteData(key)
}

// Scan returns an iterator over all records of the model's record type
// whose storage key starts with keyPrefix. An empty prefix scans the full
// table. Entries are yielded raw, use Unwrap to materialize an instance.
func (m *Model) Scan(keyPrefix string) (*iterator.Iterator, error) {
	it, err := m.db.Scan(m.schema.Name(), keyPrefix)
	if err != nil {
		return nil, &PersistenceError{Op: "scan", Key: m.schema.Name() + ":" + keyPrefix, Err: err}
	}
	return it, nil
}

// Wrap converts a scan entry into a raw record wrapper.
func (m *Model) Wrap(entry iterator.Entry) (*record.Wrapper, error) {
	return record.NewRawWrapper(m.schema.Name(), entry.Key, entry.Data)
}

// Unwrap materializes a record instance from a scan entry.
func (m *Model) Unwrap(entry iterator.Entry) (record.Record, error) {
	meta, format, payload, err := record.ParseEnvelope(entry.Data)
	if err != nil {
		return nil, err
	}
	if meta.IsDeleted() {
		return nil, ErrNotFound
	}
	return m.schema.LoadInstance(m, entry.Key, meta, format, payload)
}

// SaveInstance persists the given record instance. It implements
// record.Gateway and also backs Create and Save.
func (m *Model) SaveInstance(r record.Record) error {
	if !r.KeyIsSet() {
		key, err := m.schema.DeriveInstanceKey(r)
		if err != nil {
			return err
		}
		r.SetKey(m.schema.Name() + ":" + key)
	}

	if r.Meta() == nil {
		r.SetMeta(&record.Meta{})
	}
	r.Meta().Update()

	payload, err := m.schema.DumpInstance(r)
	if err != nil {
		return err
	}
	data, err := record.BuildEnvelope(r.Meta(), m.schema.Format(), payload)
	if err != nil {
		return err
	}

	err = m.db.Put(m.schema.Name(), r.DatabaseKey(), data)
	if err != nil {
		return &PersistenceError{Op: "save", Key: r.Key(), Err: err}
	}

	m.cacheUpdate(r.DatabaseKey(), data)
	log.Tracef("database: saved %s", r.Key())
	return nil
}

// DeleteInstance removes the given record instance from the store. It
// implements record.Gateway.
func (m *Model) DeleteInstance(r record.Record) error {
	if !r.KeyIsSet() {
		key, err := m.schema.DeriveInstanceKey(r)
		if err != nil {
			return err
		}
		r.SetKey(m.schema.Name() + ":" + key)
	}
	return m.deleteData(r.DatabaseKey())
}

func (m *Model) deleteData(key string) error {
	err := m.db.Delete(m.schema.Name(), key)
	if err != nil {
		return &PersistenceError{Op: "delete", Key: m.schema.Name() + ":" + key, Err: err}
	}

	m.cacheEvict(key)
	log.Tracef("database: deleted %s:%s", m.schema.Name(), key)
	return nil
}
