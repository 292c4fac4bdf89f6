// Package record defines the contract of a single database record: a
// materialized row of one record type, addressed by the database name
// (namespace) of its type and the key derived from its identity attributes.
package record

// Record provides an interface for uniformly handling database records.
type Record interface {
	Key() string // name:key
	KeyIsSet() bool
	DatabaseName() string
	DatabaseKey() string
	SetKey(key string)

	Meta() *Meta
	SetMeta(meta *Meta)

	// Gateway returns the gateway that produced the record, if any. It is
	// used to route instance level save and delete operations.
	Gateway() Gateway
	SetGateway(gw Gateway)

	IsWrapped() bool
}

// Gateway is the back-reference of a record to the model that produced it.
type Gateway interface {
	SaveInstance(r Record) error
	DeleteInstance(r Record) error
}

// Save persists the record via the gateway that produced it.
func Save(r Record) error {
	gw := r.Gateway()
	if gw == nil {
		return ErrNotBound
	}
	return gw.SaveInstance(r)
}

// Delete removes the record from the store via the gateway that produced it.
func Delete(r Record) error {
	gw := r.Gateway()
	if gw == nil {
		return ErrNotBound
	}
	return gw.DeleteInstance(r)
}
