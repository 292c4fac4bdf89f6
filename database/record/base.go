package record

import (
	"strings"
)

// Base provides a quick way to comply with the Record interface. Record
// types embed it and gain key, meta and gateway handling.
type Base struct {
	dbName  string
	dbKey   string
	meta    *Meta
	gateway Gateway
}

// SetKey sets the key on the record. The key may only be set once and should
// only be called by the gateway or the schema descriptor.
func (b *Base) SetKey(key string) {
	b.dbName, b.dbKey = ParseKey(key)
}

// Key returns the key of the record in the form of "name:key".
func (b *Base) Key() string {
	return b.dbName + ":" + b.dbKey
}

// KeyIsSet returns whether the key is set.
func (b *Base) KeyIsSet() bool {
	return b.dbName != "" && b.dbKey != ""
}

// DatabaseName returns the database name (namespace) of the record.
func (b *Base) DatabaseName() string {
	return b.dbName
}

// DatabaseKey returns the database key of the record.
func (b *Base) DatabaseKey() string {
	return b.dbKey
}

// Meta returns the metadata object of the record.
func (b *Base) Meta() *Meta {
	return b.meta
}

// SetMeta sets the metadata of the record.
func (b *Base) SetMeta(meta *Meta) {
	b.meta = meta
}

// Gateway returns the gateway the record is bound to, or nil.
func (b *Base) Gateway() Gateway {
	return b.gateway
}

// SetGateway binds the record to the gateway that produced it.
func (b *Base) SetGateway(gw Gateway) {
	b.gateway = gw
}

// IsWrapped returns whether the record is a raw wrapper.
func (b *Base) IsWrapped() bool {
	return false
}

// ParseKey splits a key in the form of "name:key" into the database name and
// the database key.
func ParseKey(key string) (dbName, dbKey string) {
	splitted := strings.SplitN(key, ":", 2)
	if len(splitted) < 2 {
		return splitted[0], ""
	}
	return splitted[0], splitted[1]
}
