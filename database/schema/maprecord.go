package schema

import (
	"github.com/rowbase/rowbase/database/record"
	"github.com/rowbase/rowbase/formats/dsd"
)

// MapRecord is a generic record instance backed by an attribute map. It
// serves record types that do not warrant a dedicated struct type.
type MapRecord struct {
	record.Base
	values map[string]interface{}
}

// NewMapRecord creates an empty MapRecord.
func NewMapRecord() *MapRecord {
	return &MapRecord{
		values: make(map[string]interface{}),
	}
}

// Get returns the value of the named attribute and whether it is set.
func (mr *MapRecord) Get(name string) (value interface{}, ok bool) {
	value, ok = mr.values[name]
	return
}

// Set sets the named attribute.
func (mr *MapRecord) Set(name string, value interface{}) {
	mr.values[name] = value
}

// Clear unsets the named attribute.
func (mr *MapRecord) Clear(name string) {
	delete(mr.values, name)
}

// NewMapDescriptor builds a descriptor for a record type backed by
// MapRecord instances. keyAttrs and attrs together form the ordered
// attribute table, with keyAttrs forming the identity key.
func NewMapDescriptor(name string, keyAttrs, attrs []string, format dsd.SerializationFormat, strict bool) (*Descriptor, error) {
	attributes := make([]*Attribute, 0, len(keyAttrs)+len(attrs))
	for _, name := range keyAttrs {
		attributes = append(attributes, mapAttribute(name, true))
	}
	for _, name := range attrs {
		attributes = append(attributes, mapAttribute(name, false))
	}

	return NewDescriptor(Config{
		Name:   name,
		Format: format,
		Strict: strict,
		New: func() record.Record {
			return NewMapRecord()
		},
		Attributes: attributes,
	})
}

func mapAttribute(name string, keyPart bool) *Attribute {
	return &Attribute{
		Name:    name,
		KeyPart: keyPart,
		Get: func(r record.Record) (interface{}, bool) {
			return r.(*MapRecord).Get(name)
		},
		Set: func(r record.Record, value interface{}) error {
			r.(*MapRecord).Set(name, value)
			return nil
		},
		Clear: func(r record.Record) {
			r.(*MapRecord).Clear(name)
		},
	}
}
