package schema

import (
	"github.com/rowbase/rowbase/database/record"
)

// Attribute describes one named attribute of a record type and provides
// access to it on record instances. The accessor functions form a static
// per-type table built once at schema definition time.
type Attribute struct {
	// Name is the attribute name used in parameter maps and payloads.
	Name string

	// KeyPart marks the attribute as part of the identity key.
	KeyPart bool

	// Get returns the attribute value of the instance and whether it is set.
	Get func(r record.Record) (interface{}, bool)

	// Set sets the attribute on the instance.
	Set func(r record.Record, value interface{}) error

	// Clear unsets the attribute on the instance.
	Clear func(r record.Record)
}
