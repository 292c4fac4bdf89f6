package schema

import (
	"fmt"
	"strings"
)

// MissingKeyError is returned when a key-dependent operation is invoked
// without all identity-key attributes being set.
type MissingKeyError struct {
	Schema  string
	Missing []string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("identity key of %s is incomplete: missing %s", e.Schema, strings.Join(e.Missing, ", "))
}

// SchemaMismatchError is returned by a strict descriptor when parameters
// reference an attribute name unknown to the schema.
type SchemaMismatchError struct {
	Schema    string
	Attribute string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema %s has no attribute %q", e.Schema, e.Attribute)
}
