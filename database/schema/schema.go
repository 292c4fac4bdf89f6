// Package schema implements the schema descriptor: per-record-type metadata
// that enumerates a type's attributes, designates the subset forming its
// identity key and materializes instances from and to their stored form.
//
// Attribute access is table driven: every attribute carries get, set and
// clear functions that are defined once when the descriptor is built. There
// is no runtime reflection over record types.
package schema

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mitchellh/copystructure"
	"golang.org/x/exp/slices"

	"github.com/rowbase/rowbase/database/record"
	"github.com/rowbase/rowbase/formats/dsd"
)

// Params maps attribute names to values.
type Params map[string]interface{}

// Descriptor describes one record type.
type Descriptor struct {
	name   string
	format dsd.SerializationFormat
	strict bool

	newInstance func() record.Record

	attributes []*Attribute
	index      map[string]*Attribute
	keyNames   []string
}

// Config holds the definition of a record type for NewDescriptor.
type Config struct {
	// Name is the record type's table identity, used as the storage
	// namespace.
	Name string

	// Format is the serialization format for instance payloads. AUTO
	// selects the default format.
	Format dsd.SerializationFormat

	// Strict rejects unknown attribute names in parameter maps with a
	// SchemaMismatchError instead of ignoring them.
	Strict bool

	// New constructs an empty record instance of the described type.
	New func() record.Record

	// Attributes is the ordered attribute table. At least one attribute
	// must be marked as part of the identity key.
	Attributes []*Attribute
}

// NewDescriptor validates the given record type definition and builds its
// descriptor.
func NewDescriptor(c Config) (*Descriptor, error) {
	switch {
	case c.Name == "":
		return nil, fmt.Errorf("schema: missing name")
	case c.New == nil:
		return nil, fmt.Errorf("schema %s: missing instance constructor", c.Name)
	case len(c.Attributes) == 0:
		return nil, fmt.Errorf("schema %s: no attributes defined", c.Name)
	}

	format, ok := c.Format.ValidateSerializationFormat()
	if !ok {
		return nil, fmt.Errorf("schema %s: invalid serialization format %d", c.Name, c.Format)
	}
	switch format {
	case dsd.CBOR, dsd.JSON, dsd.MsgPack:
	default:
		// instance payloads are attribute maps, raw formats cannot hold them
		return nil, fmt.Errorf("schema %s: serialization format %d cannot encode attribute maps", c.Name, format)
	}

	d := &Descriptor{
		name:        c.Name,
		format:      format,
		strict:      c.Strict,
		newInstance: c.New,
		attributes:  c.Attributes,
		index:       make(map[string]*Attribute, len(c.Attributes)),
	}

	for _, attr := range c.Attributes {
		switch {
		case attr.Name == "":
			return nil, fmt.Errorf("schema %s: attribute without name", c.Name)
		case attr.Get == nil, attr.Set == nil, attr.Clear == nil:
			return nil, fmt.Errorf("schema %s: attribute %s has an incomplete accessor table", c.Name, attr.Name)
		}
		if _, ok := d.index[attr.Name]; ok {
			return nil, fmt.Errorf("schema %s: duplicate attribute %s", c.Name, attr.Name)
		}
		d.index[attr.Name] = attr
		if attr.KeyPart {
			d.keyNames = append(d.keyNames, attr.Name)
		}
	}

	if len(d.keyNames) == 0 {
		return nil, fmt.Errorf("schema %s: no identity key attributes defined", c.Name)
	}

	return d, nil
}

// Name returns the record type's table identity.
func (d *Descriptor) Name() string {
	return d.name
}

// Format returns the payload serialization format.
func (d *Descriptor) Format() dsd.SerializationFormat {
	return d.format
}

// Strict returns whether unknown attribute names are rejected.
func (d *Descriptor) Strict() bool {
	return d.strict
}

// Attributes returns the ordered attribute table. The returned slice must
// not be modified.
func (d *Descriptor) Attributes() []*Attribute {
	return d.attributes
}

// KeyAttributes returns the names of the identity-key attributes in
// declared order. The returned slice must not be modified.
func (d *Descriptor) KeyAttributes() []string {
	return d.keyNames
}

// Attribute returns the attribute with the given name.
func (d *Descriptor) Attribute(name string) (attr *Attribute, ok bool) {
	attr, ok = d.index[name]
	return
}

// IsKeyAttribute returns whether the given name is an identity-key attribute.
func (d *Descriptor) IsKeyAttribute(name string) bool {
	return slices.Contains(d.keyNames, name)
}

// DeriveKey derives the storage key from the identity-key values in params.
// Non-key parameters are ignored. Returns a MissingKeyError if any
// identity-key attribute is absent or nil.
func (d *Descriptor) DeriveKey(params Params) (string, error) {
	parts := make([]string, 0, len(d.keyNames))
	var missing []string

	for _, name := range d.keyNames {
		value, ok := params[name]
		if !ok || value == nil {
			missing = append(missing, name)
			continue
		}
		parts = append(parts, url.PathEscape(fmt.Sprint(value)))
	}

	if len(missing) > 0 {
		return "", &MissingKeyError{Schema: d.name, Missing: missing}
	}
	return strings.Join(parts, "/"), nil
}

// DeriveInstanceKey derives the storage key from the identity-key attributes
// of the given instance. Returns a MissingKeyError if any identity-key
// attribute is unset.
func (d *Descriptor) DeriveInstanceKey(r record.Record) (string, error) {
	params := make(Params, len(d.keyNames))
	for _, name := range d.keyNames {
		if value, ok := d.index[name].Get(r); ok {
			params[name] = value
		}
	}
	return d.DeriveKey(params)
}

// CreateInstance builds a new in-memory instance from params and binds it to
// the given gateway. The identity key is not validated at this point, the
// instance may be constructed with a partial or absent key. Parameter values
// are deep-copied, the caller may reuse the map.
func (d *Descriptor) CreateInstance(gw record.Gateway, params Params) (record.Record, error) {
	r := d.newInstance()
	r.SetGateway(gw)
	r.SetMeta(&record.Meta{})

	for name, value := range params {
		attr, ok := d.index[name]
		if !ok {
			if d.strict {
				return nil, &SchemaMismatchError{Schema: d.name, Attribute: name}
			}
			continue
		}
		if value == nil {
			continue
		}
		if err := d.setCopy(attr, r, value); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// LoadInstance materializes an instance from its stored payload and binds it
// to the given gateway.
func (d *Descriptor) LoadInstance(gw record.Gateway, key string, meta *record.Meta, format dsd.SerializationFormat, payload []byte) (record.Record, error) {
	values := make(map[string]interface{})
	if _, err := dsd.LoadAsFormat(payload, format, &values); err != nil {
		return nil, fmt.Errorf("schema %s: failed to decode payload: %w", d.name, err)
	}

	r := d.newInstance()
	r.SetGateway(gw)
	r.SetKey(d.name + ":" + key)
	r.SetMeta(meta)

	for name, value := range values {
		attr, ok := d.index[name]
		if !ok {
			// stored by a newer or divergent schema, skip
			continue
		}
		if value == nil {
			continue
		}
		if err := attr.Set(r, value); err != nil {
			return nil, fmt.Errorf("schema %s: failed to set attribute %s: %w", d.name, name, err)
		}
	}

	return r, nil
}

// DumpInstance serializes the attribute values of the instance into its
// payload form. Unset attributes are omitted from the payload.
func (d *Descriptor) DumpInstance(r record.Record) ([]byte, error) {
	values := make(map[string]interface{}, len(d.attributes))
	for _, attr := range d.attributes {
		if value, ok := attr.Get(r); ok {
			values[attr.Name] = value
		}
	}
	return dsd.DumpWithoutIdentifier(values, d.format)
}

// ApplyReplace applies params to an existing instance with full-replace
// semantics: every attribute with a defined value in params is set, every
// other attribute is explicitly cleared.
func (d *Descriptor) ApplyReplace(r record.Record, params Params) error {
	if d.strict {
		for name := range params {
			if _, ok := d.index[name]; !ok {
				return &SchemaMismatchError{Schema: d.name, Attribute: name}
			}
		}
	}

	for _, attr := range d.attributes {
		value, ok := params[attr.Name]
		if !ok || value == nil {
			attr.Clear(r)
			continue
		}
		if err := d.setCopy(attr, r, value); err != nil {
			return err
		}
	}
	return nil
}

func (d *Descriptor) setCopy(attr *Attribute, r record.Record, value interface{}) error {
	duplicate, err := copystructure.Copy(value)
	if err != nil {
		return fmt.Errorf("schema %s: failed to copy value for attribute %s: %w", d.name, attr.Name, err)
	}
	if err := attr.Set(r, duplicate); err != nil {
		return fmt.Errorf("schema %s: failed to set attribute %s: %w", d.name, attr.Name, err)
	}
	return nil
}
