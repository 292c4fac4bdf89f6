package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowbase/rowbase/database/record"
	"github.com/rowbase/rowbase/formats/dsd"
)

func userDescriptor(t *testing.T, strict bool) *Descriptor {
	t.Helper()

	desc, err := NewMapDescriptor("users", []string{"name"}, []string{"email", "tags"}, dsd.JSON, strict)
	require.NoError(t, err)
	return desc
}

func TestDescriptorValidation(t *testing.T) {
	t.Parallel()

	_, err := NewMapDescriptor("", []string{"name"}, nil, dsd.JSON, false)
	assert.Error(t, err, "missing name must be rejected")

	_, err = NewMapDescriptor("users", nil, []string{"email"}, dsd.JSON, false)
	assert.Error(t, err, "empty identity key must be rejected")

	_, err = NewMapDescriptor("users", []string{"name"}, []string{"name"}, dsd.JSON, false)
	assert.Error(t, err, "duplicate attribute must be rejected")

	_, err = NewMapDescriptor("users", []string{"name"}, nil, dsd.SerializationFormat(3), false)
	assert.Error(t, err, "invalid format must be rejected")

	_, err = NewMapDescriptor("users", []string{"name"}, nil, dsd.STRING, false)
	assert.Error(t, err, "raw formats cannot encode attribute maps")

	_, err = NewMapDescriptor("users", []string{"name"}, nil, dsd.BYTES, false)
	assert.Error(t, err, "raw formats cannot encode attribute maps")

	_, err = NewDescriptor(Config{
		Name: "users",
		New:  func() record.Record { return NewMapRecord() },
		Attributes: []*Attribute{
			{Name: "name", KeyPart: true},
		},
	})
	assert.Error(t, err, "incomplete accessor table must be rejected")

	desc := userDescriptor(t, false)
	assert.Equal(t, "users", desc.Name())
	assert.Equal(t, []string{"name"}, desc.KeyAttributes())
	assert.True(t, desc.IsKeyAttribute("name"))
	assert.False(t, desc.IsKeyAttribute("email"))
	assert.Len(t, desc.Attributes(), 3)
}

func TestDeriveKey(t *testing.T) {
	t.Parallel()

	desc := userDescriptor(t, false)

	key, err := desc.DeriveKey(Params{"name": "chromatic", "email": "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "chromatic", key)

	// key values are escaped so they cannot collide or nest
	key, err = desc.DeriveKey(Params{"name": "a/b c"})
	require.NoError(t, err)
	assert.Equal(t, "a%2Fb%20c", key)

	_, err = desc.DeriveKey(Params{"email": "c@example.com"})
	var missingKey *MissingKeyError
	require.ErrorAs(t, err, &missingKey)
	assert.Equal(t, []string{"name"}, missingKey.Missing)

	// nil counts as absent
	_, err = desc.DeriveKey(Params{"name": nil})
	require.ErrorAs(t, err, &missingKey)

	// compound keys join parts in declared order
	compound, err := NewMapDescriptor("sessions", []string{"user", "device"}, nil, dsd.JSON, false)
	require.NoError(t, err)
	key, err = compound.DeriveKey(Params{"device": "phone", "user": "chromatic"})
	require.NoError(t, err)
	assert.Equal(t, "chromatic/phone", key)
}

func TestInstanceRoundTrip(t *testing.T) {
	t.Parallel()

	desc := userDescriptor(t, false)

	r, err := desc.CreateInstance(nil, Params{
		"name":  "chromatic",
		"email": "c@example.com",
		"tags":  []interface{}{"perl", "go"},
	})
	require.NoError(t, err)

	key, err := desc.DeriveInstanceKey(r)
	require.NoError(t, err)
	assert.Equal(t, "chromatic", key)

	payload, err := desc.DumpInstance(r)
	require.NoError(t, err)

	meta := &record.Meta{}
	meta.Update()
	loaded, err := desc.LoadInstance(nil, key, meta, desc.Format(), payload)
	require.NoError(t, err)

	name, ok := loaded.(*MapRecord).Get("name")
	require.True(t, ok)
	assert.Equal(t, "chromatic", name)
	tags, ok := loaded.(*MapRecord).Get("tags")
	require.True(t, ok)
	assert.Equal(t, []interface{}{"perl", "go"}, tags)
	assert.Equal(t, "users:chromatic", loaded.Key())
}

func TestCreateInstanceCopiesValues(t *testing.T) {
	t.Parallel()

	desc := userDescriptor(t, false)

	tags := []interface{}{"perl"}
	r, err := desc.CreateInstance(nil, Params{"name": "chromatic", "tags": tags})
	require.NoError(t, err)

	tags[0] = "mutated"
	stored, ok := r.(*MapRecord).Get("tags")
	require.True(t, ok)
	assert.Equal(t, []interface{}{"perl"}, stored, "instance must not alias caller values")
}

func TestApplyReplace(t *testing.T) {
	t.Parallel()

	desc := userDescriptor(t, false)

	r, err := desc.CreateInstance(nil, Params{"name": "chromatic", "email": "c@example.com"})
	require.NoError(t, err)

	// attributes not in params are cleared, not kept
	err = desc.ApplyReplace(r, Params{"name": "chromatic", "tags": []interface{}{"go"}})
	require.NoError(t, err)

	_, ok := r.(*MapRecord).Get("email")
	assert.False(t, ok, "omitted attribute must be cleared")
	tags, ok := r.(*MapRecord).Get("tags")
	require.True(t, ok)
	assert.Equal(t, []interface{}{"go"}, tags)

	// nil values count as undefined
	err = desc.ApplyReplace(r, Params{"name": "chromatic", "tags": nil})
	require.NoError(t, err)
	_, ok = r.(*MapRecord).Get("tags")
	assert.False(t, ok)
}

func TestUnknownAttributePolicy(t *testing.T) {
	t.Parallel()

	var mismatch *SchemaMismatchError

	// permissive: unknown names are ignored
	permissive := userDescriptor(t, false)
	r, err := permissive.CreateInstance(nil, Params{"name": "chromatic", "bogus": 1})
	require.NoError(t, err)
	_, ok := r.(*MapRecord).Get("bogus")
	assert.False(t, ok)
	err = permissive.ApplyReplace(r, Params{"name": "chromatic", "bogus": 1})
	require.NoError(t, err)

	// strict: unknown names are rejected
	strict := userDescriptor(t, true)
	_, err = strict.CreateInstance(nil, Params{"name": "chromatic", "bogus": 1})
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "bogus", mismatch.Attribute)

	r, err = strict.CreateInstance(nil, Params{"name": "chromatic"})
	require.NoError(t, err)
	err = strict.ApplyReplace(r, Params{"name": "chromatic", "bogus": 1})
	require.ErrorAs(t, err, &mismatch)
}
