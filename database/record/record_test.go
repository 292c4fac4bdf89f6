package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowbase/rowbase/formats/dsd"
)

func TestKeyHandling(t *testing.T) {
	t.Parallel()

	b := &Base{}
	assert.False(t, b.KeyIsSet())

	b.SetKey("users:chromatic")
	assert.True(t, b.KeyIsSet())
	assert.Equal(t, "users", b.DatabaseName())
	assert.Equal(t, "chromatic", b.DatabaseKey())
	assert.Equal(t, "users:chromatic", b.Key())

	// keys may contain the separator
	b.SetKey("users:a:b")
	assert.Equal(t, "a:b", b.DatabaseKey())

	dbName, dbKey := ParseKey("users")
	assert.Equal(t, "users", dbName)
	assert.Equal(t, "", dbKey)
}

func TestEnvelope(t *testing.T) {
	t.Parallel()

	meta := &Meta{}
	meta.Update()
	payload := []byte(`{"name":"chromatic","email":"c@example.com"}`)

	data, err := BuildEnvelope(meta, dsd.JSON, payload)
	require.NoError(t, err)

	parsedMeta, format, parsedPayload, err := ParseEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, meta, parsedMeta)
	assert.Equal(t, dsd.JSON, format)
	assert.Equal(t, payload, parsedPayload)

	_, err = BuildEnvelope(nil, dsd.JSON, payload)
	assert.ErrorIs(t, err, ErrMissingMeta)

	// future envelope versions are rejected, not misparsed
	bad := append([]byte{9}, data[1:]...)
	_, _, _, err = ParseEnvelope(bad)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestWrapper(t *testing.T) {
	t.Parallel()

	meta := &Meta{}
	meta.Update()
	payload := []byte(`{"name":"chromatic","score":42}`)
	data, err := BuildEnvelope(meta, dsd.JSON, payload)
	require.NoError(t, err)

	w, err := NewRawWrapper("users", "chromatic", data)
	require.NoError(t, err)
	assert.True(t, w.IsWrapped())
	assert.Equal(t, "users:chromatic", w.Key())
	assert.Equal(t, dsd.JSON, w.Format)

	acc := w.GetAccessor()
	require.NotNil(t, acc)
	name, ok := acc.GetString("name")
	require.True(t, ok)
	assert.Equal(t, "chromatic", name)
	score, ok := acc.GetInt("score")
	require.True(t, ok)
	assert.Equal(t, int64(42), score)

	// non-json payloads have no synthetic access
	data, err = BuildEnvelope(meta, dsd.CBOR, []byte{0xa0})
	require.NoError(t, err)
	w, err = NewRawWrapper("users", "chromatic", data)
	require.NoError(t, err)
	assert.Nil(t, w.GetAccessor())

	// round trip back to storage form
	reEncoded, err := w.Envelope()
	require.NoError(t, err)
	assert.Equal(t, data, reEncoded)
}

func TestMeta(t *testing.T) {
	t.Parallel()

	meta := &Meta{}
	assert.False(t, meta.IsDeleted())

	meta.Update()
	assert.NotZero(t, meta.Created)
	assert.Equal(t, meta.Created, meta.Modified)

	created := meta.Created
	meta.Update()
	assert.Equal(t, created, meta.Created, "Update must not change Created")

	meta.Delete()
	assert.True(t, meta.IsDeleted())

	meta.Reset()
	assert.Zero(t, meta.Created)
	assert.False(t, meta.IsDeleted())
}

func TestGatewayRouting(t *testing.T) {
	t.Parallel()

	b := &Base{}
	assert.ErrorIs(t, Save(b), ErrNotBound)
	assert.ErrorIs(t, Delete(b), ErrNotBound)
}
