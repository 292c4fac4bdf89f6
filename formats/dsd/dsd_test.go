package dsd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type complexTestStruct struct {
	I  int
	S  string
	Sp *string
	Sa []string
	B  byte
	Ba []byte
	M  map[string]string
}

func TestConversion(t *testing.T) {
	t.Parallel()

	subject := "banana"
	complexSubject := &complexTestStruct{
		I:  -1,
		S:  "banana",
		Sp: &subject,
		Sa: []string{"black", "white"},
		B:  0x23,
		Ba: []byte{0x23, 0x42},
		M:  map[string]string{"a": "b"},
	}

	for _, format := range []SerializationFormat{JSON, CBOR, MsgPack} {
		data, err := Dump(complexSubject, format)
		require.NoError(t, err, "Dump with format %d", format)
		assert.Equal(t, uint8(format), data[0], "format identifier must be prepended")

		loaded := &complexTestStruct{}
		_, err = Load(data, loaded)
		require.NoError(t, err, "Load with format %d", format)
		assert.Equal(t, complexSubject, loaded, "round trip with format %d", format)
	}
}

func TestAuto(t *testing.T) {
	t.Parallel()

	data, err := Dump("banana", AUTO)
	require.NoError(t, err)
	assert.Equal(t, uint8(STRING), data[0])

	loaded, err := Load(data, nil)
	require.NoError(t, err)
	assert.Equal(t, "banana", loaded)

	data, err = Dump([]byte{0x23}, AUTO)
	require.NoError(t, err)
	assert.Equal(t, uint8(BYTES), data[0])
}

func TestFormatMismatch(t *testing.T) {
	t.Parallel()

	_, err := Dump(42, STRING)
	assert.ErrorIs(t, err, ErrIncompatibleFormat)

	_, err = Dump("banana", SerializationFormat(99))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
