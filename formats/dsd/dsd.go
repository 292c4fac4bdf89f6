// Package dsd provides the "dynamic structured data" format, which handles
// values of different serialization formats uniformly by prepending a single
// format identifier byte to the serialized data.
package dsd

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/rowbase/rowbase/formats/varint"
)

// Load loads an object from the data stream, detecting the format from the
// format identifier at the beginning of the data.
func Load(data []byte, t interface{}) (interface{}, error) {
	format, read, err := varint.Unpack8(data)
	if err != nil {
		return nil, fmt.Errorf("dsd: failed to parse format: %w", err)
	}
	if len(data) <= read {
		return nil, ErrNoMoreSpace
	}

	return LoadAsFormat(data[read:], SerializationFormat(format), t)
}

// LoadAsFormat loads an object from the data stream with the given format.
func LoadAsFormat(data []byte, format SerializationFormat, t interface{}) (interface{}, error) {
	switch format {
	case STRING:
		return string(data), nil
	case BYTES:
		return data, nil
	case JSON:
		err := json.Unmarshal(data, t)
		if err != nil {
			return nil, fmt.Errorf("dsd: failed to unpack json: %w, data: %s", err, data)
		}
		return t, nil
	case CBOR:
		err := cbor.Unmarshal(data, t)
		if err != nil {
			return nil, fmt.Errorf("dsd: failed to unpack cbor: %w", err)
		}
		return t, nil
	case MsgPack:
		err := msgpack.Unmarshal(data, t)
		if err != nil {
			return nil, fmt.Errorf("dsd: failed to unpack msgpack: %w", err)
		}
		return t, nil
	default:
		return nil, ErrUnknownFormat
	}
}

// Dump stores the object in the given format, prepending the format
// identifier byte.
func Dump(t interface{}, format SerializationFormat) ([]byte, error) {
	if format == AUTO {
		switch t.(type) {
		case string:
			format = STRING
		case []byte:
			format = BYTES
		default:
			format = DefaultSerializationFormat
		}
	}

	data, err := DumpWithoutIdentifier(t, format)
	if err != nil {
		return nil, err
	}

	return append(varint.Pack8(uint8(format)), data...), nil
}

// DumpWithoutIdentifier stores the object in the given format, without the
// format identifier byte.
func DumpWithoutIdentifier(t interface{}, format SerializationFormat) ([]byte, error) {
	format, ok := format.ValidateSerializationFormat()
	if !ok {
		return nil, ErrUnknownFormat
	}

	switch format {
	case STRING:
		s, ok := t.(string)
		if !ok {
			return nil, ErrIncompatibleFormat
		}
		return []byte(s), nil
	case BYTES:
		b, ok := t.([]byte)
		if !ok {
			return nil, ErrIncompatibleFormat
		}
		return b, nil
	case JSON:
		data, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("dsd: failed to pack json: %w", err)
		}
		return data, nil
	case CBOR:
		data, err := cbor.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("dsd: failed to pack cbor: %w", err)
		}
		return data, nil
	case MsgPack:
		data, err := msgpack.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("dsd: failed to pack msgpack: %w", err)
		}
		return data, nil
	default:
		return nil, ErrUnknownFormat
	}
}
