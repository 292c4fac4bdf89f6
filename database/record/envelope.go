package record

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/rowbase/rowbase/formats/dsd"
	"github.com/rowbase/rowbase/formats/varint"
)

// envelope layout: version varint, length-prefixed meta block (cbor),
// serialization format identifier, payload.
const envelopeVersion = 1

// BuildEnvelope packs metadata, serialization format and payload into the
// byte representation stored in the underlying storage.
func BuildEnvelope(meta *Meta, format dsd.SerializationFormat, payload []byte) ([]byte, error) {
	if meta == nil {
		return nil, ErrMissingMeta
	}

	metaSection, err := cbor.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal meta section: %w", err)
	}

	data := varint.Pack8(envelopeVersion)
	data = append(data, varint.PrependLength(metaSection)...)
	data = append(data, varint.Pack8(uint8(format))...)
	data = append(data, payload...)
	return data, nil
}

// ParseEnvelope unpacks the byte representation of a stored record into its
// metadata, serialization format and payload.
func ParseEnvelope(data []byte) (*Meta, dsd.SerializationFormat, []byte, error) {
	version, offset, err := varint.Unpack8(data)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to parse version: %w", err)
	}
	if version != envelopeVersion {
		return nil, 0, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	metaSection, n, err := varint.GetNextBlock(data[offset:])
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to get meta section: %w", err)
	}
	offset += n

	meta := &Meta{}
	err = cbor.Unmarshal(metaSection, meta)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to unmarshal meta section: %w", err)
	}

	format, n, err := varint.Unpack8(data[offset:])
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to parse serialization format: %w", err)
	}
	offset += n

	return meta, dsd.SerializationFormat(format), data[offset:], nil
}
