package dsd

import "errors"

// Errors.
var (
	ErrIncompatibleFormat = errors.New("dsd: format is incompatible with operation")
	ErrNoMoreSpace        = errors.New("dsd: no more space left after reading dsd type")
	ErrUnknownFormat      = errors.New("dsd: format is unknown")
)

// SerializationFormat defines a supported serialization format.
type SerializationFormat uint8

// Serialization formats.
const (
	AUTO    SerializationFormat = 0
	STRING  SerializationFormat = 83 // S
	BYTES   SerializationFormat = 88 // X
	CBOR    SerializationFormat = 67 // C
	JSON    SerializationFormat = 74 // J
	MsgPack SerializationFormat = 77 // M
)

// DefaultSerializationFormat is used when AUTO is requested for a struct type.
var DefaultSerializationFormat = JSON

// ValidateSerializationFormat validates if the format is for serialization,
// and returns the validated format as well as the result of the validation.
// If called on the AUTO format, it returns the default serialization format.
func (format SerializationFormat) ValidateSerializationFormat() (validated SerializationFormat, ok bool) {
	switch format {
	case AUTO:
		return DefaultSerializationFormat, true
	case STRING, BYTES, CBOR, JSON, MsgPack:
		return format, true
	default:
		return 0, false
	}
}
