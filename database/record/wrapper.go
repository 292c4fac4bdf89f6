package record

import (
	"github.com/rowbase/rowbase/database/accessor"
	"github.com/rowbase/rowbase/formats/dsd"
)

// Wrapper holds a stored record in its raw serialized form. Scans yield
// wrappers so that entries can be inspected and filtered without decoding
// them into typed instances.
type Wrapper struct {
	Base
	Format dsd.SerializationFormat
	Data   []byte
}

// NewRawWrapper returns a wrapper for the given raw storage data.
func NewRawWrapper(dbName, dbKey string, data []byte) (*Wrapper, error) {
	meta, format, payload, err := ParseEnvelope(data)
	if err != nil {
		return nil, err
	}

	w := &Wrapper{
		Format: format,
		Data:   payload,
	}
	w.SetKey(dbName + ":" + dbKey)
	w.SetMeta(meta)
	return w, nil
}

// IsWrapped returns whether the record is a raw wrapper.
func (w *Wrapper) IsWrapped() bool {
	return true
}

// Envelope re-packs the wrapper into its raw storage representation.
func (w *Wrapper) Envelope() ([]byte, error) {
	return BuildEnvelope(w.Meta(), w.Format, w.Data)
}

// GetAccessor returns an accessor for the wrapped payload, if the
// serialization format supports synthetic access. Returns nil otherwise.
func (w *Wrapper) GetAccessor() accessor.Accessor {
	if w.Format == dsd.JSON && len(w.Data) > 0 {
		return accessor.NewJSONBytesAccessor(&w.Data)
	}
	return nil
}
