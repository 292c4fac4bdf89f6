package record

import "time"

// Meta holds record metadata.
type Meta struct {
	Created  int64 `cbor:"c" json:"c"`
	Modified int64 `cbor:"m" json:"m"`
	Deleted  int64 `cbor:"d" json:"d"`
}

// Update sets the modified timestamp and the created timestamp, if not yet set.
func (m *Meta) Update() {
	now := time.Now().Unix()
	m.Modified = now
	if m.Created == 0 {
		m.Created = now
	}
}

// Reset resets all metadata, so the record is treated as new.
func (m *Meta) Reset() {
	m.Created = 0
	m.Modified = 0
	m.Deleted = 0
}

// Delete marks the record as deleted.
func (m *Meta) Delete() {
	m.Deleted = time.Now().Unix()
}

// IsDeleted returns whether the record is marked as deleted.
func (m *Meta) IsDeleted() bool {
	return m.Deleted > 0
}
