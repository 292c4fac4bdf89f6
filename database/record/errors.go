package record

import "errors"

// Common error definitions.
var (
	ErrMissingMeta        = errors.New("missing meta")
	ErrNotBound           = errors.New("record is not bound to a gateway")
	ErrUnsupportedVersion = errors.New("record version not supported")
)
