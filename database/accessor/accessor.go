// Package accessor provides attribute level access to serialized record
// payloads without decoding them into typed instances.
package accessor

// Accessor provides an interface to access attributes of a record payload.
type Accessor interface {
	Set(key string, value interface{}) error
	Get(key string) (value interface{}, ok bool)
	GetString(key string) (value string, ok bool)
	GetStringArray(key string) (value []string, ok bool)
	GetInt(key string) (value int64, ok bool)
	GetFloat(key string) (value float64, ok bool)
	GetBool(key string) (value bool, ok bool)
	Exists(key string) bool
	Type() string
}
