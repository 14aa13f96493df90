package library

// KV is the key-value store the library persists into. All operations are
// synchronous and fallible; a failed write is a normal error return, not an
// exceptional condition.
type KV interface {
	// Get returns the value for key and whether the key exists.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any existing value.
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	// ListKeys returns all keys beginning with prefix.
	ListKeys(prefix string) ([]string, error)
}
