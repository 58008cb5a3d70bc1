package storage

// Area is a string key/value storage area, the counterpart of a browser's local or session
// storage. Implementations must be safe for concurrent use; writers do not coordinate across
// processes, the last write wins.
type Area interface {
	// Get returns the value stored under key and whether it was present.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
}

// Scope names the lifetime of an area.
type Scope string

const (
	// ScopeLocal survives process restarts ("remember me").
	ScopeLocal Scope = "local"
	// ScopeSession lives as long as the running console.
	ScopeSession Scope = "session"
)
