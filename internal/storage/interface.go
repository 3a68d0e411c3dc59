package storage

// Provider is the persistent key-value contract every backend implements.
// Higher-level records (trigger settings, checklist, streak) are JSON blobs
// stored under well-known keys and merged over defaults on read.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Records
	Get(key string) (string, bool, error)
	Set(key, value string) error
	MultiGet(keys []string) (map[string]string, error)
	Delete(key string) error

	// Utils
	GetConfigPath() string
}
