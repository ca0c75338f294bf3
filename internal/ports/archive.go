package ports

import "context"

// Record is a single archive entry matched by a lookup.
type Record struct {
	Key  string
	Data []byte
}

// ArchiveEngine is a read-only query-by-key view over one archive: either the
// text-indexed dictionary or the binary resource storage. Engines are loaded
// once at startup and are safe for concurrent lookups.
type ArchiveEngine interface {
	// Lookup returns every record stored under key, in file order. When fold
	// is true the comparison is case-insensitive.
	Lookup(ctx context.Context, key string, fold bool) ([]Record, error)
	Name() string
	Close() error
}
