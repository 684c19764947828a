package memo

import "io"

// Destination is a backup storage backend. Snapshots are whole store files
// identified by name; all operations stream via io.Reader/io.Writer so
// large stores are never held in memory.
type Destination interface {
	// Name returns the configured name of this destination.
	Name() string

	// Put stores a snapshot under the given name. Storing the same name
	// again replaces the previous snapshot.
	// size is the number of bytes that will be read from r.
	Put(name string, r io.Reader, size int64) error

	// Get retrieves a snapshot by name and writes it to w.
	Get(name string, w io.Writer) error

	// List returns the names of all stored snapshots in ascending order.
	List() ([]string, error)

	// Delete removes a snapshot by name.
	Delete(name string) error

	// ValidateSetup verifies that the destination is accessible and
	// properly configured.
	ValidateSetup() error
}
