package backup

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"sync"

	"memo-go/internal/memo"
)

// MemoryDestination is an in-memory implementation of the Destination
// interface, useful for testing. Safe for concurrent use.
type MemoryDestination struct {
	name      string
	snapshots map[string][]byte
	mu        sync.RWMutex
}

// NewMemoryDestination creates a new in-memory destination with the given name.
func NewMemoryDestination(name string) *MemoryDestination {
	return &MemoryDestination{
		name:      name,
		snapshots: make(map[string][]byte),
	}
}

// Name returns the configured name of this destination.
func (d *MemoryDestination) Name() string {
	return d.name
}

// Put stores a snapshot under the given name, replacing any previous one.
func (d *MemoryDestination) Put(name string, r io.Reader, size int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.snapshots[name] = data
	return nil
}

// Get retrieves a snapshot by name.
func (d *MemoryDestination) Get(name string, w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	data, ok := d.snapshots[name]
	if !ok {
		return fmt.Errorf("snapshot not found: %s", name)
	}

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// List returns the names of all stored snapshots in ascending order.
func (d *MemoryDestination) List() ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.snapshots))
	for name := range d.snapshots {
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

// Delete removes a snapshot by name.
func (d *MemoryDestination) Delete(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.snapshots[name]; !ok {
		return fmt.Errorf("snapshot not found: %s", name)
	}

	delete(d.snapshots, name)
	return nil
}

// ValidateSetup always succeeds for an in-memory destination.
func (d *MemoryDestination) ValidateSetup() error {
	return nil
}

// Compile-time check that MemoryDestination implements memo.Destination
var _ memo.Destination = (*MemoryDestination)(nil)
