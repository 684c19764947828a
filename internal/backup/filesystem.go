package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"memo-go/internal/memo"
)

// FilesystemDestination stores snapshots as plain files in a directory,
// one file per snapshot, named by the snapshot name.
type FilesystemDestination struct {
	name string
	root string
}

// NewFilesystemDestination creates a destination rooted at the given path.
func NewFilesystemDestination(name, root string) (*FilesystemDestination, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating destination directory: %w", err)
	}

	return &FilesystemDestination{
		name: name,
		root: root,
	}, nil
}

// Name returns the configured name of this destination.
func (d *FilesystemDestination) Name() string {
	return d.name
}

// Put stores a snapshot under the given name using an atomic write
// (temp file + rename), so a crash never leaves a partial snapshot
// under a valid name.
func (d *FilesystemDestination) Put(name string, r io.Reader, size int64) error {
	if err := validateSnapshotName(name); err != nil {
		return err
	}

	destPath := filepath.Join(d.root, name)

	tmpFile, err := os.CreateTemp(d.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if written != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

// Get retrieves a snapshot by name and writes it to w.
func (d *FilesystemDestination) Get(name string, w io.Writer) error {
	if err := validateSnapshotName(name); err != nil {
		return err
	}

	f, err := os.Open(filepath.Join(d.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("snapshot not found: %s", name)
		}
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	return nil
}

// List returns the names of all stored snapshots in ascending order.
// Temp files from interrupted writes are excluded.
func (d *FilesystemDestination) List() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("reading destination directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Strings(names)
	return names, nil
}

// Delete removes a snapshot by name.
func (d *FilesystemDestination) Delete(name string) error {
	if err := validateSnapshotName(name); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(d.root, name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("snapshot not found: %s", name)
		}
		return fmt.Errorf("deleting snapshot: %w", err)
	}

	return nil
}

// ValidateSetup verifies that the destination directory is accessible.
func (d *FilesystemDestination) ValidateSetup() error {
	info, err := os.Stat(d.root)
	if err != nil {
		return fmt.Errorf("destination root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("destination root is not a directory: %s", d.root)
	}

	return nil
}

// validateSnapshotName rejects names that would escape the destination
// directory or collide with temp files.
func validateSnapshotName(name string) error {
	if name == "" {
		return fmt.Errorf("snapshot name is empty")
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid snapshot name: %s", name)
	}
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid snapshot name: %s", name)
	}
	return nil
}

// Compile-time check that FilesystemDestination implements memo.Destination
var _ memo.Destination = (*FilesystemDestination)(nil)
