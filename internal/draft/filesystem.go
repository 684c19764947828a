package draft

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"memo-go/internal/memo"
)

// draftExt is the file extension for stored drafts.
const draftExt = ".json"

// filesystemStore keeps one JSON file per draft under a directory, so
// preserved edits survive a process restart. Writes are atomic (temp file
// + rename), so a crash never leaves a half-written draft.
type filesystemStore struct {
	dir string
}

// NewFilesystemDraftArea creates a filesystem draft area rooted at dir.
// maxSize is the maximum total size in bytes; must be positive.
func NewFilesystemDraftArea(dir string, maxSize int64) (memo.DraftArea, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating draft directory: %w", err)
	}

	return &draftArea{
		store:   &filesystemStore{dir: dir},
		maxSize: maxSize,
	}, nil
}

func (s *filesystemStore) Put(id string, data []byte) error {
	if err := validateDraftID(id); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(s.dir, ".tmp-*")
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

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing draft file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing draft file: %w", err)
	}

	if err := os.Rename(tmpPath, filepath.Join(s.dir, id+draftExt)); err != nil {
		return fmt.Errorf("renaming draft file: %w", err)
	}

	success = true
	return nil
}

func (s *filesystemStore) Get(id string) ([]byte, error) {
	if err := validateDraftID(id); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, id+draftExt))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading draft file: %w", err)
	}
	return data, nil
}

func (s *filesystemStore) Remove(id string) error {
	if err := validateDraftID(id); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.dir, id+draftExt)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("draft not found: %s", id)
		}
		return fmt.Errorf("removing draft file: %w", err)
	}
	return nil
}

func (s *filesystemStore) List() ([][]byte, error) {
	files, err := s.draftFiles()
	if err != nil {
		return nil, err
	}

	entries := make([][]byte, 0, len(files))
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading draft file: %w", err)
		}
		entries = append(entries, data)
	}
	return entries, nil
}

func (s *filesystemStore) Size() (int64, error) {
	files, err := s.draftFiles()
	if err != nil {
		return 0, err
	}

	var total int64
	for _, name := range files {
		info, err := os.Stat(filepath.Join(s.dir, name))
		if err != nil {
			return 0, fmt.Errorf("stat draft file: %w", err)
		}
		total += info.Size()
	}
	return total, nil
}

func (s *filesystemStore) Len() (int, error) {
	files, err := s.draftFiles()
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

// draftFiles returns the names of all draft files in the directory,
// excluding temp files from interrupted writes.
func (s *filesystemStore) draftFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading draft directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, draftExt) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// validateDraftID rejects ids that would escape the draft directory.
func validateDraftID(id string) error {
	if id == "" {
		return fmt.Errorf("draft id is empty")
	}
	if strings.HasPrefix(id, ".") || id != filepath.Base(id) {
		return fmt.Errorf("invalid draft id: %s", id)
	}
	return nil
}
