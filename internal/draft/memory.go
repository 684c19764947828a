package draft

import (
	"fmt"

	"memo-go/internal/memo"
)

// memoryStore keeps serialized drafts in a map, useful for testing and for
// callers that do not need drafts to survive a process restart.
type memoryStore struct {
	drafts map[string][]byte
}

// NewMemoryDraftArea creates an in-memory draft area.
// maxSize is the maximum total size in bytes; must be positive.
func NewMemoryDraftArea(maxSize int64) memo.DraftArea {
	return &draftArea{
		store:   &memoryStore{drafts: make(map[string][]byte)},
		maxSize: maxSize,
	}
}

func (s *memoryStore) Put(id string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	s.drafts[id] = cp
	return nil
}

func (s *memoryStore) Get(id string) ([]byte, error) {
	return s.drafts[id], nil
}

func (s *memoryStore) Remove(id string) error {
	if _, ok := s.drafts[id]; !ok {
		return fmt.Errorf("draft not found: %s", id)
	}
	delete(s.drafts, id)
	return nil
}

func (s *memoryStore) List() ([][]byte, error) {
	entries := make([][]byte, 0, len(s.drafts))
	for _, data := range s.drafts {
		entries = append(entries, data)
	}
	return entries, nil
}

func (s *memoryStore) Size() (int64, error) {
	var total int64
	for _, data := range s.drafts {
		total += int64(len(data))
	}
	return total, nil
}

func (s *memoryStore) Len() (int, error) {
	return len(s.drafts), nil
}
