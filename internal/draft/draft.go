package draft

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"memo-go/internal/memo"
)

// draftArea implements memo.DraftArea using a pluggable draftStore for the
// storage mechanics. All shared logic lives here: serialization, ordering,
// and the size limit. Drafts are held serialized, so the limit bounds the
// bytes a store actually keeps.
type draftArea struct {
	store   draftStore
	maxSize int64
	mu      sync.Mutex
}

var _ memo.DraftArea = (*draftArea)(nil)

// Save preserves a draft.
func (a *draftArea) Save(d *memo.Draft) error {
	if d.ID == "" {
		return fmt.Errorf("draft has no id")
	}

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	size, err := a.store.Size()
	if err != nil {
		return fmt.Errorf("getting current size: %w", err)
	}
	if size+int64(len(data)) > a.maxSize {
		return fmt.Errorf("draft area full: would exceed max size of %d bytes", a.maxSize)
	}

	if err := a.store.Put(d.ID, data); err != nil {
		return fmt.Errorf("storing draft: %w", err)
	}

	return nil
}

// List returns all drafts, oldest first.
func (a *draftArea) List() ([]*memo.Draft, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entries, err := a.store.List()
	if err != nil {
		return nil, err
	}

	drafts := make([]*memo.Draft, 0, len(entries))
	for _, data := range entries {
		var d memo.Draft
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("decoding draft: %w", err)
		}
		drafts = append(drafts, &d)
	}

	sort.Slice(drafts, func(i, j int) bool {
		if !drafts[i].SavedAt.Equal(drafts[j].SavedAt) {
			return drafts[i].SavedAt.Before(drafts[j].SavedAt)
		}
		return drafts[i].ID < drafts[j].ID
	})

	return drafts, nil
}

// Get returns the draft with the given id, or (nil, nil) if absent.
func (a *draftArea) Get(id string) (*memo.Draft, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	data, err := a.store.Get(id)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var d memo.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decoding draft: %w", err)
	}

	return &d, nil
}

// Discard removes a draft. Discarding an unknown id is an error.
func (a *draftArea) Discard(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.store.Remove(id)
}

// Count returns the number of drafts held.
func (a *draftArea) Count() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.store.Len()
}
