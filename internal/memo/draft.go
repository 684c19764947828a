package memo

import "time"

// Draft is an edit whose store commit failed, preserved so the user can
// retry later. MemoID is empty for a draft of a brand new memo and set when
// the draft came from editing an existing one.
type Draft struct {
	ID      string    `json:"id"`
	MemoID  string    `json:"memo_id,omitempty"`
	Content string    `json:"content"`
	SavedAt time.Time `json:"saved_at"`
}

// DraftArea holds preserved edits outside the store, so a store failure
// cannot take the user's content down with it.
type DraftArea interface {
	// Save preserves a draft.
	Save(d *Draft) error

	// List returns all drafts, oldest first.
	List() ([]*Draft, error)

	// Get returns the draft with the given id, or (nil, nil) if absent.
	Get(id string) (*Draft, error)

	// Discard removes a draft. Discarding an unknown id is an error.
	Discard(id string) error

	// Count returns the number of drafts held.
	Count() (int, error)
}
