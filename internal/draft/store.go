package draft

// draftStore abstracts the storage mechanics for a draft area.
// Implementations hold serialized drafts keyed by id. Concurrency is
// managed by the caller (draftArea.mu), so stores do not need to be safe
// for concurrent use.
type draftStore interface {
	// Put stores serialized draft data under id, replacing any previous data.
	Put(id string, data []byte) error

	// Get returns the serialized draft for id, or (nil, nil) if absent.
	Get(id string) ([]byte, error)

	// Remove deletes the draft for id. Removing an unknown id is an error.
	Remove(id string) error

	// List returns all serialized drafts in no particular order.
	List() ([][]byte, error)

	// Size returns the total stored bytes across all drafts.
	Size() (int64, error)

	// Len returns the number of drafts held.
	Len() (int, error)
}
