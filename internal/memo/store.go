package memo

import "memo-go/internal/database/sqlc"

// Store provides ordered read and durable write access to the shared memo
// store. Every mutation must be committed before the method returns, so
// that a reader in another process observes the change on its next read.
// Cross-process visibility works only by re-reading: the store pushes
// nothing.
type Store interface {
	// ListRecentMemos returns up to limit memos, most recent first.
	ListRecentMemos(limit int64) ([]*sqlc.Memo, error)

	// CountMemos returns the total number of memos, independent of any
	// fetch limit.
	CountMemos() (int64, error)

	// GetMemo returns the memo with the given id, or (nil, nil) if no such
	// memo exists.
	GetMemo(id string) (*sqlc.Memo, error)

	// CreateMemo inserts a new memo with a fresh id and the current time.
	CreateMemo(content string) (*sqlc.Memo, error)

	// UpdateMemo replaces the memo's content and resets its timestamp to
	// the current time. Returns (nil, nil) if no such memo exists.
	UpdateMemo(id string, content string) (*sqlc.Memo, error)

	// DeleteMemos removes the memos with the given ids. Unknown ids are
	// ignored; an empty set is a no-op.
	DeleteMemos(ids []string) error

	// RecordOperation appends an entry to the operation audit trail.
	// memoID may be empty for operations not tied to a single memo.
	RecordOperation(kind string, memoID string, detail string, status string) (*sqlc.Operation, error)

	// ListOperations returns the most recent audit entries, newest first.
	ListOperations(limit int64) ([]*sqlc.Operation, error)

	// Path returns the store file path (or ":memory:").
	Path() string

	// CheckMigrations verifies the store schema is up-to-date.
	CheckMigrations() error

	// BackupTo writes a complete, consistent copy of the store to destPath.
	BackupTo(destPath string) error

	// Close closes the store connection.
	Close() error
}
