package testutil

import (
	"memo-go/internal/backup"
	"memo-go/internal/memo"
)

// NewTestDestination creates a new in-memory backup destination for testing.
func NewTestDestination() memo.Destination {
	return backup.NewMemoryDestination("test-dest")
}
