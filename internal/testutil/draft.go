package testutil

import (
	"memo-go/internal/draft"
	"memo-go/internal/memo"
)

// DefaultDraftMaxSize is the default max size for test draft areas (1MB).
const DefaultDraftMaxSize = 1024 * 1024

// NewTestDraftArea creates a new in-memory draft area for testing.
func NewTestDraftArea() memo.DraftArea {
	return draft.NewMemoryDraftArea(DefaultDraftMaxSize)
}
