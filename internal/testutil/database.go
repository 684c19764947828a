package testutil

import (
	"testing"

	"memo-go/internal/database"
	"memo-go/internal/memo"
)

// NewTestStore creates a new in-memory SQLite store with schema applied.
// The store is automatically closed when the test completes.
func NewTestStore(t *testing.T) memo.Store {
	return NewTestStoreWith(t, nil, nil)
}

// NewTestStoreWith is NewTestStore with an injected clock and id generator,
// for tests that need deterministic timestamps or ids.
func NewTestStoreWith(t *testing.T, clock memo.Clock, idgen memo.IDGenerator) memo.Store {
	t.Helper()

	sqlDB, err := database.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	if _, err := sqlDB.Exec(database.Schema); err != nil {
		sqlDB.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	store := database.NewSQLiteStoreFromDB(sqlDB, clock, idgen)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}
