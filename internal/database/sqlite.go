package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"memo-go/internal/database/migrations"
	"memo-go/internal/database/sqlc"
	"memo-go/internal/memo"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements the Store interface using SQLite.
// One store file is shared by the primary application and the widget
// process; SQLite's own locking handles concurrent access, and cross-process
// visibility relies entirely on the other process re-reading the file.
type SQLiteStore struct {
	db       *sql.DB
	queries  *sqlc.Queries
	path     string
	readOnly bool
	clock    memo.Clock
	idgen    memo.IDGenerator
}

// NewSQLiteStore opens (creating if necessary) the store at path and brings
// its schema up to date. path can be a file path or ":memory:".
// clock and idgen may be nil, in which case real implementations are used.
func NewSQLiteStore(path string, clock memo.Clock, idgen memo.IDGenerator) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating store: %w", err)
	}

	s := newStore(db, clock, idgen)
	s.path = path
	return s, nil
}

// NewReadOnlySQLiteStore opens an existing store at path without write
// access. The widget process uses this: it can never take a write lock on
// the shared file, and it never migrates the schema. The store file must
// already exist.
func NewReadOnlySQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenReadOnlyConnection(path)
	if err != nil {
		return nil, err
	}

	s := newStore(db, nil, nil)
	s.path = path
	s.readOnly = true
	return s, nil
}

// NewSQLiteStoreFromDB wraps an existing connection. The caller is
// responsible for the connection's configuration and schema.
// clock and idgen may be nil, in which case real implementations are used.
func NewSQLiteStoreFromDB(db *sql.DB, clock memo.Clock, idgen memo.IDGenerator) *SQLiteStore {
	return newStore(db, clock, idgen)
}

func newStore(db *sql.DB, clock memo.Clock, idgen memo.IDGenerator) *SQLiteStore {
	if clock == nil {
		clock = memo.RealClock{}
	}
	if idgen == nil {
		idgen = memo.UUIDGenerator{}
	}
	return &SQLiteStore{
		db:      db,
		queries: sqlc.New(db),
		clock:   clock,
		idgen:   idgen,
	}
}

// OpenConnection opens and configures a read-write SQLite connection.
// Exported for use in tools and tests that need a properly configured
// connection. path can be a file path or ":memory:".
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// WAL lets the widget process read while this process writes. A reader
	// never blocks the writer and a committed write is visible to any
	// subsequent read from the other process.
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL: %w", err)
	}

	// Wait for locks instead of failing immediately when the other process
	// holds one.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return db, nil
}

// OpenReadOnlyConnection opens an existing store without write access.
// The connection is verified eagerly so a missing or unreadable file
// surfaces here rather than on the first query.
func OpenReadOnlyConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening store read-only: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening store read-only: %w", err)
	}

	return db, nil
}

// Memo operations

func (s *SQLiteStore) ListRecentMemos(limit int64) ([]*sqlc.Memo, error) {
	memos, err := s.queries.GetRecentMemos(context.Background(), limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent memos: %w", err)
	}

	result := make([]*sqlc.Memo, len(memos))
	for i := range memos {
		result[i] = &memos[i]
	}
	return result, nil
}

func (s *SQLiteStore) CountMemos() (int64, error) {
	count, err := s.queries.CountMemos(context.Background())
	if err != nil {
		return 0, fmt.Errorf("counting memos: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) GetMemo(id string) (*sqlc.Memo, error) {
	m, err := s.queries.GetMemoByID(context.Background(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding memo: %w", err)
	}
	return &m, nil
}

// CreateMemo inserts a new memo with a fresh ID and the current time.
// Timestamps are stored in UTC so the text encoding sorts chronologically.
func (s *SQLiteStore) CreateMemo(content string) (*sqlc.Memo, error) {
	m, err := s.queries.InsertMemo(context.Background(), sqlc.InsertMemoParams{
		ID:        s.idgen.New(),
		Content:   content,
		Timestamp: s.clock.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating memo: %w", err)
	}
	return &m, nil
}

// UpdateMemo replaces the memo's content and resets its timestamp to the
// current time. Returns (nil, nil) if no memo with the given id exists.
func (s *SQLiteStore) UpdateMemo(id string, content string) (*sqlc.Memo, error) {
	m, err := s.queries.UpdateMemo(context.Background(), sqlc.UpdateMemoParams{
		Content:   content,
		Timestamp: s.clock.Now().UTC(),
		ID:        id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("updating memo: %w", err)
	}
	return &m, nil
}

// DeleteMemos removes the memos with the given ids in a single transaction.
// Unknown ids are ignored; an empty set is a no-op.
func (s *SQLiteStore) DeleteMemos(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	for _, id := range ids {
		if err := qtx.DeleteMemoByID(ctx, id); err != nil {
			return fmt.Errorf("deleting memo %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Operation audit trail

func (s *SQLiteStore) RecordOperation(kind string, memoID string, detail string, status string) (*sqlc.Operation, error) {
	var mid sql.NullString
	if memoID != "" {
		mid = sql.NullString{String: memoID, Valid: true}
	}

	op, err := s.queries.InsertOperation(context.Background(), sqlc.InsertOperationParams{
		ID:        s.idgen.New(),
		Kind:      kind,
		MemoID:    mid,
		Detail:    detail,
		Status:    status,
		CreatedAt: s.clock.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("recording operation: %w", err)
	}
	return &op, nil
}

func (s *SQLiteStore) ListOperations(limit int64) ([]*sqlc.Operation, error) {
	ops, err := s.queries.GetOperations(context.Background(), limit)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}

	result := make([]*sqlc.Operation, len(ops))
	for i := range ops {
		result[i] = &ops[i]
	}
	return result, nil
}

// Path returns the store file path (or ":memory:" for in-memory stores).
func (s *SQLiteStore) Path() string {
	return s.path
}

// ReadOnly reports whether the store was opened without write access.
func (s *SQLiteStore) ReadOnly() bool {
	return s.readOnly
}

// CheckMigrations verifies the store schema is up-to-date.
func (s *SQLiteStore) CheckMigrations() error {
	return migrations.CheckStatus(s.db)
}

// BackupTo writes a complete, consistent copy of the store to destPath
// using VACUUM INTO.
func (s *SQLiteStore) BackupTo(destPath string) error {
	_, err := s.db.Exec("VACUUM INTO ?", destPath)
	if err != nil {
		return fmt.Errorf("backing up store: %w", err)
	}
	return nil
}

// Close closes the store connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteStore implements the memo.Store interface
var _ memo.Store = (*SQLiteStore)(nil)
