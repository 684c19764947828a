package memo

import (
	"fmt"
	"strings"

	"memo-go/internal/database/sqlc"
	"memo-go/internal/timeline"
)

// Operation kinds recorded in the audit trail.
const (
	OpAdd     = "add"
	OpEdit    = "edit"
	OpDelete  = "delete"
	OpBackup  = "backup"
	OpRestore = "restore"
)

// Audit entry statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// MemoService is the orchestration layer that coordinates the store and the
// draft area to perform the high-level operations needed by the CLI.
type MemoService struct {
	store  Store
	drafts DraftArea
	logger Logger
	clock  Clock
	idgen  IDGenerator
}

// NewMemoService creates a new MemoService with the provided dependencies.
func NewMemoService(store Store, drafts DraftArea, logger Logger, clock Clock, idgen IDGenerator) *MemoService {
	return &MemoService{
		store:  store,
		drafts: drafts,
		logger: logger,
		clock:  clock,
		idgen:  idgen,
	}
}

// Add saves a new memo. The content must be non-blank after trimming but is
// stored verbatim. If the store cannot commit, the content is preserved as
// a draft and the returned WriteError names it, so the edit is never lost.
func (s *MemoService) Add(content string) (*sqlc.Memo, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrBlankContent
	}

	m, err := s.store.CreateMemo(content)
	if err != nil {
		s.recordOperation(OpAdd, "", timeline.Title(content), StatusFailed)
		return nil, s.preserveDraft("", content, "saving memo", err)
	}

	s.recordOperation(OpAdd, m.ID, timeline.Title(m.Content), StatusCompleted)
	s.logger.Info("memo added", "id", m.ID)
	return m, nil
}

// Update replaces a memo's content. The timestamp is reset to the current
// time: edits do not preserve the original creation time. On a store
// failure the content is preserved as a draft tied to the memo id.
func (s *MemoService) Update(id string, content string) (*sqlc.Memo, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrBlankContent
	}

	m, err := s.store.UpdateMemo(id, content)
	if err != nil {
		s.recordOperation(OpEdit, id, timeline.Title(content), StatusFailed)
		return nil, s.preserveDraft(id, content, "updating memo", err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrMemoNotFound, id)
	}

	s.recordOperation(OpEdit, m.ID, timeline.Title(m.Content), StatusCompleted)
	s.logger.Info("memo updated", "id", m.ID)
	return m, nil
}

// Delete removes the memos with the given ids. Unknown ids are ignored and
// an empty set is a no-op.
func (s *MemoService) Delete(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	if err := s.store.DeleteMemos(ids); err != nil {
		s.recordOperation(OpDelete, "", strings.Join(ids, ","), StatusFailed)
		return &WriteError{Op: "deleting memos", Err: err}
	}

	s.recordOperation(OpDelete, "", strings.Join(ids, ","), StatusCompleted)
	s.logger.Info("memos deleted", "count", len(ids))
	return nil
}

// List returns up to limit memos, most recent first.
func (s *MemoService) List(limit int64) ([]*sqlc.Memo, error) {
	memos, err := s.store.ListRecentMemos(limit)
	if err != nil {
		return nil, &ReadError{Op: "listing memos", Err: err}
	}
	return memos, nil
}

// Get returns a single memo by id.
func (s *MemoService) Get(id string) (*sqlc.Memo, error) {
	m, err := s.store.GetMemo(id)
	if err != nil {
		return nil, &ReadError{Op: "reading memo", Err: err}
	}
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrMemoNotFound, id)
	}
	return m, nil
}

// Count returns the total number of memos in the store.
func (s *MemoService) Count() (int64, error) {
	count, err := s.store.CountMemos()
	if err != nil {
		return 0, &ReadError{Op: "counting memos", Err: err}
	}
	return count, nil
}

// preserveDraft keeps failed-write content in the draft area and wraps the
// store error so the caller can retry. When the draft area itself fails,
// the original store error is still surfaced and the draft failure is
// logged.
func (s *MemoService) preserveDraft(memoID string, content string, op string, cause error) error {
	d := &Draft{
		ID:      s.idgen.New(),
		MemoID:  memoID,
		Content: content,
		SavedAt: s.clock.Now(),
	}

	if err := s.drafts.Save(d); err != nil {
		s.logger.Error("preserving draft failed", "error", err)
		return &WriteError{Op: op, Err: cause}
	}

	s.logger.Warn("store write failed, content preserved as draft", "draft_id", d.ID, "error", cause)
	return &WriteError{Op: op, DraftID: d.ID, Err: cause}
}

// recordOperation appends to the audit trail. Audit failures are logged and
// otherwise ignored: the trail is observability, not part of the memo
// contract.
func (s *MemoService) recordOperation(kind string, memoID string, detail string, status string) {
	if _, err := s.store.RecordOperation(kind, memoID, detail, status); err != nil {
		s.logger.Warn("recording operation failed", "kind", kind, "error", err)
	}
}
