package memo

import (
	"fmt"

	"memo-go/internal/database/sqlc"
	"memo-go/internal/timeline"
)

// Drafts returns all preserved edits, oldest first.
func (s *MemoService) Drafts() ([]*Draft, error) {
	drafts, err := s.drafts.List()
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	return drafts, nil
}

// RetryDraft replays one preserved edit through the store. On success the
// draft is discarded; on failure it stays preserved for another attempt.
func (s *MemoService) RetryDraft(id string) (*sqlc.Memo, error) {
	d, err := s.drafts.Get(id)
	if err != nil {
		return nil, fmt.Errorf("reading draft: %w", err)
	}
	if d == nil {
		return nil, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}
	return s.replayDraft(d)
}

// RetryDrafts replays all preserved edits, oldest first, stopping at the
// first failure. Returns the number of drafts successfully replayed.
func (s *MemoService) RetryDrafts() (int, error) {
	drafts, err := s.drafts.List()
	if err != nil {
		return 0, fmt.Errorf("listing drafts: %w", err)
	}

	count := 0
	for _, d := range drafts {
		if _, err := s.replayDraft(d); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

// DiscardDraft drops a preserved edit without replaying it.
func (s *MemoService) DiscardDraft(id string) error {
	d, err := s.drafts.Get(id)
	if err != nil {
		return fmt.Errorf("reading draft: %w", err)
	}
	if d == nil {
		return fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}

	if err := s.drafts.Discard(id); err != nil {
		return fmt.Errorf("discarding draft: %w", err)
	}

	s.logger.Info("draft discarded", "draft_id", id)
	return nil
}

// replayDraft commits a preserved edit. A draft for a memo that was deleted
// in the meantime is saved as a new memo rather than silently dropped.
func (s *MemoService) replayDraft(d *Draft) (*sqlc.Memo, error) {
	var (
		m    *sqlc.Memo
		err  error
		kind = OpAdd
	)

	if d.MemoID == "" {
		m, err = s.store.CreateMemo(d.Content)
	} else {
		kind = OpEdit
		m, err = s.store.UpdateMemo(d.MemoID, d.Content)
		if err == nil && m == nil {
			kind = OpAdd
			m, err = s.store.CreateMemo(d.Content)
		}
	}
	if err != nil {
		return nil, &WriteError{Op: "replaying draft", DraftID: d.ID, Err: err}
	}

	if err := s.drafts.Discard(d.ID); err != nil {
		s.logger.Warn("discarding replayed draft failed", "draft_id", d.ID, "error", err)
	}

	s.recordOperation(kind, m.ID, timeline.Title(m.Content), StatusCompleted)
	s.logger.Info("draft replayed", "draft_id", d.ID, "memo_id", m.ID)
	return m, nil
}
