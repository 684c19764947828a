package memo

import "memo-go/internal/database/sqlc"

// History returns the most recent audit entries, newest first.
func (s *MemoService) History(limit int64) ([]*sqlc.Operation, error) {
	ops, err := s.store.ListOperations(limit)
	if err != nil {
		return nil, &ReadError{Op: "listing operations", Err: err}
	}
	return ops, nil
}
