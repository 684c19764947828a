package memo

import "memo-go/internal/timeline"

// Timeline reads the most recent memos plus the total count and projects
// the display summary. On a read failure the returned view is the degraded
// fallback view and the error is a ReadError: the primary application
// surfaces it, the widget process absorbs it and renders the fallback.
func (s *MemoService) Timeline(limit int64) (timeline.View, error) {
	if limit <= 0 {
		limit = timeline.DefaultLimit
	}
	now := s.clock.Now()

	memos, err := s.store.ListRecentMemos(limit)
	if err != nil {
		return timeline.FallbackView(now), &ReadError{Op: "reading timeline", Err: err}
	}

	count, err := s.store.CountMemos()
	if err != nil {
		return timeline.FallbackView(now), &ReadError{Op: "counting memos", Err: err}
	}

	s.logger.Debug("timeline snapshot", "display", len(memos), "total", count)

	snap := timeline.Snapshot{
		GeneratedAt: now,
		Memos:       memos,
		TotalCount:  count,
	}
	return timeline.Project(snap, now), nil
}
