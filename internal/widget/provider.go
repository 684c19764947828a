package widget

import (
	"memo-go/internal/database/sqlc"
	"memo-go/internal/memo"
	"memo-go/internal/timeline"
)

// Store is the narrow read surface the provider needs. The widget process
// opens the shared store read-only, so only the read operations appear here.
type Store interface {
	ListRecentMemos(limit int64) ([]*sqlc.Memo, error)
	CountMemos() (int64, error)
}

// Provider computes the widget's display view from the shared store. It
// upholds one contract: Refresh never fails. A missing store or a failed
// read degrades to the fallback view with a logged warning, because the
// widget surface has no place to show an error.
type Provider struct {
	store  Store
	limit  int64
	logger memo.Logger
	clock  memo.Clock
}

// NewProvider creates a Provider. store may be nil when the shared store
// could not be opened; Refresh then always yields the fallback view.
// A non-positive limit falls back to the default.
func NewProvider(store Store, limit int64, logger memo.Logger, clock memo.Clock) *Provider {
	if limit <= 0 {
		limit = timeline.DefaultLimit
	}
	if logger == nil {
		logger = memo.NewNopLogger()
	}
	if clock == nil {
		clock = memo.RealClock{}
	}
	return &Provider{
		store:  store,
		limit:  limit,
		logger: logger,
		clock:  clock,
	}
}

// Refresh reads the store and projects the display view for the current
// time. The host calls this on its own schedule; RefreshAt on the returned
// view tells it when to call again. Extra or missed calls are harmless:
// the projection is recomputed from scratch every time.
func (p *Provider) Refresh() timeline.View {
	now := p.clock.Now()

	if p.store == nil {
		p.logger.Warn("shared store unavailable, rendering fallback view")
		return timeline.FallbackView(now)
	}

	memos, err := p.store.ListRecentMemos(p.limit)
	if err != nil {
		p.logger.Warn("reading memos failed, rendering fallback view", "error", err)
		return timeline.FallbackView(now)
	}

	count, err := p.store.CountMemos()
	if err != nil {
		p.logger.Warn("counting memos failed, rendering fallback view", "error", err)
		return timeline.FallbackView(now)
	}

	p.logger.Debug("widget snapshot", "display", len(memos), "total", count)

	snap := timeline.Snapshot{
		GeneratedAt: now,
		Memos:       memos,
		TotalCount:  count,
	}
	return timeline.Project(snap, now)
}
