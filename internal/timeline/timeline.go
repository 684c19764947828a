package timeline

import (
	"fmt"
	"strings"
	"time"

	"memo-go/internal/database/sqlc"
)

const (
	// WarningAge is the age at which the most recent memo crosses from
	// normal to warning. The boundary is closed above: exactly WarningAge
	// is already warning.
	WarningAge = 3 * time.Hour

	// AlarmAge is the age at which the most recent memo crosses from
	// warning to alarm. Closed above, like WarningAge.
	AlarmAge = 5 * time.Hour

	// FallbackInterval is the refresh interval used when no tier boundary
	// lies ahead: the most recent memo is already past AlarmAge, the store
	// is empty, or the read failed.
	FallbackInterval = time.Hour

	// DefaultLimit is the number of recent memos a snapshot carries.
	DefaultLimit = 5
)

// Status classifies the staleness of the most recent memo.
type Status int

const (
	// StatusNone means no tier applies: the snapshot holds no memos.
	StatusNone Status = iota
	StatusNormal
	StatusWarning
	StatusAlarm
)

func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusWarning:
		return "warning"
	case StatusAlarm:
		return "alarm"
	default:
		return "none"
	}
}

// Snapshot is one read of the store: up to the fetch limit of most-recent
// memos, descending by timestamp, plus the total count independent of that
// limit.
type Snapshot struct {
	GeneratedAt time.Time
	Memos       []*sqlc.Memo
	TotalCount  int64
}

// Entry is a single memo prepared for display.
type Entry struct {
	ID           string
	Title        string
	Content      string
	Timestamp    time.Time
	ElapsedLabel string
}

// View is the display-ready summary projected from a snapshot.
// DisplayCount is the number of entries actually shown, which is capped by
// the fetch limit; TotalCount is the full store count. The two are
// deliberately different numbers.
type View struct {
	GeneratedAt   time.Time
	Entries       []Entry
	DisplayCount  int
	TotalCount    int64
	MostRecentAge time.Duration
	Status        Status
	ElapsedLabel  string
	RefreshAt     time.Time
}

// Project computes the display summary for a snapshot at the given time.
// It is pure: identical inputs yield an identical View, and projecting
// repeatedly has no effect beyond the return value. Staleness and
// scheduling follow the single most recently created memo.
func Project(snap Snapshot, now time.Time) View {
	view := View{
		GeneratedAt: now,
		TotalCount:  snap.TotalCount,
		Status:      StatusNone,
		RefreshAt:   now.Add(FallbackInterval),
	}

	if len(snap.Memos) == 0 {
		return view
	}

	view.Entries = make([]Entry, len(snap.Memos))
	for i, m := range snap.Memos {
		view.Entries[i] = Entry{
			ID:           m.ID,
			Title:        Title(m.Content),
			Content:      m.Content,
			Timestamp:    m.Timestamp,
			ElapsedLabel: ElapsedLabel(now.Sub(m.Timestamp)),
		}
	}

	newest := snap.Memos[0]
	age := now.Sub(newest.Timestamp)

	view.DisplayCount = len(view.Entries)
	view.MostRecentAge = age
	view.Status = StatusOf(age)
	view.ElapsedLabel = ElapsedLabel(age)
	view.RefreshAt = NextRefresh(newest.Timestamp, now)

	return view
}

// FallbackView is the degraded projection used when the store cannot be
// read: no entries, zero counts, no tier, and a retry in one hour. The raw
// read error never reaches the rendering layer.
func FallbackView(now time.Time) View {
	return View{
		GeneratedAt: now,
		Status:      StatusNone,
		RefreshAt:   now.Add(FallbackInterval),
	}
}

// StatusOf returns the staleness tier for a memo age.
func StatusOf(age time.Duration) Status {
	switch {
	case age >= AlarmAge:
		return StatusAlarm
	case age >= WarningAge:
		return StatusWarning
	default:
		return StatusNormal
	}
}

// NextRefresh returns the next time the projection should be recomputed for
// a memo created at mostRecent. While a tier boundary lies ahead the next
// recomputation lands exactly on that boundary, so the visible tier flips
// promptly; past the last boundary there is nothing left to cross and the
// projection falls back to a fixed hourly cadence. At most one time is ever
// requested: the boundaries are checked in order and only the nearest
// upcoming one is returned.
func NextRefresh(mostRecent, now time.Time) time.Time {
	age := now.Sub(mostRecent)
	switch {
	case age < WarningAge:
		return mostRecent.Add(WarningAge)
	case age < AlarmAge:
		return mostRecent.Add(AlarmAge)
	default:
		return now.Add(FallbackInterval)
	}
}

// ElapsedLabel formats a memo age for display: "2h 5m ago" once at least an
// hour old, "5m ago" below that. Negative ages (clock skew) render as the
// zero label.
func ElapsedLabel(age time.Duration) string {
	if age < 0 {
		age = 0
	}

	hours := int(age / time.Hour)
	minutes := int(age % time.Hour / time.Minute)

	if hours >= 1 {
		return fmt.Sprintf("%dh %dm ago", hours, minutes)
	}
	return fmt.Sprintf("%dm ago", minutes)
}

// Title returns the first line of a memo's content, the conventional title.
func Title(content string) string {
	title, _, _ := strings.Cut(content, "\n")
	return title
}
