package timeline

import (
	"reflect"
	"testing"
	"time"

	"memo-go/internal/database/sqlc"
)

var testNow = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// memoAgedBy returns a memo whose timestamp lies age before testNow.
func memoAgedBy(id string, age time.Duration) *sqlc.Memo {
	return &sqlc.Memo{
		ID:        id,
		Content:   "memo " + id,
		Timestamp: testNow.Add(-age),
	}
}

func TestProject_MostRecentAge(t *testing.T) {
	snap := Snapshot{
		GeneratedAt: testNow,
		Memos: []*sqlc.Memo{
			memoAgedBy("memo-1", 42*time.Minute),
			memoAgedBy("memo-2", 2*time.Hour),
		},
		TotalCount: 2,
	}

	view := Project(snap, testNow)

	if view.MostRecentAge != 42*time.Minute {
		t.Errorf("MostRecentAge = %v, want %v", view.MostRecentAge, 42*time.Minute)
	}
	if view.MostRecentAge < 0 {
		t.Errorf("MostRecentAge = %v, want non-negative", view.MostRecentAge)
	}
}

func TestStatusOf_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		age  time.Duration
		want Status
	}{
		{"zero age", 0, StatusNormal},
		{"just under warning", 3*time.Hour - time.Second, StatusNormal},
		{"exactly warning", 3 * time.Hour, StatusWarning},
		{"between warning and alarm", 4 * time.Hour, StatusWarning},
		{"just under alarm", 5*time.Hour - time.Second, StatusWarning},
		{"exactly alarm", 5 * time.Hour, StatusAlarm},
		{"well past alarm", 12 * time.Hour, StatusAlarm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.age); got != tt.want {
				t.Errorf("StatusOf(%v) = %v, want %v", tt.age, got, tt.want)
			}
		})
	}
}

func TestProject_DisplayCountCappedByLimit(t *testing.T) {
	// A store holding 12 memos read with limit 5 yields 5 entries but keeps
	// the full count.
	snap := Snapshot{
		GeneratedAt: testNow,
		Memos: []*sqlc.Memo{
			memoAgedBy("memo-1", 1*time.Minute),
			memoAgedBy("memo-2", 2*time.Minute),
			memoAgedBy("memo-3", 3*time.Minute),
			memoAgedBy("memo-4", 4*time.Minute),
			memoAgedBy("memo-5", 5*time.Minute),
		},
		TotalCount: 12,
	}

	view := Project(snap, testNow)

	if view.DisplayCount != 5 {
		t.Errorf("DisplayCount = %d, want 5", view.DisplayCount)
	}
	if view.TotalCount != 12 {
		t.Errorf("TotalCount = %d, want 12", view.TotalCount)
	}
	if len(view.Entries) != view.DisplayCount {
		t.Errorf("len(Entries) = %d, want DisplayCount %d", len(view.Entries), view.DisplayCount)
	}
}

func TestNextRefresh_BoundarySequence(t *testing.T) {
	created := testNow.Add(-1 * time.Hour)

	// A memo one hour old refreshes at the warning boundary.
	first := NextRefresh(created, testNow)
	if want := created.Add(3 * time.Hour); !first.Equal(want) {
		t.Fatalf("NextRefresh at age 1h = %v, want %v", first, want)
	}

	// When that refresh fires, the next lands on the alarm boundary.
	second := NextRefresh(created, first)
	if want := created.Add(5 * time.Hour); !second.Equal(want) {
		t.Fatalf("NextRefresh at warning boundary = %v, want %v", second, want)
	}

	// Past the alarm boundary there is nothing left to cross: hourly.
	third := NextRefresh(created, second)
	if want := second.Add(time.Hour); !third.Equal(want) {
		t.Fatalf("NextRefresh at alarm boundary = %v, want %v", third, want)
	}
}

func TestNextRefresh_FallbackPastAlarm(t *testing.T) {
	created := testNow.Add(-6 * time.Hour)

	got := NextRefresh(created, testNow)
	if want := testNow.Add(time.Hour); !got.Equal(want) {
		t.Errorf("NextRefresh at age 6h = %v, want %v", got, want)
	}
}

func TestProject_EmptySnapshot(t *testing.T) {
	view := Project(Snapshot{GeneratedAt: testNow}, testNow)

	if view.DisplayCount != 0 {
		t.Errorf("DisplayCount = %d, want 0", view.DisplayCount)
	}
	if view.TotalCount != 0 {
		t.Errorf("TotalCount = %d, want 0", view.TotalCount)
	}
	if view.Status != StatusNone {
		t.Errorf("Status = %v, want %v", view.Status, StatusNone)
	}
	if want := testNow.Add(time.Hour); !view.RefreshAt.Equal(want) {
		t.Errorf("RefreshAt = %v, want %v (hourly fallback)", view.RefreshAt, want)
	}
}

func TestProject_Idempotent(t *testing.T) {
	snap := Snapshot{
		GeneratedAt: testNow,
		Memos: []*sqlc.Memo{
			memoAgedBy("memo-1", 10*time.Minute),
			memoAgedBy("memo-2", 4*time.Hour),
		},
		TotalCount: 2,
	}

	first := Project(snap, testNow)
	second := Project(snap, testNow)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Project() is not idempotent:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestProject_EndToEnd(t *testing.T) {
	snap := Snapshot{
		GeneratedAt: testNow,
		Memos: []*sqlc.Memo{
			memoAgedBy("memo-1", 10*time.Minute),
			memoAgedBy("memo-2", 4*time.Hour+20*time.Minute),
			memoAgedBy("memo-3", 7*time.Hour),
		},
		TotalCount: 3,
	}

	view := Project(snap, testNow)

	if view.DisplayCount != 3 {
		t.Errorf("DisplayCount = %d, want 3", view.DisplayCount)
	}
	if view.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", view.TotalCount)
	}
	if view.MostRecentAge != 10*time.Minute {
		t.Errorf("MostRecentAge = %v, want 10m", view.MostRecentAge)
	}
	if view.Status != StatusNormal {
		t.Errorf("Status = %v, want %v", view.Status, StatusNormal)
	}
	if view.ElapsedLabel != "10m ago" {
		t.Errorf("ElapsedLabel = %q, want %q", view.ElapsedLabel, "10m ago")
	}
	// The warning boundary of the freshest memo: 3h after its creation,
	// which is 2h50m from now.
	if want := testNow.Add(3*time.Hour - 10*time.Minute); !view.RefreshAt.Equal(want) {
		t.Errorf("RefreshAt = %v, want %v", view.RefreshAt, want)
	}

	// Per-entry labels follow each memo's own age.
	wantLabels := []string{"10m ago", "4h 20m ago", "7h 0m ago"}
	for i, want := range wantLabels {
		if got := view.Entries[i].ElapsedLabel; got != want {
			t.Errorf("Entries[%d].ElapsedLabel = %q, want %q", i, got, want)
		}
	}
}

func TestProject_StatusFollowsNewestMemo(t *testing.T) {
	// The tier and the schedule track the single most recently created
	// memo, even when older displayed memos have long crossed both
	// thresholds.
	snap := Snapshot{
		GeneratedAt: testNow,
		Memos: []*sqlc.Memo{
			memoAgedBy("memo-1", 30*time.Minute),
			memoAgedBy("memo-2", 6*time.Hour),
			memoAgedBy("memo-3", 48*time.Hour),
		},
		TotalCount: 3,
	}

	view := Project(snap, testNow)

	if view.Status != StatusNormal {
		t.Errorf("Status = %v, want %v (newest memo is 30m old)", view.Status, StatusNormal)
	}
	if want := snap.Memos[0].Timestamp.Add(3 * time.Hour); !view.RefreshAt.Equal(want) {
		t.Errorf("RefreshAt = %v, want %v (warning boundary of the newest memo)", view.RefreshAt, want)
	}
}

func TestFallbackView(t *testing.T) {
	view := FallbackView(testNow)

	if view.DisplayCount != 0 || view.TotalCount != 0 {
		t.Errorf("counts = (%d, %d), want (0, 0)", view.DisplayCount, view.TotalCount)
	}
	if len(view.Entries) != 0 {
		t.Errorf("len(Entries) = %d, want 0", len(view.Entries))
	}
	if view.Status != StatusNone {
		t.Errorf("Status = %v, want %v", view.Status, StatusNone)
	}
	if want := testNow.Add(time.Hour); !view.RefreshAt.Equal(want) {
		t.Errorf("RefreshAt = %v, want %v", view.RefreshAt, want)
	}
}

func TestElapsedLabel(t *testing.T) {
	tests := []struct {
		name string
		age  time.Duration
		want string
	}{
		{"zero", 0, "0m ago"},
		{"under a minute", 30 * time.Second, "0m ago"},
		{"minutes only", 10 * time.Minute, "10m ago"},
		{"just under an hour", 59*time.Minute + 59*time.Second, "59m ago"},
		{"exactly one hour", time.Hour, "1h 0m ago"},
		{"hours and minutes", 4*time.Hour + 20*time.Minute, "4h 20m ago"},
		{"many hours", 27*time.Hour + 5*time.Minute, "27h 5m ago"},
		{"negative clamps to zero", -5 * time.Minute, "0m ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ElapsedLabel(tt.age); got != tt.want {
				t.Errorf("ElapsedLabel(%v) = %q, want %q", tt.age, got, tt.want)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"single line", "buy milk", "buy milk"},
		{"multi line", "shopping list\nmilk\neggs", "shopping list"},
		{"empty", "", ""},
		{"leading newline", "\nbody", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.content); got != tt.want {
				t.Errorf("Title(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusNone, "none"},
		{StatusNormal, "normal"},
		{StatusWarning, "warning"},
		{StatusAlarm, "alarm"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
