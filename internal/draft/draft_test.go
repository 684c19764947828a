package draft

import (
	"os"
	"strings"
	"testing"
	"time"

	"memo-go/internal/config"
	"memo-go/internal/memo"
)

// areaFactories builds each area implementation so every test runs against
// both the memory and the filesystem store.
func areaFactories(t *testing.T) map[string]func() memo.DraftArea {
	t.Helper()
	return map[string]func() memo.DraftArea{
		"memory": func() memo.DraftArea {
			return NewMemoryDraftArea(DefaultMaxSize)
		},
		"filesystem": func() memo.DraftArea {
			a, err := NewFilesystemDraftArea(t.TempDir(), DefaultMaxSize)
			if err != nil {
				t.Fatalf("NewFilesystemDraftArea() error = %v", err)
			}
			return a
		},
	}
}

func savedAt(minutesAgo int) time.Time {
	return time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC).Add(-time.Duration(minutesAgo) * time.Minute)
}

func TestDraftArea_SaveAndGet(t *testing.T) {
	for name, newArea := range areaFactories(t) {
		t.Run(name, func(t *testing.T) {
			area := newArea()

			d := &memo.Draft{
				ID:      "draft-1",
				MemoID:  "memo-7",
				Content: "milk\neggs",
				SavedAt: savedAt(0),
			}
			if err := area.Save(d); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			got, err := area.Get("draft-1")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got == nil {
				t.Fatal("Get() = nil, want draft")
			}
			if got.Content != d.Content {
				t.Errorf("Content = %q, want %q", got.Content, d.Content)
			}
			if got.MemoID != d.MemoID {
				t.Errorf("MemoID = %q, want %q", got.MemoID, d.MemoID)
			}
			if !got.SavedAt.Equal(d.SavedAt) {
				t.Errorf("SavedAt = %v, want %v", got.SavedAt, d.SavedAt)
			}
		})
	}
}

func TestDraftArea_GetMissing(t *testing.T) {
	for name, newArea := range areaFactories(t) {
		t.Run(name, func(t *testing.T) {
			area := newArea()

			got, err := area.Get("nonexistent")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got != nil {
				t.Errorf("Get() = %v, want nil for missing draft", got)
			}
		})
	}
}

func TestDraftArea_ListOldestFirst(t *testing.T) {
	for name, newArea := range areaFactories(t) {
		t.Run(name, func(t *testing.T) {
			area := newArea()

			// Saved out of order on purpose
			for _, d := range []*memo.Draft{
				{ID: "draft-b", Content: "second", SavedAt: savedAt(10)},
				{ID: "draft-c", Content: "third", SavedAt: savedAt(5)},
				{ID: "draft-a", Content: "first", SavedAt: savedAt(20)},
			} {
				if err := area.Save(d); err != nil {
					t.Fatalf("Save(%s) error = %v", d.ID, err)
				}
			}

			drafts, err := area.List()
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(drafts) != 3 {
				t.Fatalf("len(drafts) = %d, want 3", len(drafts))
			}

			wantOrder := []string{"draft-a", "draft-b", "draft-c"}
			for i, want := range wantOrder {
				if drafts[i].ID != want {
					t.Errorf("drafts[%d].ID = %q, want %q", i, drafts[i].ID, want)
				}
			}
		})
	}
}

func TestDraftArea_Discard(t *testing.T) {
	for name, newArea := range areaFactories(t) {
		t.Run(name, func(t *testing.T) {
			area := newArea()

			if err := area.Save(&memo.Draft{ID: "draft-1", Content: "x", SavedAt: savedAt(0)}); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			if err := area.Discard("draft-1"); err != nil {
				t.Fatalf("Discard() error = %v", err)
			}

			count, err := area.Count()
			if err != nil {
				t.Fatalf("Count() error = %v", err)
			}
			if count != 0 {
				t.Errorf("Count() after discard = %d, want 0", count)
			}

			if err := area.Discard("draft-1"); err == nil {
				t.Error("second Discard() expected error")
			}
		})
	}
}

func TestDraftArea_Count(t *testing.T) {
	for name, newArea := range areaFactories(t) {
		t.Run(name, func(t *testing.T) {
			area := newArea()

			for i, id := range []string{"draft-1", "draft-2"} {
				if err := area.Save(&memo.Draft{ID: id, Content: "x", SavedAt: savedAt(i)}); err != nil {
					t.Fatalf("Save(%s) error = %v", id, err)
				}
			}

			count, err := area.Count()
			if err != nil {
				t.Fatalf("Count() error = %v", err)
			}
			if count != 2 {
				t.Errorf("Count() = %d, want 2", count)
			}
		})
	}
}

func TestDraftArea_SizeLimit(t *testing.T) {
	area := NewMemoryDraftArea(150)

	if err := area.Save(&memo.Draft{ID: "draft-1", Content: "small", SavedAt: savedAt(0)}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	err := area.Save(&memo.Draft{ID: "draft-2", Content: strings.Repeat("x", 200), SavedAt: savedAt(0)})
	if err == nil {
		t.Fatal("expected error when exceeding size limit")
	}
	if !strings.Contains(err.Error(), "draft area full") {
		t.Errorf("error = %v, want 'draft area full'", err)
	}
}

func TestDraftArea_RejectsEmptyID(t *testing.T) {
	area := NewMemoryDraftArea(DefaultMaxSize)

	err := area.Save(&memo.Draft{Content: "x", SavedAt: savedAt(0)})
	if err == nil {
		t.Fatal("Save() with empty id expected error")
	}
}

func TestFilesystemDraftArea_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	area, err := NewFilesystemDraftArea(dir, DefaultMaxSize)
	if err != nil {
		t.Fatalf("NewFilesystemDraftArea() error = %v", err)
	}
	if err := area.Save(&memo.Draft{ID: "draft-1", Content: "persisted", SavedAt: savedAt(0)}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// A fresh area over the same directory sees the draft
	reopened, err := NewFilesystemDraftArea(dir, DefaultMaxSize)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}

	got, err := reopened.Get("draft-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || got.Content != "persisted" {
		t.Errorf("Get() = %v, want draft with content %q", got, "persisted")
	}
}

func TestFilesystemDraftArea_RejectsPathEscape(t *testing.T) {
	area, err := NewFilesystemDraftArea(t.TempDir(), DefaultMaxSize)
	if err != nil {
		t.Fatalf("NewFilesystemDraftArea() error = %v", err)
	}

	if _, err := area.Get("../escape"); err == nil {
		t.Error("Get() with path separator expected error")
	}
	if err := area.Discard("../escape"); err == nil {
		t.Error("Discard() with path separator expected error")
	}
}

func TestFilesystemDraftArea_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	area, err := NewFilesystemDraftArea(dir, DefaultMaxSize)
	if err != nil {
		t.Fatalf("NewFilesystemDraftArea() error = %v", err)
	}

	if err := area.Save(&memo.Draft{ID: "draft-1", Content: "x", SavedAt: savedAt(0)}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read draft dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestNewDraftAreaFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.DraftsConfig
		wantErr bool
	}{
		{
			name:    "memory area",
			cfg:     config.DraftsConfig{Type: "memory"},
			wantErr: false,
		},
		{
			name:    "filesystem area",
			cfg:     config.DraftsConfig{Type: "filesystem", Dir: t.TempDir()},
			wantErr: false,
		},
		{
			name:    "filesystem area without dir",
			cfg:     config.DraftsConfig{Type: "filesystem"},
			wantErr: true,
		},
		{
			name:    "unknown type",
			cfg:     config.DraftsConfig{Type: "redis"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewDraftAreaFromConfig(tt.cfg)

			if (err != nil) != tt.wantErr {
				t.Errorf("NewDraftAreaFromConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got == nil {
				t.Error("NewDraftAreaFromConfig() returned nil area")
			}
		})
	}
}
