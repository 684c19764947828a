package widget

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"memo-go/internal/timeline"
)

// Render writes a plain-text rendering of the view: status, entries with
// elapsed labels, and the next refresh time. This is the debug surface for
// the host callback, not a UI.
func Render(w io.Writer, view timeline.View) error {
	if view.TotalCount == 0 {
		fmt.Fprintln(w, "no memos")
	} else {
		fmt.Fprintf(w, "latest: %s (%s)\n", view.ElapsedLabel, view.Status)
		fmt.Fprintf(w, "showing %d of %d memos\n", view.DisplayCount, view.TotalCount)
		for _, e := range view.Entries {
			fmt.Fprintf(w, "  - %s (%s)\n", e.Title, e.ElapsedLabel)
		}
	}
	_, err := fmt.Fprintf(w, "next refresh: %s\n", view.RefreshAt.UTC().Format(time.RFC3339))
	return err
}

// entryPayload is one memo in the JSON document handed to the host.
type entryPayload struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Timestamp    time.Time `json:"timestamp"`
	ElapsedLabel string    `json:"elapsed_label"`
}

// viewPayload is the JSON shape handed to the host.
type viewPayload struct {
	GeneratedAt  time.Time      `json:"generated_at"`
	Status       string         `json:"status"`
	ElapsedLabel string         `json:"elapsed_label,omitempty"`
	DisplayCount int            `json:"display_count"`
	TotalCount   int64          `json:"total_count"`
	Entries      []entryPayload `json:"entries,omitempty"`
	RefreshAt    time.Time      `json:"refresh_at"`
}

// RenderJSON writes the view as a single indented JSON document.
func RenderJSON(w io.Writer, view timeline.View) error {
	p := viewPayload{
		GeneratedAt:  view.GeneratedAt,
		Status:       view.Status.String(),
		ElapsedLabel: view.ElapsedLabel,
		DisplayCount: view.DisplayCount,
		TotalCount:   view.TotalCount,
		RefreshAt:    view.RefreshAt,
	}
	for _, e := range view.Entries {
		p.Entries = append(p.Entries, entryPayload{
			ID:           e.ID,
			Title:        e.Title,
			Timestamp:    e.Timestamp,
			ElapsedLabel: e.ElapsedLabel,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
