package app

import (
	"os"

	"github.com/google/uuid"

	"memo-go/internal/config"
	"memo-go/internal/database"
	"memo-go/internal/memo"
	"memo-go/internal/timeline"
	"memo-go/internal/widget"
)

// WidgetApp is the wiring for the widget process. Construction never fails:
// the widget has no error surface, so a missing config or an unreadable
// store yields an app whose Refresh returns the fallback view.
type WidgetApp struct {
	provider *widget.Provider
	store    memo.Store
	logFile  *os.File
}

// NewWidgetApp wires the widget process. cfg may be nil when the config
// file itself could not be read; the store is then left unopened and every
// refresh degrades. The caller should call Close when done.
func NewWidgetApp(cfg *config.Config) *WidgetApp {
	opID := uuid.New().String()

	if cfg == nil {
		logger := &slogAdapter{l: newStderrLogger(opID).With("cmd", "widget")}
		logger.Warn("no usable config, rendering fallback view")
		return &WidgetApp{
			provider: widget.NewProvider(nil, 0, logger, memo.RealClock{}),
		}
	}

	slogger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		slogger = newStderrLogger(opID)
		logFile = nil
	}
	logger := &slogAdapter{l: slogger.With("cmd", "widget")}

	var store memo.Store
	if s, err := database.NewReadOnlyStoreFromConfig(cfg); err != nil {
		logger.Warn("shared store not readable, rendering fallback view", "error", err)
	} else {
		store = s
	}

	return &WidgetApp{
		provider: widget.NewProvider(store, cfg.Widget.Limit, logger, memo.RealClock{}),
		store:    store,
		logFile:  logFile,
	}
}

// Refresh computes the current widget view. It never fails.
func (w *WidgetApp) Refresh() timeline.View {
	return w.provider.Refresh()
}

// Close releases the store and log file if they were opened. Close errors
// are dropped: the widget process has no error surface.
func (w *WidgetApp) Close() {
	if w.store != nil {
		w.store.Close()
	}
	if w.logFile != nil {
		w.logFile.Close()
	}
}
