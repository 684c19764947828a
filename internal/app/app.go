package app

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"memo-go/internal/backup"
	"memo-go/internal/config"
	"memo-go/internal/database"
	"memo-go/internal/database/sqlc"
	"memo-go/internal/draft"
	"memo-go/internal/encryption"
	"memo-go/internal/memo"
	"memo-go/internal/timeline"
)

// MemoApp is the application layer between the CLI and MemoService.
// It constructs all dependencies from config, exposes the high-level
// operations the commands need, and manages the store lifecycle on Close.
type MemoApp struct {
	cfg       *config.Config
	store     memo.Store
	drafts    memo.DraftArea
	encryptor memo.Encryptor
	service   *memo.MemoService
	logFile   *os.File
}

// NewMemoApp creates a fully wired MemoApp from the given config.
// operation identifies the CLI command being run (e.g. "add", "backup") and
// tags every log line of this invocation. The caller must call Close when
// done. A store that cannot be opened is fatal here: unlike the widget
// process, the primary application cannot degrade.
func NewMemoApp(cfg *config.Config, operation string) (*MemoApp, error) {
	opID := uuid.New().String()
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger = logger.With("cmd", operation)

	store, err := database.NewStoreFromConfig(cfg, memo.RealClock{}, memo.UUIDGenerator{})
	if err != nil {
		logFile.Close()
		return nil, err
	}

	drafts, err := draft.NewDraftAreaFromConfig(cfg.Drafts)
	if err != nil {
		store.Close()
		logFile.Close()
		return nil, fmt.Errorf("creating draft area: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		store.Close()
		logFile.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	svc := memo.NewMemoService(store, drafts, &slogAdapter{l: logger}, memo.RealClock{}, memo.UUIDGenerator{})

	return &MemoApp{
		cfg:       cfg,
		store:     store,
		drafts:    drafts,
		encryptor: enc,
		service:   svc,
		logFile:   logFile,
	}, nil
}

// Add saves a new memo with the given content.
func (a *MemoApp) Add(content string) (*sqlc.Memo, error) {
	return a.service.Add(content)
}

// Update replaces a memo's content and resets its timestamp.
func (a *MemoApp) Update(id string, content string) (*sqlc.Memo, error) {
	return a.service.Update(id, content)
}

// Delete removes the memos with the given ids.
func (a *MemoApp) Delete(ids ...string) error {
	return a.service.Delete(ids...)
}

// Get returns a single memo by id.
func (a *MemoApp) Get(id string) (*sqlc.Memo, error) {
	return a.service.Get(id)
}

// Timeline returns the projected display summary over the most recent
// memos. The CLI renders this for list output.
func (a *MemoApp) Timeline(limit int64) (timeline.View, error) {
	return a.service.Timeline(limit)
}

// Drafts returns all preserved edits, oldest first.
func (a *MemoApp) Drafts() ([]*memo.Draft, error) {
	return a.service.Drafts()
}

// RetryDraft replays one preserved edit through the store.
func (a *MemoApp) RetryDraft(id string) (*sqlc.Memo, error) {
	return a.service.RetryDraft(id)
}

// RetryDrafts replays all preserved edits, oldest first.
func (a *MemoApp) RetryDrafts() (int, error) {
	return a.service.RetryDrafts()
}

// DiscardDraft drops a preserved edit without replaying it.
func (a *MemoApp) DiscardDraft(id string) error {
	return a.service.DiscardDraft(id)
}

// History returns the most recent audit entries, newest first.
func (a *MemoApp) History(limit int64) ([]*sqlc.Operation, error) {
	return a.service.History(limit)
}

// Backup snapshots the store and uploads it to the configured backup
// destinations. When destName is non-empty only that destination is used.
// Returns the stored snapshot names.
func (a *MemoApp) Backup(destName string) ([]string, error) {
	dests, err := a.destinations(destName)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, d := range dests {
		name, err := a.service.Backup(d, a.encryptor)
		if err != nil {
			return names, fmt.Errorf("backing up to %s: %w", d.Name(), err)
		}
		names = append(names, name)
	}
	return names, nil
}

// Snapshots lists the snapshot names stored on a destination, oldest first.
// An empty destName picks the first configured destination.
func (a *MemoApp) Snapshots(destName string) ([]string, error) {
	dest, err := resolveDestination(a.cfg, destName)
	if err != nil {
		return nil, err
	}

	names, err := dest.List()
	if err != nil {
		return nil, fmt.Errorf("listing snapshots on %s: %w", dest.Name(), err)
	}
	return names, nil
}

// destinations builds the configured backup destinations, narrowed to one
// by name when destName is non-empty.
func (a *MemoApp) destinations(destName string) ([]memo.Destination, error) {
	if len(a.cfg.Backups) == 0 {
		return nil, fmt.Errorf("no backup destinations configured")
	}

	if destName == "" {
		return backup.NewDestinationsFromConfig(a.cfg.Backups)
	}

	dest, err := resolveDestination(a.cfg, destName)
	if err != nil {
		return nil, err
	}
	return []memo.Destination{dest}, nil
}

// Close releases the store and the log file. The first error wins but every
// resource is attempted.
func (a *MemoApp) Close() error {
	var firstErr error

	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing store: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}

// Restore downloads a snapshot from a backup destination and replaces the
// shared store file. It runs with the store closed, so it wires its
// dependencies directly instead of going through a MemoApp. Encrypted
// snapshots are unlocked with the passphrase.
func Restore(cfg *config.Config, destName string, snapshot string, passphrase string) error {
	storePath, err := database.StorePath(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	dest, err := resolveDestination(cfg, destName)
	if err != nil {
		return err
	}

	var dctx memo.DecryptionContext
	if memo.EncryptedSnapshot(snapshot) {
		enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
		if err != nil {
			return fmt.Errorf("creating encryptor: %w", err)
		}
		dctx, err = enc.Unlock(passphrase)
		if err != nil {
			return fmt.Errorf("unlocking private key: %w", err)
		}
	}

	opID := uuid.New().String()
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logFile.Close()

	return memo.RestoreSnapshot(dest, snapshot, dctx, storePath, &slogAdapter{l: logger.With("cmd", "restore")})
}

// resolveDestination picks one backup destination: the named one, or the
// first configured when name is empty.
func resolveDestination(cfg *config.Config, name string) (memo.Destination, error) {
	if len(cfg.Backups) == 0 {
		return nil, fmt.Errorf("no backup destinations configured")
	}

	if name == "" {
		return backup.NewDestinationFromConfig(cfg.Backups[0])
	}

	for _, bc := range cfg.Backups {
		if bc.Name == name {
			return backup.NewDestinationFromConfig(bc)
		}
	}
	return nil, fmt.Errorf("no backup destination named %q", name)
}
