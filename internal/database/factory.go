package database

import (
	"fmt"
	"os"
	"path/filepath"

	"memo-go/internal/config"
	"memo-go/internal/memo"
)

// StorePath resolves the shared store file location from config: a fixed
// file name derived from the shared group identifier, inside the configured
// data directory. The primary application and the widget process must both
// resolve the identical path.
func StorePath(cfg *config.Config) (string, error) {
	if cfg.DataDir == "" {
		return "", &memo.ConfigError{Reason: "data_dir is not set"}
	}
	if cfg.GroupID == "" {
		return "", &memo.ConfigError{Reason: "group_id is not set"}
	}
	return filepath.Join(cfg.DataDir, cfg.GroupID+".db"), nil
}

// NewStoreFromConfig opens the shared store read-write for the primary
// application, creating the data directory and migrating the schema as
// needed. Failures here are configuration failures: the primary application
// cannot function without its store and treats them as fatal.
func NewStoreFromConfig(cfg *config.Config, clock memo.Clock, idgen memo.IDGenerator) (memo.Store, error) {
	path, err := StorePath(cfg)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, &memo.ConfigError{Reason: fmt.Sprintf("creating data directory %s", cfg.DataDir), Err: err}
	}

	store, err := NewSQLiteStore(path, clock, idgen)
	if err != nil {
		return nil, &memo.ConfigError{Reason: fmt.Sprintf("opening shared store at %s", path), Err: err}
	}
	return store, nil
}

// NewReadOnlyStoreFromConfig opens the shared store read-only for the
// widget process. The widget never creates or migrates the store; when the
// primary application has not produced one yet, this fails and the caller
// degrades to an empty projection instead of crashing.
func NewReadOnlyStoreFromConfig(cfg *config.Config) (memo.Store, error) {
	path, err := StorePath(cfg)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		return nil, &memo.ConfigError{Reason: fmt.Sprintf("shared store at %s is not readable", path), Err: err}
	}

	store, err := NewReadOnlySQLiteStore(path)
	if err != nil {
		return nil, &memo.ConfigError{Reason: fmt.Sprintf("opening shared store at %s", path), Err: err}
	}
	return store, nil
}
