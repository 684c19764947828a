package backup

import (
	"fmt"

	"memo-go/internal/config"
	"memo-go/internal/memo"
)

// NewDestinationFromConfig creates a Destination implementation based on
// the backup config type.
func NewDestinationFromConfig(cfg config.BackupConfig) (memo.Destination, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryDestination(cfg.Name), nil
	case "filesystem":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("filesystem backup destination requires dir to be set")
		}
		return NewFilesystemDestination(cfg.Name, cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown backup destination type: %s", cfg.Type)
	}
}

// NewDestinationsFromConfig creates all configured backup destinations.
func NewDestinationsFromConfig(cfgs []config.BackupConfig) ([]memo.Destination, error) {
	dests := make([]memo.Destination, 0, len(cfgs))
	for _, cfg := range cfgs {
		dest, err := NewDestinationFromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("creating destination %q: %w", cfg.Name, err)
		}
		dests = append(dests, dest)
	}
	return dests, nil
}
