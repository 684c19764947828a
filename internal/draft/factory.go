package draft

import (
	"fmt"

	"memo-go/internal/config"
	"memo-go/internal/memo"
)

// DefaultMaxSize is the default maximum draft area size (1MB).
const DefaultMaxSize int64 = 1024 * 1024

// NewDraftAreaFromConfig creates a DraftArea implementation based on the config type.
func NewDraftAreaFromConfig(cfg config.DraftsConfig) (memo.DraftArea, error) {
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	switch cfg.Type {
	case "memory":
		return NewMemoryDraftArea(maxSize), nil
	case "filesystem":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("filesystem draft area requires dir to be set")
		}
		return NewFilesystemDraftArea(cfg.Dir, maxSize)
	default:
		return nil, fmt.Errorf("unknown draft area type: %s", cfg.Type)
	}
}
