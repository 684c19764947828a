package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for memo. Both the memo CLI and
// the widget binary read the same file, so they resolve the same store.
type Config struct {
	GroupID    string           `toml:"group_id"`
	DataDir    string           `toml:"data_dir"`
	LogDir     string           `toml:"log_dir"`
	Widget     WidgetConfig     `toml:"widget"`
	Drafts     DraftsConfig     `toml:"drafts"`
	Backups    []BackupConfig   `toml:"backups"`
	Encryption EncryptionConfig `toml:"encryption"`
}

// WidgetConfig holds widget-related settings.
type WidgetConfig struct {
	Limit int64 `toml:"limit"` // memos shown on the widget; defaults to 5
}

// DraftsConfig represents configuration for the draft area.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DraftsConfig struct {
	Type    string `toml:"type"`          // "memory" or "filesystem"
	Dir     string `toml:"dir,omitempty"` // only used for type=filesystem
	MaxSize int64  `toml:"max_size"`      // max total content size in bytes; defaults to 1MB
}

// BackupConfig represents configuration for a backup destination.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type BackupConfig struct {
	Type string `toml:"type"` // "memory" or "filesystem"
	Name string `toml:"name"`
	Dir  string `toml:"dir,omitempty"` // only used for type=filesystem
}

// EncryptionConfig holds paths to the age key pair used for backup encryption.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "age" (default) or "test"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// NewConfig creates a new Config with the provided values and default paths.
func NewConfig(groupID, baseDir string) *Config {
	return &Config{
		GroupID: groupID,
		DataDir: filepath.Join(baseDir, "db"),
		LogDir:  filepath.Join(baseDir, "log"),
		Widget: WidgetConfig{
			Limit: 5,
		},
		Drafts: DraftsConfig{
			Type: "filesystem",
			Dir:  filepath.Join(baseDir, "drafts"),
		},
		Encryption: EncryptionConfig{
			PublicKeyPath:  filepath.Join(baseDir, "keys", "memo.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "memo.key"),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
// This is an internal helper and should not be exported.
func writeToFile(path string, cfg *Config) error {
	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
