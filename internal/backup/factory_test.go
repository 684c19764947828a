package backup

import (
	"path/filepath"
	"testing"

	"memo-go/internal/config"
)

func TestNewDestinationFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.BackupConfig
		wantErr bool
	}{
		{
			name: "memory destination",
			cfg: config.BackupConfig{
				Type: "memory",
				Name: "test-memory",
			},
			wantErr: false,
		},
		{
			name: "filesystem destination",
			cfg: config.BackupConfig{
				Type: "filesystem",
				Name: "test-fs",
				Dir:  filepath.Join(t.TempDir(), "backups"),
			},
			wantErr: false,
		},
		{
			name: "filesystem destination without dir",
			cfg: config.BackupConfig{
				Type: "filesystem",
				Name: "test-fs",
			},
			wantErr: true,
		},
		{
			name: "unknown destination type",
			cfg: config.BackupConfig{
				Type: "s3",
				Name: "test-unknown",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewDestinationFromConfig(tt.cfg)

			if (err != nil) != tt.wantErr {
				t.Errorf("NewDestinationFromConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if got == nil {
					t.Fatal("NewDestinationFromConfig() returned nil destination")
				}
				if got.Name() != tt.cfg.Name {
					t.Errorf("Name() = %q, want %q", got.Name(), tt.cfg.Name)
				}
				if err := got.ValidateSetup(); err != nil {
					t.Errorf("ValidateSetup() error = %v", err)
				}
			}
		})
	}
}

func TestNewDestinationsFromConfig(t *testing.T) {
	t.Run("creates all configured destinations", func(t *testing.T) {
		cfgs := []config.BackupConfig{
			{Type: "memory", Name: "first"},
			{Type: "memory", Name: "second"},
		}

		dests, err := NewDestinationsFromConfig(cfgs)
		if err != nil {
			t.Fatalf("NewDestinationsFromConfig() error = %v", err)
		}
		if len(dests) != 2 {
			t.Fatalf("len(dests) = %d, want 2", len(dests))
		}
		if dests[0].Name() != "first" || dests[1].Name() != "second" {
			t.Errorf("destination names = %q, %q, want first, second", dests[0].Name(), dests[1].Name())
		}
	})

	t.Run("fails on first invalid destination", func(t *testing.T) {
		cfgs := []config.BackupConfig{
			{Type: "memory", Name: "ok"},
			{Type: "bogus", Name: "broken"},
		}

		_, err := NewDestinationsFromConfig(cfgs)
		if err == nil {
			t.Fatal("NewDestinationsFromConfig() expected error for bogus type")
		}
	})
}
