package memo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// snapshotExt marks an encrypted snapshot name.
const snapshotExt = ".age"

// EncryptedSnapshot reports whether a snapshot name carries the encrypted
// suffix, meaning restore will need an unlocked decryption context.
func EncryptedSnapshot(name string) bool {
	return strings.HasSuffix(name, snapshotExt)
}

// Backup snapshots the store and uploads it to dest. The snapshot is taken
// with VACUUM INTO, so it is a complete, consistent copy even while the
// widget process is reading the live file. When enc is configured the
// snapshot is encrypted with the public key before upload.
// Returns the stored snapshot name.
func (s *MemoService) Backup(dest Destination, enc Encryptor) (string, error) {
	tmpDir, err := os.MkdirTemp("", "memo-backup-")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	// VACUUM INTO requires that the target file not exist yet.
	snapPath := filepath.Join(tmpDir, "snapshot.db")
	if err := s.store.BackupTo(snapPath); err != nil {
		s.recordOperation(OpBackup, "", "", StatusFailed)
		return "", fmt.Errorf("snapshotting store: %w", err)
	}

	name := fmt.Sprintf("memo-%s.db", s.clock.Now().UTC().Format("20060102T150405Z"))
	uploadPath := snapPath

	if enc != nil && enc.IsConfigured() {
		encPath := snapPath + snapshotExt
		if err := encryptFile(enc, snapPath, encPath); err != nil {
			s.recordOperation(OpBackup, "", name, StatusFailed)
			return "", fmt.Errorf("encrypting snapshot: %w", err)
		}
		name += snapshotExt
		uploadPath = encPath
	}

	if err := s.uploadSnapshot(dest, name, uploadPath); err != nil {
		s.recordOperation(OpBackup, "", name, StatusFailed)
		return "", err
	}

	s.recordOperation(OpBackup, "", name, StatusCompleted)
	s.logger.Info("store backed up", "name", name)
	return name, nil
}

// uploadSnapshot streams a snapshot file into the destination.
func (s *MemoService) uploadSnapshot(dest Destination, name string, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening snapshot for upload: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat snapshot: %w", err)
	}

	if err := dest.Put(name, f, info.Size()); err != nil {
		return fmt.Errorf("uploading snapshot: %w", err)
	}

	return nil
}

// encryptFile encrypts srcPath into dstPath using the public key.
func encryptFile(enc Encryptor, srcPath string, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("creating encrypted snapshot: %w", err)
	}

	if err := enc.Encrypt(src, dst); err != nil {
		dst.Close()
		return err
	}

	return dst.Close()
}

// RestoreSnapshot downloads a snapshot from dest and replaces the store
// file at storePath in a single rename, so a concurrent reader never sees a
// half-written store. The store must not be open in this process; the
// widget process simply observes the restored content on its next read.
// Snapshots with the encrypted suffix require an unlocked dctx.
func RestoreSnapshot(dest Destination, name string, dctx DecryptionContext, storePath string, logger Logger) error {
	if logger == nil {
		logger = NewNopLogger()
	}

	// Stage inside the store's directory so the final rename stays on one
	// filesystem and is atomic.
	tmpDir, err := os.MkdirTemp(filepath.Dir(storePath), ".memo-restore-")
	if err != nil {
		return fmt.Errorf("creating restore dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	downloadPath := filepath.Join(tmpDir, name)
	f, err := os.Create(downloadPath)
	if err != nil {
		return fmt.Errorf("creating download file: %w", err)
	}
	if err := dest.Get(name, f); err != nil {
		f.Close()
		return fmt.Errorf("downloading snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing download file: %w", err)
	}

	restorePath := downloadPath
	if EncryptedSnapshot(name) {
		if dctx == nil {
			return fmt.Errorf("snapshot %s is encrypted and no decryption context was provided", name)
		}
		plainPath := strings.TrimSuffix(downloadPath, snapshotExt)
		if err := decryptFile(dctx, downloadPath, plainPath); err != nil {
			return fmt.Errorf("decrypting snapshot: %w", err)
		}
		restorePath = plainPath
	}

	if err := os.Rename(restorePath, storePath); err != nil {
		return fmt.Errorf("replacing store file: %w", err)
	}

	// The snapshot is a vacuumed, self-contained store; journal files left
	// over from the replaced one would no longer match it.
	os.Remove(storePath + "-wal")
	os.Remove(storePath + "-shm")

	logger.Info("store restored", "name", name, "path", storePath)
	return nil
}

// decryptFile decrypts srcPath into dstPath with an unlocked context.
func decryptFile(dctx DecryptionContext, srcPath string, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("opening encrypted snapshot: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("creating decrypted snapshot: %w", err)
	}

	if err := dctx.Decrypt(src, dst); err != nil {
		dst.Close()
		return err
	}

	return dst.Close()
}
