// Package lock serializes catalog mirroring between processes that share an
// on-disk statistics database.
package lock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// retryInterval is how often TryLock polls a held lock.
const retryInterval = 100 * time.Millisecond

// FileLock is a lock backed by exclusively created files under dir.
type FileLock struct {
	dir    string
	logger *slog.Logger
}

// NewFileLock returns a FileLock keeping its lock files in dir. An empty dir
// selects a directory under os.TempDir.
func NewFileLock(dir string, logger *slog.Logger) *FileLock {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "animedash-locks")
	}
	return &FileLock{dir: dir, logger: logger}
}

// KeyFor derives a filesystem-safe lock key from an arbitrary resource name,
// such as a database DSN.
func KeyFor(resource string) string {
	sum := sha256.Sum256([]byte(resource))
	return hex.EncodeToString(sum[:8])
}

// TryLock attempts to acquire the lock for key, polling until timeout. It
// returns false without error when the lock is still held at the deadline.
// Locks older than twice the timeout are considered abandoned and removed.
func (fl *FileLock) TryLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	lockFile := fl.path(key)

	if err := os.MkdirAll(fl.dir, 0750); err != nil {
		return false, fmt.Errorf("failed to create lock directory: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		// #nosec G304 - lockFile is derived from a hashed key
		file, err := os.OpenFile(lockFile, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err != nil {
			if !os.IsExist(err) {
				return false, fmt.Errorf("failed to create lock file: %w", err)
			}
			if fl.isStale(lockFile, timeout*2) {
				fl.logger.Warn("Removing stale lock file", slog.String("file", lockFile))
				if err := os.Remove(lockFile); err != nil && !os.IsNotExist(err) {
					fl.logger.Error("Failed to remove stale lock file", slog.String("file", lockFile), slog.Any("error", err))
				}
				continue
			}
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-time.After(retryInterval):
				continue
			}
		}

		if _, err := fmt.Fprintf(file, "%d\n%d\n", time.Now().Unix(), os.Getpid()); err != nil {
			file.Close()
			os.Remove(lockFile)
			return false, fmt.Errorf("failed to write to lock file: %w", err)
		}
		if err := file.Close(); err != nil {
			os.Remove(lockFile)
			return false, fmt.Errorf("failed to close lock file: %w", err)
		}

		fl.logger.Debug("Acquired lock", slog.String("key", key), slog.String("file", lockFile))
		return true, nil
	}

	return false, nil
}

// Unlock releases the lock for key. Releasing a lock that is not held is not
// an error.
func (fl *FileLock) Unlock(key string) error {
	lockFile := fl.path(key)
	if err := os.Remove(lockFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}

	fl.logger.Debug("Released lock", slog.String("key", key), slog.String("file", lockFile))
	return nil
}

func (fl *FileLock) path(key string) string {
	return filepath.Clean(filepath.Join(fl.dir, key+".lock"))
}

func (fl *FileLock) isStale(lockFile string, staleAfter time.Duration) bool {
	info, err := os.Stat(lockFile)
	if err != nil {
		return true
	}
	return time.Since(info.ModTime()) > staleAfter
}
