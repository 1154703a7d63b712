//go:build unix

package lock

import (
	"fmt"
	"os"
	"syscall"
)

// Acquire takes an exclusive, non-blocking advisory lock guarding the log
// file at path.
//
// On Unix systems this places a flock(2) on the sidecar file "<path>.lock".
// If the lock is already held, the log is assumed to be open in another
// engine and ErrLocked is returned.
//
// The returned file handle must remain open for the duration of the lock.
func Acquire(path string) (*os.File, error) {
	lockFilePath := FileName(path)

	f, err := os.OpenFile(lockFilePath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to open lock file: %w", err)
	}

	err = syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrLocked)
	}

	return f, nil
}

// Release releases a lock acquired via Acquire and closes the file.
func Release(f *os.File) error {
	unlockErr := syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	closeErr := f.Close()
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}
