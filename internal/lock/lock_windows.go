//go:build windows

package lock

import (
	"errors"
	"fmt"
	"os"
)

// Acquire takes an exclusive lock guarding the log file at path by creating
// "<path>.lock" with O_EXCL.
//
// A lock file left behind by a crashed process is not held open by anyone, so
// it can be removed and the lock retaken. A live holder keeps the file open
// without delete sharing, which makes the removal fail.
func Acquire(path string) (*os.File, error) {
	name := FileName(path)

	f, err := create(name)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := os.Remove(name); err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrLocked)
	}

	f, err = create(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrLocked)
	}
	return f, nil
}

func create(name string) (*os.File, error) {
	return os.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0644)
}

// Release closes and removes the lock file.
func Release(f *os.File) error {
	name := f.Name()
	if err := f.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}
