package lock

import "errors"

// ErrLocked is returned by Acquire when another engine holds the lock.
var ErrLocked = errors.New("log file already in use by another logcask instance")

const fileSuffix = ".lock"

// FileName returns the path of the lock file guarding the log at path.
func FileName(path string) string {
	return path + fileSuffix
}
