package utils

import "os"

// Truncater is implemented by *os.File.
type Truncater interface {
	Truncate(size int64) error
	Sync() error
}

// TruncateAt cuts f down to offset bytes and syncs the new length to disk.
func TruncateAt(f Truncater, offset int64) error {
	if err := f.Truncate(offset); err != nil {
		return err
	}
	return f.Sync()
}

// AppendFile appends data to the file at path, creating it if needed, and
// syncs it before returning.
func AppendFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// PathExists reports whether a file or directory exists at path.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
