// Package logstore implements durable append-only byte storage on a single
// file, with positional reads and a forward scan used during recovery.
//
// The store knows only enough about the record layout to frame raw records
// while scanning; decoding is left to the caller.
package logstore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/0xRadioAc7iv/logcask/internal/record"
	"github.com/0xRadioAc7iv/logcask/internal/utils"
)

const filePerm = 0644

// ErrReadPastEnd is returned by ReadAt when the requested range extends past
// the end of the log.
var ErrReadPastEnd = errors.New("read past end of log")

// TruncatedError reports a trailing record whose header or body extends past
// the end of the file, typically left behind by a crash mid-append.
type TruncatedError struct {
	Offset int64 // where the incomplete record starts
	Size   int64 // size of the file when the scan stopped
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated record at offset %d (file size %d)", e.Offset, e.Size)
}

// logFile is the subset of *os.File the store uses.
type logFile interface {
	io.ReaderAt
	io.WriterAt
	Truncate(size int64) error
	Sync() error
	Close() error
}

type Options struct {
	// if true, every Append is followed by fsync
	SyncWrites bool
}

// Store is a single append-only log file.
//
// Store is not safe for concurrent use; the owner serializes calls.
type Store struct {
	file logFile
	path string
	size int64 // offset of the next append
	opts Options
}

// Open opens the log at path, creating an empty file if it does not exist.
// The file contents are not read.
func Open(path string, opts Options) (*Store, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, filePerm)
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat log %s: %w", path, err)
	}

	return &Store{
		file: f,
		path: path,
		size: info.Size(),
		opts: opts,
	}, nil
}

func (s *Store) Path() string {
	return s.path
}

// Size returns the current end-of-log offset, where the next Append writes.
func (s *Store) Size() int64 {
	return s.size
}

// Append writes data at the end of the log and returns the offset at which
// the write began. The end offset only advances after a complete write (and
// fsync, when enabled). On failure the file is cut back to the old end offset,
// so a failed append leaves no bytes behind for a later replay to find.
func (s *Store) Append(data []byte) (int64, error) {
	offset := s.size

	if err := s.write(data, offset); err != nil {
		if rbErr := utils.TruncateAt(s.file, offset); rbErr != nil {
			return 0, errors.Join(err, fmt.Errorf("roll back append at offset %d: %w", offset, rbErr))
		}
		return 0, err
	}

	s.size += int64(len(data))
	return offset, nil
}

func (s *Store) write(data []byte, offset int64) error {
	n, err := s.file.WriteAt(data, offset)
	if err != nil {
		return fmt.Errorf("append %d bytes at offset %d: %w", len(data), offset, err)
	}
	if n != len(data) {
		return fmt.Errorf("append at offset %d: %w", offset, io.ErrShortWrite)
	}

	if s.opts.SyncWrites {
		if err := s.file.Sync(); err != nil {
			return fmt.Errorf("sync after append at offset %d: %w", offset, err)
		}
	}
	return nil
}

// ReadAt reads exactly length bytes starting at offset.
func (s *Store) ReadAt(offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > s.size {
		return nil, fmt.Errorf("read %d bytes at offset %d (log size %d): %w", length, offset, s.size, ErrReadPastEnd)
	}

	buf := make([]byte, length)
	n, err := s.file.ReadAt(buf, offset)
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("reached end of file after reading %d bytes, expected %d: %w", n, length, ErrReadPastEnd)
		}
		return nil, fmt.Errorf("read %d bytes at offset %d: %w", length, offset, err)
	}

	return buf, nil
}

// StreamFrom returns an iterator over the raw records stored from offset up
// to the end of the log, as (record offset, record bytes) pairs.
//
// A trailing record that does not fit in the file ends the sequence and is
// reported by the returned error func as a *TruncatedError. Call the error
// func after iteration. Every call starts a fresh scan.
func (s *Store) StreamFrom(offset int64) (iter.Seq2[int64, []byte], func() error) {
	var iterErr error

	seq := func(yield func(int64, []byte) bool) {
		iterErr = nil
		end := s.size
		if offset < 0 || offset > end {
			iterErr = fmt.Errorf("stream from offset %d (log size %d): %w", offset, end, ErrReadPastEnd)
			return
		}

		reader := bufio.NewReader(io.NewSectionReader(s.file, offset, end-offset))
		current := offset

		for current < end {
			header := make([]byte, record.HeaderSize)
			if _, err := io.ReadFull(reader, header); err != nil {
				iterErr = streamError(err, current, end)
				return
			}

			h, err := record.DecodeHeader(header)
			if err != nil {
				iterErr = err
				return
			}

			recordSize := h.RecordSize()
			if current+recordSize > end {
				iterErr = &TruncatedError{Offset: current, Size: end}
				return
			}

			buf := make([]byte, recordSize)
			copy(buf, header)
			if _, err := io.ReadFull(reader, buf[record.HeaderSize:]); err != nil {
				iterErr = streamError(err, current, end)
				return
			}

			if !yield(current, buf) {
				return
			}
			current += recordSize
		}
	}

	return seq, func() error { return iterErr }
}

func streamError(err error, offset, end int64) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &TruncatedError{Offset: offset, Size: end}
	}
	return fmt.Errorf("read record at offset %d: %w", offset, err)
}

// Truncate drops everything from offset to the end of the log.
func (s *Store) Truncate(offset int64) error {
	if offset < 0 || offset > s.size {
		return fmt.Errorf("truncate at offset %d (log size %d): %w", offset, s.size, ErrReadPastEnd)
	}
	if err := utils.TruncateAt(s.file, offset); err != nil {
		return fmt.Errorf("truncate at offset %d: %w", offset, err)
	}
	s.size = offset
	return nil
}

func (s *Store) Sync() error {
	return s.file.Sync()
}

// Close syncs and closes the log file. It is safe to call more than once.
func (s *Store) Close() error {
	if s.file == nil {
		return nil
	}
	syncErr := s.file.Sync()
	closeErr := s.file.Close()
	s.file = nil
	if syncErr != nil {
		return syncErr
	}
	return closeErr
}
