package core

import (
	"errors"
	"fmt"

	"github.com/0xRadioAc7iv/logcask/internal/logstore"
	"github.com/0xRadioAc7iv/logcask/internal/record"
)

// ErrorKind distinguishes the failure classes of an Engine operation.
type ErrorKind int

const (
	// KindIO covers failures of the underlying file: open, append, read, sync.
	KindIO ErrorKind = iota + 1
	// KindCorruptRecord covers log contents that cannot be decoded.
	KindCorruptRecord
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io error"
	case KindCorruptRecord:
		return "corrupt record"
	default:
		return "unknown error"
	}
}

var (
	// ErrIO matches every *Error of kind KindIO via errors.Is.
	ErrIO = errors.New("io error")
	// ErrCorruptRecord matches every *Error of kind KindCorruptRecord via errors.Is.
	ErrCorruptRecord = errors.New("corrupt record")

	// ErrClosed is returned by operations on a closed Engine.
	ErrClosed = errors.New("engine is closed")

	ErrEmptyKey      = record.ErrEmptyKey
	ErrKeyTooLarge   = record.ErrKeyTooLarge
	ErrValueTooLarge = record.ErrValueTooLarge
	ErrInvalidUTF8   = record.ErrInvalidUTF8
)

// Error is returned by Engine operations that fail on the log itself.
type Error struct {
	Kind ErrorKind
	Op   string // "open", "set", "get", ...
	Key  string // empty when the failure is not tied to a key
	Err  error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %q: %s: %v", e.Op, e.Key, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Kind == KindIO
	case ErrCorruptRecord:
		return e.Kind == KindCorruptRecord
	}
	return false
}

// wrapError classifies err coming from the log store or the codec.
func wrapError(op, key string, err error) error {
	var truncErr *logstore.TruncatedError
	kind := KindIO
	if errors.Is(err, record.ErrCorrupt) || errors.As(err, &truncErr) {
		kind = KindCorruptRecord
	}
	return &Error{Kind: kind, Op: op, Key: key, Err: err}
}
