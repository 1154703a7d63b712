package core

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/0xRadioAc7iv/logcask/internal"
	"github.com/0xRadioAc7iv/logcask/internal/lock"
	"github.com/0xRadioAc7iv/logcask/internal/logstore"
	"github.com/0xRadioAc7iv/logcask/internal/record"
	"github.com/0xRadioAc7iv/logcask/internal/utils"
)

// ErrLocked is returned by Open when another engine already owns the log.
var ErrLocked = lock.ErrLocked

const tornSuffix = ".torn"

// TornFileName returns the path of the file that receives bytes cut from the
// end of the log at path during recovery.
func TornFileName(path string) string {
	return path + tornSuffix
}

// Engine is an open database: one append-only log file plus the keydir
// derived from it. The Engine owns both and releases them together on Close.
//
// An Engine is safe for concurrent use. Set holds the write lock across the
// append and the keydir update, so offsets stay monotonic.
type Engine struct {
	lockFile *os.File
	log      *logstore.Store
	keyDir   KeyDir
	closed   bool

	mu sync.RWMutex // for log + keyDir + closed

	strict bool
	logger *slog.Logger
	clock  func() time.Time
}

// Open opens the log at path, creating it if needed, and rebuilds the keydir
// by replaying every record from offset 0. A nil cfg means
// internal.DefaultConfig().
func Open(path string, cfg *internal.Config) (*Engine, error) {
	if cfg == nil {
		cfg = internal.DefaultConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = internal.DiscardLogger()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	lf, err := lock.Acquire(path)
	if err != nil {
		return nil, &Error{Kind: KindIO, Op: "open", Err: err}
	}

	existed := utils.PathExists(path)
	store, err := logstore.Open(path, logstore.Options{SyncWrites: cfg.SyncWrites})
	if err != nil {
		lock.Release(lf)
		return nil, wrapError("open", "", err)
	}

	e := &Engine{
		lockFile: lf,
		log:      store,
		keyDir:   NewKeyDir(cfg.Index, cfg.BTreeDegree),
		strict:   cfg.StrictRecovery,
		logger:   logger.With("path", path),
		clock:    clock,
	}

	start := time.Now()
	records, err := e.replay()
	if err != nil {
		store.Close()
		lock.Release(lf)
		return nil, err
	}

	e.logger.Info("opened log",
		"created", !existed,
		"index", cfg.Index.String(),
		"records", records,
		"keys", e.keyDir.Len(),
		"size", store.Size(),
		"took", time.Since(start))

	return e, nil
}

// replay scans the log from the start and inserts every record into the
// keydir, later records overwriting earlier ones. A torn record at the end
// of the log is moved out of it unless the engine runs in strict mode.
func (e *Engine) replay() (int, error) {
	records := 0

	seq, errFn := e.log.StreamFrom(0)
	for offset, data := range seq {
		rec, err := record.Decode(data)
		if err != nil {
			return records, wrapError("open", "", fmt.Errorf("record at offset %d: %w", offset, err))
		}

		e.keyDir.Insert(rec.Key, KeyDirEntry{
			Offset:     offset,
			RecordSize: int64(len(data)),
		})
		records++
	}

	err := errFn()
	if err == nil {
		return records, nil
	}

	var truncErr *logstore.TruncatedError
	if !errors.As(err, &truncErr) || e.strict {
		return records, wrapError("open", "", err)
	}

	if err := e.dropTornTail(truncErr); err != nil {
		return records, wrapError("open", "", err)
	}
	return records, nil
}

// dropTornTail moves everything from the torn record to the end of the log
// into the sidecar file, then truncates the log there. A damaged size field
// can make intact records look like part of the torn tail, so their bytes are
// kept in the sidecar rather than discarded.
func (e *Engine) dropTornTail(truncErr *logstore.TruncatedError) error {
	span := truncErr.Size - truncErr.Offset
	tail, err := e.log.ReadAt(truncErr.Offset, span)
	if err != nil {
		return err
	}

	sidecar := TornFileName(e.log.Path())
	if err := utils.AppendFile(sidecar, tail); err != nil {
		return fmt.Errorf("save torn tail to %s: %w", sidecar, err)
	}

	e.logger.Warn("moved torn record at end of log to sidecar",
		"offset", truncErr.Offset,
		"bytes", span,
		"sidecar", sidecar)

	return e.log.Truncate(truncErr.Offset)
}

// Set appends a record for key and points the keydir at it. If the append
// fails, the keydir keeps its previous entry for key.
func (e *Engine) Set(key, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isClosed() {
		return ErrClosed
	}

	diskRecord := record.New(e.clock(), key, value)
	encoded, err := record.Encode(diskRecord)
	if err != nil {
		return err
	}

	offset, err := e.log.Append(encoded)
	if err != nil {
		return wrapError("set", key, err)
	}

	e.keyDir.Insert(key, KeyDirEntry{
		Offset:     offset,
		RecordSize: int64(len(encoded)),
	})

	e.logger.Debug("set", "key", key, "offset", offset, "size", len(encoded))
	return nil
}

// Get returns the latest value written for key. ok is false if key was never
// set. A keydir hit whose record cannot be read back is reported as an
// error, never as a miss.
func (e *Engine) Get(key string) (value string, ok bool, err error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.isClosed() {
		return "", false, ErrClosed
	}

	entry, ok := e.keyDir.Lookup(key)
	if !ok {
		return "", false, nil
	}

	value, err = e.readValue(key, entry)
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (e *Engine) readValue(key string, entry KeyDirEntry) (string, error) {
	buf, err := e.log.ReadAt(entry.Offset, entry.RecordSize)
	if err != nil {
		return "", wrapError("get", key, err)
	}

	diskRecord, err := record.Decode(buf)
	if err != nil {
		return "", wrapError("get", key, fmt.Errorf("record at offset %d: %w", entry.Offset, err))
	}

	if diskRecord.Key != key {
		return "", &Error{
			Kind: KindCorruptRecord,
			Op:   "get",
			Key:  key,
			Err:  fmt.Errorf("record at offset %d holds key %q", entry.Offset, diskRecord.Key),
		}
	}

	return diskRecord.Value, nil
}

// Has reports whether key has ever been set.
func (e *Engine) Has(key string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.isClosed() {
		return false
	}
	_, ok := e.keyDir.Lookup(key)
	return ok
}

// Len returns the number of distinct keys.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.isClosed() {
		return 0
	}
	return e.keyDir.Len()
}

// Size returns the length of the log in bytes.
func (e *Engine) Size() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.isClosed() {
		return 0
	}
	return e.log.Size()
}

// Path returns the path of the log file.
func (e *Engine) Path() string {
	if e.log == nil {
		return ""
	}
	return e.log.Path()
}

// Sync flushes the log to disk. Only needed when SyncWrites is off.
func (e *Engine) Sync() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isClosed() {
		return ErrClosed
	}
	if err := e.log.Sync(); err != nil {
		return wrapError("sync", "", err)
	}
	return nil
}

// Close releases the log file and its lock. Calling Close more than once is
// a no-op.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isClosed() {
		return nil
	}
	e.closed = true
	e.keyDir = nil

	logErr := e.log.Close()
	lockErr := lock.Release(e.lockFile)

	if logErr != nil {
		return wrapError("close", "", logErr)
	}
	if lockErr != nil {
		return wrapError("close", "", lockErr)
	}

	e.logger.Info("closed log")
	return nil
}

// A zero Engine was never opened and behaves as closed.
func (e *Engine) isClosed() bool {
	return e.closed || e.log == nil
}
